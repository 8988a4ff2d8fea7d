package api

import "fmt"

// --- Item Methods ---

// ListItems returns every item header.
func (c *Client) ListItems() ([]ItemHeader, error) {
	data, err := c.get("/api/items")
	if err != nil {
		return nil, err
	}
	return decodeList[ItemHeader](data)
}

// SearchItems returns the headers matching text on the given field.
func (c *Client) SearchItems(kind SearchKind, text string) ([]ItemHeader, error) {
	params := QueryParams{
		"type": kind.String(),
		"text": text,
	}
	data, err := c.get(buildQuery("/api/items/search", params))
	if err != nil {
		return nil, err
	}
	return decodeList[ItemHeader](data)
}

// GetItem fetches one item with its tags. Fails with ErrNotFound once deleted.
func (c *Client) GetItem(id string) (*ItemDetail, error) {
	if id == "" {
		return nil, errorf(KindNotFound, "item id is empty")
	}
	data, err := c.get(fmt.Sprintf("/api/items/%s", escapeID(id)))
	if err != nil {
		return nil, err
	}
	item, err := decodeOne[ItemDetail](data)
	if err != nil {
		return nil, err
	}
	if item.Tags == nil {
		item.Tags = []Tag{}
	}
	return item, nil
}

// CreateItem creates a new item. The created id is not reported.
func (c *Client) CreateItem(input ItemInput) error {
	_, err := c.post("/api/items", input)
	return err
}

// UpdateItem replaces the editable fields of an item.
func (c *Client) UpdateItem(id string, input ItemInput) error {
	_, err := c.put(fmt.Sprintf("/api/items/%s", escapeID(id)), input)
	return err
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(id string) error {
	_, err := c.del(fmt.Sprintf("/api/items/%s", escapeID(id)))
	return err
}
