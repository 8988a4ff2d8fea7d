package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/itemdeck/cli/internal/api"
)

func printItemTable(out io.Writer, list []api.ItemHeader) {
	if len(list) == 0 {
		fmt.Fprintln(out, "no items found")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("NAME"), bold.Sprint("TAGS"))
	for _, item := range list {
		tbl.AddRow(item.ID, item.Name, strconv.Itoa(item.NumTags))
	}
	tbl.RightAlign(2)
	fmt.Fprintln(out, tbl)
}

func printItemDetail(out io.Writer, item *api.ItemDetail) {
	label := color.New(color.Bold)

	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		tags = append(tags, t.Name)
	}
	tagText := strings.Join(tags, ", ")
	if tagText == "" {
		tagText = "---"
	}
	description := item.Description
	if description == "" {
		description = "---"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	tbl.AddRow(label.Sprint("Id"), item.ID)
	tbl.AddRow(label.Sprint("Name"), item.Name)
	tbl.AddRow(label.Sprint("Description"), description)
	tbl.AddRow(label.Sprint("Tags"), tagText)
	fmt.Fprintln(out, tbl)
}

// itemFileMeta is the frontmatter of an item file.
type itemFileMeta struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags,omitempty"`
}

// parseItemFile reads a markdown file whose frontmatter holds name and tags
// and whose body is the description.
func parseItemFile(r io.Reader) (api.ItemInput, error) {
	var meta itemFileMeta
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return api.ItemInput{}, fmt.Errorf("parse item file: %w", err)
	}
	return api.ItemInput{
		Name:        strings.TrimSpace(meta.Name),
		Description: strings.TrimSpace(string(body)),
		Tags:        meta.Tags,
	}, nil
}

// marshalItemFile renders input in the format parseItemFile reads.
func marshalItemFile(input api.ItemInput) ([]byte, error) {
	head, err := yaml.Marshal(itemFileMeta{Name: input.Name, Tags: input.Tags})
	if err != nil {
		return nil, fmt.Errorf("marshal item file: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(head)
	buf.WriteString("---\n")
	if input.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(input.Description)
		if !strings.HasSuffix(input.Description, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}
