package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "itm_testkey")
	return srv, client
}

func jsonResponse(data any) []byte {
	b, _ := json.Marshal(map[string]any{"data": data})
	return b
}

func TestNewDefaultClientUsesDefaultBaseURL(t *testing.T) {
	var gotURL string
	client := NewDefaultClient("itm_testkey")
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		body := `{"data":{"id":"item-1","name":"Alpha","tags":[]}}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.GetItem("item-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotURL, DefaultBaseURL))
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.com/", "")
	assert.Equal(t, "http://example.com", client.BaseURL())
}

func TestNewClientCustomTimeout(t *testing.T) {
	client := NewClient("http://example.com", "itm_testkey", 5*time.Second)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)

	clone := client.WithTimeout(700 * time.Millisecond)
	assert.Equal(t, 700*time.Millisecond, clone.httpClient.Timeout)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

func TestClientSendsBearerOnlyWhenConfigured(t *testing.T) {
	var auth []string
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))
		w.Write(jsonResponse([]any{}))
	})

	_, err := client.ListItems()
	require.NoError(t, err)
	client.SetAPIKey("")
	_, err = client.ListItems()
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer itm_testkey", ""}, auth)
}

func TestHTTPErrorEnvelope(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		b, _ := json.Marshal(map[string]any{
			"error": map[string]any{
				"code":    "NOT_FOUND",
				"message": "item not found",
			},
		})
		w.Write(b)
	})

	_, err := client.GetItem("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "item not found")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPErrorDetailString(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"name must not be empty"}`))
	})

	err := client.CreateItem(ItemInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "name must not be empty", err.Error())
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestHTTPErrorPlainBody(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := client.ListItems()
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestNetworkFailureIsClassified(t *testing.T) {
	client := NewClient("http://example.invalid", "")
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("dial tcp: connection refused")
	})

	_, err := client.ListItems()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClientHandlesMalformedJSON(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	_, err := client.GetItem("item-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestDecodeAcceptsBareAndEnveloped(t *testing.T) {
	bare, err := decodeList[ItemHeader]([]byte(`[{"id":"1","name":"Alpha","numTags":2}]`))
	require.NoError(t, err)
	wrapped, err := decodeList[ItemHeader](jsonResponse([]map[string]any{{"id": "1", "name": "Alpha", "numTags": 2}}))
	require.NoError(t, err)
	assert.Equal(t, bare, wrapped)

	one, err := decodeOne[ItemDetail]([]byte(`{"id":"1","name":"Alpha","description":"d","tags":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "Alpha", one.Name)
}

func TestDecodeListNullIsEmpty(t *testing.T) {
	items, err := decodeList[ItemHeader]([]byte(`{"data":null}`))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestBuildQuery(t *testing.T) {
	result := buildQuery("/api/items/search", QueryParams{"type": "tag", "text": "red"})
	assert.Contains(t, result, "/api/items/search?")
	assert.Contains(t, result, "type=tag")
	assert.Contains(t, result, "text=red")
}

func TestBuildQueryEmpty(t *testing.T) {
	assert.Equal(t, "/api/items", buildQuery("/api/items", nil))
	assert.Equal(t, "/api/items", buildQuery("/api/items", QueryParams{"text": ""}))
}

func TestClientConcurrentRequests(t *testing.T) {
	var count atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Write(jsonResponse(map[string]any{
			"id":   "item-1",
			"name": "test item",
			"tags": []any{},
		}))
	})

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := client.GetItem(fmt.Sprintf("item-%d", idx))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(workers), count.Load())
}
