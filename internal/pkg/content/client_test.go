package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAll(t *testing.T) {
	var gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":[{"_id":"p1","name":"Salmon Feast","category":"cat",` +
			`"slug":{"current":"salmon-feast"},"image":[{"asset":{"_ref":"image-abc-jpg"}}],` +
			`"sizeOptions":[{"size":"2kg","price":12,"_key":"k1"}],"flavor":["salmon"]}]}`))
	}))
	defer server.Close()

	client := &Client{
		baseURL:    server.URL,
		token:      "secret",
		httpClient: &http.Client{Timeout: time.Second},
	}

	products, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, `*[_type == "product"]`, gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "salmon-feast", products[0].Slug.Current)
	assert.Equal(t, "image-abc-jpg", products[0].Images[0].Asset.Ref)
	assert.Equal(t, 12.0, products[0].SizeOptions[0].Price)
}

func TestFetchByIDs(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client := &Client{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}

	products, err := client.FetchByIDs(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, `*[_type == "product" && _id in ["p1","p2"]]`, gotQuery)
}

func TestFetchByIDsEmpty(t *testing.T) {
	client := &Client{httpClient: &http.Client{}}

	products, err := client.FetchByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestQueryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &Client{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}

	_, err := client.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
