package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootPageHTML = `<!DOCTYPE html>
<html>
<head><title>Sneaker Shop</title></head>
<body>
<div id="__next"></div>
<script id="__NEXT_DATA__" type="application/json">{"props":{},"page":"/","buildId":"abc123XYZ","isFallback":false}</script>
</body>
</html>`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 5*time.Second, 0), srv
}

func TestFetchBuildID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(rootPageHTML))
	}))

	buildID, err := client.FetchBuildID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123XYZ", buildID)
}

func TestFetchBuildIDWithoutNextDataScript(t *testing.T) {
	// Some caches strip the script id; the raw-page fallback still matches.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><script>{"buildId":"fallback42"}</script></html>`))
	}))

	buildID, err := client.FetchBuildID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fallback42", buildID)
}

func TestFetchBuildIDMissingToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
	}))

	_, err := client.FetchBuildID(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestFetchBuildIDRetriesTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(rootPageHTML))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second, 2)
	buildID, err := client.FetchBuildID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123XYZ", buildID)
	assert.Equal(t, 2, attempts)
}

func TestListSneakers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sneakers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Air Max 90"},{"id":2,"name":"Dunk Low"}]}`))
	}))

	items, err := client.ListSneakers(context.Background(), 2, 50)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Air Max 90", items[0]["name"])
}

func TestListSneakersMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>blocked</html>"))
	}))

	_, err := client.ListSneakers(context.Background(), 0, 10)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestFetchDetailForwardsStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_next/data/build1/en/s/air-max-90/77.json", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"notFound":true}`))
	}))

	detail, err := client.FetchDetail(context.Background(), "build1", "air-max-90", "77")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, detail.Status)
	assert.JSONEq(t, `{"notFound":true}`, string(detail.Body))
}

func TestFetchReleasesPreservesGroupOrder(t *testing.T) {
	payload := `{"pageProps":{"items":{
		"2026-09-01":[{"name":"Shoe A","is_released":false}],
		"2026-08-15":[{"name":"Shoe B","is_released":true},{"name":"Shoe C","is_released":false}],
		"2026-10-01":[{"name":"Shoe D","is_released":false}]
	}}}`

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_next/data/build1/en/releases.json", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	}))

	groups, err := client.FetchReleases(context.Background(), "build1")
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "2026-09-01", groups[0].Key)
	assert.Equal(t, "2026-08-15", groups[1].Key)
	assert.Equal(t, "2026-10-01", groups[2].Key)
	assert.Len(t, groups[1].Items, 2)
	assert.Equal(t, "Shoe B", groups[1].Items[0]["name"])
}

func TestFetchReleasesMissingItems(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pageProps":{}}`))
	}))

	_, err := client.FetchReleases(context.Background(), "build1")
	assert.ErrorIs(t, err, ErrUpstream)
}
