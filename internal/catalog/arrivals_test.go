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

const arrivalsPayload = `{"data":{"products":{"products":[
	{
		"title":"Air Zoom Pegasus 41",
		"subtitle":"Men's Road Running Shoes",
		"price":{"currency":"CAD","currentPrice":180},
		"images":{"portraitURL":"https://img.example/pegasus.png"},
		"url":"{countryLang}/t/air-zoom-pegasus-41"
	},
	{
		"title":"Dunk Low Retro",
		"subtitle":"Men's Shoes",
		"price":{"currency":"CAD","currentPrice":135.99},
		"images":{"portraitURL":"https://img.example/dunk.png"},
		"url":"{countryLang}/t/dunk-low-retro"
	}
]}}}`

func newTestArrivalsClient(t *testing.T, handler http.Handler) *ArrivalsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewArrivalsClient(ArrivalsConfig{
		APIBaseURL:  srv.URL,
		WebBaseURL:  "https://www.nike.com",
		AnonymousID: "anon-1",
		ChannelID:   "chan-1",
		Country:     "ca",
		Language:    "en",
	}, 5*time.Second)
}

func TestArrivalsList(t *testing.T) {
	client := newTestArrivalsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cic/browse/v2", r.URL.Path)
		assert.Equal(t, "products", r.URL.Query().Get("queryid"))
		assert.Equal(t, "anon-1", r.URL.Query().Get("anonymousId"))
		assert.Equal(t, "ca", r.URL.Query().Get("country"))
		assert.Contains(t, r.URL.Query().Get("endpoint"), "marketplace(ca)")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(arrivalsPayload))
	}))

	arrivals, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, arrivals, 2)

	assert.Equal(t, Arrival{
		Title:    "Air Zoom Pegasus 41",
		Subtitle: "Men's Road Running Shoes",
		Currency: "CAD",
		Price:    180,
		Image:    "https://img.example/pegasus.png",
		Href:     "https://www.nike.com/ca/ca-en/t/air-zoom-pegasus-41",
	}, arrivals[0])
	assert.Equal(t, 135.99, arrivals[1].Price)
}

func TestArrivalsListUpstreamFailure(t *testing.T) {
	client := newTestArrivalsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestArrivalsListMalformedBody(t *testing.T) {
	client := newTestArrivalsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}
