package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Arrival is the compact projection of one brand-feed product.
type Arrival struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Href     string  `json:"href"`
}

type ArrivalsConfig struct {
	APIBaseURL  string
	WebBaseURL  string
	AnonymousID string
	ChannelID   string
	Country     string
	Language    string
}

// ArrivalsClient fetches the brand's product feed and projects it down to
// the handful of fields the frontend cares about.
type ArrivalsClient struct {
	httpClient *http.Client
	cfg        ArrivalsConfig
}

func NewArrivalsClient(cfg ArrivalsConfig, timeout time.Duration) *ArrivalsClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ArrivalsClient{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
}

func (c *ArrivalsClient) List(ctx context.Context) ([]Arrival, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build arrivals request: %v", ErrUpstream, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: arrivals request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read arrivals response: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arrivals status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			Products struct {
				Products []struct {
					Title    string `json:"title"`
					Subtitle string `json:"subtitle"`
					Price    struct {
						Currency     string  `json:"currency"`
						CurrentPrice float64 `json:"currentPrice"`
					} `json:"price"`
					Images struct {
						PortraitURL string `json:"portraitURL"`
					} `json:"images"`
					URL string `json:"url"`
				} `json:"products"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse arrivals payload: %v", ErrUpstream, err)
	}

	arrivals := make([]Arrival, 0, len(parsed.Data.Products.Products))
	for _, p := range parsed.Data.Products.Products {
		arrivals = append(arrivals, Arrival{
			Title:    p.Title,
			Subtitle: p.Subtitle,
			Currency: p.Price.Currency,
			Price:    p.Price.CurrentPrice,
			Image:    p.Images.PortraitURL,
			Href:     c.productHref(p.URL),
		})
	}
	return arrivals, nil
}

func (c *ArrivalsClient) requestURL() string {
	countryLang := fmt.Sprintf("%s-GB", c.cfg.Language)

	endpoint := fmt.Sprintf(
		"/product_feed/rollup_threads/v2?filter=marketplace(%s)&filter=language(%s)&filter=employeePrice(true)&anchor=72&consumerChannelId=%s&count=24",
		c.cfg.Country, countryLang, c.cfg.ChannelID,
	)

	q := url.Values{}
	q.Set("queryid", "products")
	q.Set("anonymousId", c.cfg.AnonymousID)
	q.Set("country", c.cfg.Country)
	q.Set("endpoint", endpoint)
	q.Set("language", countryLang)

	return c.cfg.APIBaseURL + "/cic/browse/v2?" + q.Encode()
}

// Upstream product URLs carry a {countryLang} placeholder.
func (c *ArrivalsClient) productHref(productURL string) string {
	localized := strings.ReplaceAll(productURL, "{countryLang}", c.cfg.Country+"-"+c.cfg.Language)
	return fmt.Sprintf("%s/%s/%s", c.cfg.WebBaseURL, c.cfg.Country, strings.TrimPrefix(localized, "/"))
}
