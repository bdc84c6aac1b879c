package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sneakerhub/internal/pkg/retry"
)

var ErrUpstream = errors.New("upstream request failed")

var buildIDRe = regexp.MustCompile(`"buildId":"(.*?)"`)

// Client talks to the sneaker retailer: the server-rendered root page for
// buildId discovery, the listing API, and the Next.js data endpoints for
// detail pages and the release calendar.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	maxRetries int
}

type DetailResult struct {
	Status int
	Body   json.RawMessage
}

// ReleaseGroup is one date bucket from the release calendar, in the order
// the upstream document lists it.
type ReleaseGroup struct {
	Key   string
	Items []map[string]any
}

func NewClient(baseURL, apiToken string, timeout time.Duration, maxRetries int) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiToken:   apiToken,
		maxRetries: maxRetries,
	}
}

// FetchBuildID scrapes the build token the upstream site embeds in its
// __NEXT_DATA__ script. Transient failures are retried with backoff.
func (c *Client) FetchBuildID(ctx context.Context) (string, error) {
	var buildID string
	err := retry.Do(ctx, c.maxRetries, 500*time.Millisecond, func() error {
		id, err := c.fetchBuildIDOnce(ctx)
		if err != nil {
			return err
		}
		buildID = id
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: fetch build id: %v", ErrUpstream, err)
	}
	return buildID, nil
}

func (c *Client) fetchBuildIDOnce(ctx context.Context) (string, error) {
	body, status, err := c.get(ctx, c.baseURL+"/", false)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("root page status %d", status)
	}

	// Prefer the __NEXT_DATA__ script; fall back to matching the raw page.
	haystack := body
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		if script := doc.Find("script#__NEXT_DATA__").First().Text(); script != "" {
			haystack = []byte(script)
		}
	}

	match := buildIDRe.FindSubmatch(haystack)
	if match == nil {
		return "", errors.New("build id token not found in root page")
	}
	return string(match[1]), nil
}

// ListSneakers fetches one page of the listing API. Items are returned as
// loosely-typed records; upstream owns the schema.
func (c *Client) ListSneakers(ctx context.Context, page, perPage int) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/api/sneakers?page=%d&limit=%d", c.baseURL, page, perPage)
	body, status, err := c.get(ctx, url, true)
	if err != nil {
		return nil, fmt.Errorf("%w: list sneakers: %v", ErrUpstream, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: list sneakers status %d", ErrUpstream, status)
	}

	var parsed struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse sneakers payload: %v", ErrUpstream, err)
	}
	return parsed.Items, nil
}

// FetchDetail returns the detail-page data payload along with the upstream
// status. A non-200 status is not an error here; the caller forwards it.
func (c *Client) FetchDetail(ctx context.Context, buildID, slug, id string) (*DetailResult, error) {
	url := fmt.Sprintf("%s/_next/data/%s/en/s/%s/%s.json", c.baseURL, buildID, slug, id)
	body, status, err := c.get(ctx, url, false)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch detail: %v", ErrUpstream, err)
	}
	return &DetailResult{Status: status, Body: body}, nil
}

// FetchReleases fetches the release calendar data page. Groups keep the
// document order of the upstream JSON object so pagination over the
// flattened sequence stays deterministic.
func (c *Client) FetchReleases(ctx context.Context, buildID string) ([]ReleaseGroup, error) {
	url := fmt.Sprintf("%s/_next/data/%s/en/releases.json", c.baseURL, buildID)
	body, status, err := c.get(ctx, url, false)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch releases: %v", ErrUpstream, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch releases status %d", ErrUpstream, status)
	}

	var parsed struct {
		PageProps struct {
			Items json.RawMessage `json:"items"`
		} `json:"pageProps"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse releases payload: %v", ErrUpstream, err)
	}
	if len(parsed.PageProps.Items) == 0 {
		return nil, fmt.Errorf("%w: releases payload missing pageProps.items", ErrUpstream)
	}

	groups, err := parseReleaseGroups(parsed.PageProps.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: parse release groups: %v", ErrUpstream, err)
	}
	return groups, nil
}

// parseReleaseGroups walks the items object token by token instead of
// decoding into a map, which would randomize group order.
func parseReleaseGroups(raw json.RawMessage) ([]ReleaseGroup, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("items is not a JSON object")
	}

	var groups []ReleaseGroup
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("unexpected token in items object")
		}

		var items []map[string]any
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode release group %q: %w", key, err)
		}
		groups = append(groups, ReleaseGroup{Key: key, Items: items})
	}
	return groups, nil
}

func (c *Client) get(ctx context.Context, url string, authenticated bool) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request failed: %w", err)
	}
	if authenticated && c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response failed: %w", err)
	}
	return body, resp.StatusCode, nil
}
