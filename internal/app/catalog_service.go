package app

import (
	"context"
	"errors"
	"log"

	"sneakerhub/internal/catalog"
	"sneakerhub/internal/pkg/slug"
)

var ErrEmptySlug = errors.New("slug is required")

// BuildIDCache hides redis behind an interface so tests can swap it out.
type BuildIDCache interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, buildID string) error
}

type CatalogService struct {
	client   *catalog.Client
	arrivals *catalog.ArrivalsClient
	cache    BuildIDCache

	defaultPerPage  int
	releasesPerPage int
	maxPerPage      int
}

func NewCatalogService(
	client *catalog.Client,
	arrivals *catalog.ArrivalsClient,
	cache BuildIDCache,
	defaultPerPage, releasesPerPage, maxPerPage int,
) *CatalogService {
	if defaultPerPage <= 0 {
		defaultPerPage = 100
	}
	if releasesPerPage <= 0 {
		releasesPerPage = 30
	}
	if maxPerPage <= 0 {
		maxPerPage = 100
	}
	return &CatalogService{
		client:          client,
		arrivals:        arrivals,
		cache:           cache,
		defaultPerPage:  defaultPerPage,
		releasesPerPage: releasesPerPage,
		maxPerPage:      maxPerPage,
	}
}

// buildID resolves the upstream build token, preferring the cached value.
// Cache failures degrade to a fresh discovery instead of failing the request.
func (s *CatalogService) buildID(ctx context.Context) (string, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("build id cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	buildID, err := s.client.FetchBuildID(ctx)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, buildID); err != nil {
			log.Printf("build id cache write failed: %v", err)
		}
	}
	return buildID, nil
}

// ListSneakers fetches one listing page and adds a derived slug per item.
func (s *CatalogService) ListSneakers(ctx context.Context, page, perPage int) ([]map[string]any, error) {
	page, perPage = s.clampPaging(page, perPage, s.defaultPerPage)

	if _, err := s.buildID(ctx); err != nil {
		return nil, err
	}

	items, err := s.client.ListSneakers(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		name, _ := item["name"].(string)
		item["slug"] = slug.Make(name)
	}
	return items, nil
}

// SneakerDetail proxies the upstream detail payload. The upstream status is
// forwarded as-is; only transport failures surface as errors.
func (s *CatalogService) SneakerDetail(ctx context.Context, slugParam, id string) (*catalog.DetailResult, error) {
	if slugParam == "" {
		return nil, ErrEmptySlug
	}

	buildID, err := s.buildID(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.FetchDetail(ctx, buildID, slugParam, id)
}

// ListUnreleased flattens the release calendar in document order, keeps the
// not-yet-released items, and windows them with a 1-based running count:
// an item lands on the page when page*perPage < count <= (page+1)*perPage.
func (s *CatalogService) ListUnreleased(ctx context.Context, page, perPage int) ([]map[string]any, error) {
	page, perPage = s.clampPaging(page, perPage, s.releasesPerPage)

	buildID, err := s.buildID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.client.FetchReleases(ctx, buildID)
	if err != nil {
		return nil, err
	}

	unreleased := make([]map[string]any, 0, perPage)
	count := 0
	for _, group := range groups {
		for _, item := range group.Items {
			released, _ := item["is_released"].(bool)
			if released {
				continue
			}
			count++
			if count > page*perPage && count <= (page+1)*perPage {
				name, _ := item["name"].(string)
				item["slug"] = slug.Make(name)
				unreleased = append(unreleased, item)
			}
		}
	}
	return unreleased, nil
}

func (s *CatalogService) ListArrivals(ctx context.Context) ([]catalog.Arrival, error) {
	return s.arrivals.List(ctx)
}

func (s *CatalogService) clampPaging(page, perPage, fallback int) (int, int) {
	if page < 0 {
		page = 0
	}
	if perPage <= 0 {
		perPage = fallback
	}
	if perPage > s.maxPerPage {
		perPage = s.maxPerPage
	}
	return page, perPage
}
