package queries

import (
	"context"
	"sort"

	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/geo"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// SearchSpacesQuery is the typed search input. Handlers build it from query
// parameters once and nothing downstream re-parses strings.
type SearchSpacesQuery struct {
	Center      *geo.Coordinate
	RadiusMiles float64
	Filters     SpaceFilters
	Sort        SortKey
	Page        int
	Limit       int
}

func (q *SearchSpacesQuery) normalize() error {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.Sort == "" {
		q.Sort = SortCreatedAt
	}
	if !q.Sort.IsValid() {
		return errs.ErrInvalidSearchQuery
	}
	if q.Sort == SortDistance && q.Center == nil {
		return errs.ErrInvalidSearchQuery
	}
	if q.Center != nil && q.RadiusMiles <= 0 {
		return errs.ErrInvalidSearchQuery
	}
	if q.Filters.MinPriceCents != nil && *q.Filters.MinPriceCents < 0 {
		return errs.ErrInvalidSearchQuery
	}
	if q.Filters.MaxPriceCents != nil && q.Filters.MinPriceCents != nil &&
		*q.Filters.MaxPriceCents < *q.Filters.MinPriceCents {
		return errs.ErrInvalidSearchQuery
	}
	return nil
}

type SpaceSearchStore interface {
	SearchWithinBox(ctx context.Context, box geo.Box, filters SpaceFilters) ([]*SpaceView, error)
	SearchPage(ctx context.Context, filters SpaceFilters, sort SortKey, limit, offset int) ([]*SpaceView, error)
}

// Search runs a proximity search when a center is given, a plain filtered
// listing otherwise.
//
// The proximity path fetches every bounding-box candidate and filters,
// ranks, and pages in memory: the box over-approximates the circle, so the
// store cannot page correctly on its own. Listing paths push ordering and
// paging into the store.
func (q *spaceQueriesImpl) Search(ctx context.Context, query SearchSpacesQuery) (*SearchResult, error) {
	if err := query.normalize(); err != nil {
		return nil, err
	}
	if query.Center != nil {
		return q.searchByProximity(ctx, query)
	}
	return q.searchByListing(ctx, query)
}

func (q *spaceQueriesImpl) searchByProximity(ctx context.Context, query SearchSpacesQuery) (*SearchResult, error) {
	box := geo.BoundingBox(*query.Center, query.RadiusMiles)
	candidates, err := q.store.SearchWithinBox(ctx, box, query.Filters)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items := make([]*SpaceSearchItem, 0, len(candidates))
	for _, view := range candidates {
		d := geo.Distance(*query.Center, geo.Coordinate{Latitude: view.Latitude, Longitude: view.Longitude})
		if d > query.RadiusMiles {
			continue
		}
		dist := d
		items = append(items, &SpaceSearchItem{SpaceView: *view, DistanceMiles: &dist})
	}

	sortItems(items, query.Sort)
	return pageOf(items, query.Page, query.Limit), nil
}

func (q *spaceQueriesImpl) searchByListing(ctx context.Context, query SearchSpacesQuery) (*SearchResult, error) {
	offset := (query.Page - 1) * query.Limit
	views, err := q.store.SearchPage(ctx, query.Filters, query.Sort, query.Limit, offset)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items := make([]*SpaceSearchItem, 0, len(views))
	for _, view := range views {
		items = append(items, &SpaceSearchItem{SpaceView: *view})
	}
	return &SearchResult{Items: items, Page: query.Page, Limit: query.Limit}, nil
}

// sortItems ranks in-memory candidates. Ties break on newest first, then ID,
// so paging is deterministic across requests.
func sortItems(items []*SpaceSearchItem, key SortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch key {
		case SortDistance:
			if *a.DistanceMiles != *b.DistanceMiles {
				return *a.DistanceMiles < *b.DistanceMiles
			}
		case SortPrice:
			if a.PricePerHourCents != b.PricePerHourCents {
				return a.PricePerHourCents < b.PricePerHourCents
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

func pageOf(items []*SpaceSearchItem, page, limit int) *SearchResult {
	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return &SearchResult{Items: items[start:end], Page: page, Limit: limit}
}
