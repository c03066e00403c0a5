package request

import (
	"strings"
	"time"

	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/geo"
	"parkspot/internal/usecase/queries"
)

type SearchSpacesRequest struct {
	Latitude      *float64 `form:"lat"`
	Longitude     *float64 `form:"lon"`
	RadiusMiles   float64  `form:"radius"`
	MinPriceCents *int64   `form:"min_price_cents"`
	MaxPriceCents *int64   `form:"max_price_cents"`
	SpaceType     *string  `form:"space_type"`
	Keyword       *string  `form:"q"`
	Amenities     []string `form:"amenities"`
	Sort          string   `form:"sort"`
	Page          int      `form:"page"`
	Limit         int      `form:"limit"`
}

// ToQuery builds the typed search query. String parsing ends here.
func (r SearchSpacesRequest) ToQuery() (queries.SearchSpacesQuery, error) {
	query := queries.SearchSpacesQuery{
		RadiusMiles: r.RadiusMiles,
		Sort:        queries.SortKey(r.Sort),
		Page:        r.Page,
		Limit:       r.Limit,
		Filters: queries.SpaceFilters{
			MinPriceCents: r.MinPriceCents,
			MaxPriceCents: r.MaxPriceCents,
			SpaceType:     trimmed(r.SpaceType),
			Keyword:       trimmed(r.Keyword),
			Amenities:     r.Amenities,
		},
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return queries.SearchSpacesQuery{}, errs.ErrInvalidSearchQuery
	}
	if r.Latitude != nil {
		center, err := geo.NewCoordinate(*r.Latitude, *r.Longitude)
		if err != nil {
			return queries.SearchSpacesQuery{}, errs.Mark(err, errs.ErrInvalidSearchQuery)
		}
		query.Center = &center
	}

	return query, nil
}

type QuoteRequest struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
