package prospect

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

// PageTokenDelay is how long a Nearby Search page token takes to become valid.
const PageTokenDelay = 2 * time.Second

// Searcher runs prospect searches against a places provider, flagging
// businesses already present in the workspace.
type Searcher struct {
	places     PlacesProvider
	duplicates *DuplicateChecker
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewSearcher creates a Searcher. duplicates may wrap a nil workspace, in
// which case every result is reported as not yet exported.
func NewSearcher(places PlacesProvider, duplicates *DuplicateChecker, logger *slog.Logger, metrics *observability.Metrics) *Searcher {
	return &Searcher{
		places:     places,
		duplicates: duplicates,
		logger:     logger,
		metrics:    metrics,
	}
}

// Search resolves the query location, collects every result page and returns
// one record per place whose details could be fetched, in provider order.
func (s *Searcher) Search(ctx context.Context, q domain.SearchQuery) ([]domain.BusinessRecord, error) {
	if q.Keyword == "" {
		return nil, domain.ValidationError("Keyword and city are required")
	}
	if q.Location.Kind == domain.LocationByName && q.Location.Name == "" {
		return nil, domain.ValidationError("Keyword and city are required")
	}
	if math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm <= 0 {
		return nil, domain.ValidationError("Radius must be a positive number")
	}

	center, err := s.ResolveLocation(ctx, q.Location, q.Country)
	if err != nil {
		return nil, err
	}

	placeIDs, err := s.searchNearby(ctx, center, q.RadiusMeters(), q.Keyword)
	if err != nil {
		return nil, domain.UpstreamError("nearby search", "Error during places API call", err)
	}

	records := make([]domain.BusinessRecord, 0, len(placeIDs))
	for _, id := range placeIDs {
		rec, ok := s.fetchDetails(ctx, id)
		if !ok {
			continue
		}
		rec.AlreadyExported = s.duplicates.Exists(ctx, rec.Name)
		records = append(records, rec)
	}

	s.metrics.SearchResults.Observe(float64(len(records)))
	s.logger.Info("search completed",
		"keyword", q.Keyword,
		"location", q.Location.String(),
		"radius_km", q.RadiusKm,
		"places", len(placeIDs),
		"results", len(records),
	)
	return records, nil
}

// ResolveLocation returns explicit coordinates as-is, otherwise geocodes the
// name, suffixed with country when non-empty.
func (s *Searcher) ResolveLocation(ctx context.Context, loc domain.Location, country string) (domain.Coordinates, error) {
	if loc.Kind == domain.LocationByCoordinates {
		return loc.Coordinates, nil
	}

	query := loc.Name
	if country != "" {
		query = loc.Name + ", " + country
	}

	coords, found, err := s.places.Geocode(ctx, query)
	if err != nil {
		s.logger.Warn("geocoding failed", "location", query, "error", err)
		return domain.Coordinates{}, domain.UpstreamError("geocode", "Erreur lors du géocodage: "+err.Error(), err)
	}
	if !found {
		return domain.Coordinates{}, domain.NotFoundError("Localisation '" + query + "' non trouvée")
	}
	return coords, nil
}

// searchNearby follows page tokens until the provider stops returning one,
// waiting PageTokenDelay before each follow-up request.
func (s *Searcher) searchNearby(ctx context.Context, center domain.Coordinates, radiusMeters int, keyword string) ([]string, error) {
	req := domain.NearbyRequest{
		Center:       center,
		RadiusMeters: radiusMeters,
		Keyword:      keyword,
	}

	var ids []string
	for page := 1; ; page++ {
		resp, err := s.places.NearbySearch(ctx, req)
		if err != nil {
			return nil, err
		}
		ids = append(ids, resp.PlaceIDs...)
		s.logger.Debug("nearby page fetched", "page", page, "results", len(resp.PlaceIDs), "has_next", resp.NextPageToken != "")

		if resp.NextPageToken == "" {
			return ids, nil
		}
		if !sleepWithContext(ctx, PageTokenDelay) {
			return nil, ctx.Err()
		}
		req.PageToken = resp.NextPageToken
	}
}

// fetchDetails returns false when the place must be dropped from the results.
func (s *Searcher) fetchDetails(ctx context.Context, placeID string) (domain.BusinessRecord, bool) {
	raw, err := s.places.PlaceDetails(ctx, placeID)
	if err != nil {
		s.logger.Warn("place details failed, skipping place", "place_id", placeID, "error", err)
		s.metrics.PlaceDetailsSkipped.Inc()
		return domain.BusinessRecord{}, false
	}
	return domain.Normalize(raw, placeID), true
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
