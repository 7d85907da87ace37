package googlemaps

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

// Client implements prospect.PlacesProvider using the Google Maps Geocoding
// and Places APIs.
type Client struct {
	maps    *maps.Client
	fields  []maps.PlaceDetailsFieldMask
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates a Google Maps client authenticated with apiKey.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) (*Client, error) {
	return newClient(apiKey, timeout, "", logger, metrics)
}

func newClient(apiKey string, timeout time.Duration, baseURL string, logger *slog.Logger, metrics *observability.Metrics) (*Client, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}

	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}

	fields := make([]maps.PlaceDetailsFieldMask, 0, len(domain.PlaceDetailFields))
	for _, name := range domain.PlaceDetailFields {
		f, err := maps.ParsePlaceDetailsFieldMask(name)
		if err != nil {
			return nil, fmt.Errorf("parse place details field %q: %w", name, err)
		}
		fields = append(fields, f)
	}

	return &Client{maps: mc, fields: fields, logger: logger, metrics: metrics}, nil
}

// Geocode returns the coordinates of the first geocoding match for address.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	start := time.Now()
	results, err := c.maps.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		c.observe("geocode", start, "error")
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		c.observe("geocode", start, "empty")
		c.logger.Debug("geocoding returned no result", "address", address)
		return domain.Coordinates{}, false, nil
	}

	c.observe("geocode", start, "success")
	loc := results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}

// NearbySearch fetches one page of places. Follow-up pages are requested by
// page token alone.
func (c *Client) NearbySearch(ctx context.Context, req domain.NearbyRequest) (domain.NearbyPage, error) {
	r := &maps.NearbySearchRequest{PageToken: req.PageToken}
	if req.PageToken == "" {
		r.Location = &maps.LatLng{Lat: req.Center.Lat, Lng: req.Center.Lng}
		r.Radius = uint(req.RadiusMeters)
		r.Keyword = req.Keyword
	}

	start := time.Now()
	resp, err := c.maps.NearbySearch(ctx, r)
	if err != nil {
		c.observe("nearby", start, "error")
		return domain.NearbyPage{}, fmt.Errorf("nearby search: %w", err)
	}
	if len(resp.Results) == 0 {
		c.observe("nearby", start, "empty")
	} else {
		c.observe("nearby", start, "success")
	}

	page := domain.NearbyPage{
		PlaceIDs:      make([]string, 0, len(resp.Results)),
		NextPageToken: resp.NextPageToken,
	}
	for _, p := range resp.Results {
		page.PlaceIDs = append(page.PlaceIDs, p.PlaceID)
	}
	return page, nil
}

// PlaceDetails fetches the fixed detail field mask for placeID.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (domain.RawPlaceDetails, error) {
	start := time.Now()
	res, err := c.maps.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  c.fields,
	})
	if err != nil {
		c.observe("details", start, "error")
		return domain.RawPlaceDetails{}, fmt.Errorf("place details %s: %w", placeID, err)
	}
	c.observe("details", start, "success")

	raw := domain.RawPlaceDetails{
		Name:             res.Name,
		FormattedAddress: res.FormattedAddress,
		PhoneNumber:      res.FormattedPhoneNumber,
		Website:          res.Website,
		BusinessStatus:   res.BusinessStatus,
	}
	// Ratings start at 1; zero means the field was absent.
	if res.Rating > 0 {
		v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(res.Rating), 'f', -1, 32), 64)
		raw.Rating = &v
	}
	if res.UserRatingsTotal > 0 {
		n := res.UserRatingsTotal
		raw.UserRatingsTotal = &n
	}
	if res.OpeningHours != nil {
		raw.WeekdayText = res.OpeningHours.WeekdayText
	}
	return raw, nil
}

func (c *Client) observe(method string, start time.Time, outcome string) {
	c.metrics.PlacesAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	c.metrics.PlacesRequests.WithLabelValues(method, outcome).Inc()
}
