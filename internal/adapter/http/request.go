package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
)

const (
	defaultRadiusKm = 5.0
	maxBodyBytes    = 10 << 20

	msgKeywordAndCityRequired = "Keyword and city are required"
	msgRadiusNotNumber        = "Radius must be a number"
	msgRadiusNotPositive      = "Radius must be a positive number"
	msgInvalidBody            = "Invalid JSON body"
)

var validate = validator.New()

// searchParams is the common input of both search endpoints.
type searchParams struct {
	Keyword string `json:"keyword" validate:"required"`
	City    string `json:"city" validate:"required"`
}

type searchBody struct {
	searchParams
	Radius json.RawMessage `json:"radius"`
}

type exportBody struct {
	Keyword string                  `json:"keyword"`
	City    string                  `json:"city"`
	Results []domain.BusinessRecord `json:"results"`
}

// normalize trims the inputs and checks both are present.
func (p *searchParams) normalize() error {
	p.Keyword = strings.TrimSpace(p.Keyword)
	p.City = strings.TrimSpace(p.City)
	if err := validate.Struct(p); err != nil {
		return domain.ValidationError(msgKeywordAndCityRequired)
	}
	return nil
}

// query builds the search. Bracketed coordinates in City skip geocoding.
func (p searchParams) query(radiusKm float64, country string) domain.SearchQuery {
	return domain.SearchQuery{
		Keyword:  p.Keyword,
		Location: domain.ParseLocation(p.City),
		RadiusKm: radiusKm,
		Country:  country,
	}
}

// parseRadius reads a radius in kilometers, defaulting when absent.
func parseRadius(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultRadiusKm, nil
	}
	km, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(km) || math.IsInf(km, 0) {
		return 0, domain.ValidationError(msgRadiusNotNumber)
	}
	if km <= 0 {
		return 0, domain.ValidationError(msgRadiusNotPositive)
	}
	return km, nil
}

// parseJSONRadius accepts a JSON number or a numeric string.
func parseJSONRadius(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return defaultRadiusKm, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, domain.ValidationError(msgRadiusNotNumber)
		}
		return parseRadius(s)
	}
	return parseRadius(string(raw))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ValidationError(msgInvalidBody), err)
	}
	return nil
}
