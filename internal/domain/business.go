package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// BusinessRecord is the canonical prospect shape returned by searches and
// consumed by every exporter. JSON keys follow the frontend contract.
type BusinessRecord struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Phone           string   `json:"phone"`
	Website         string   `json:"website"`
	Rating          Rating   `json:"rating"`
	TotalRatings    Count    `json:"total_ratings"`
	OpeningHours    []string `json:"opening_hours"`
	BusinessStatus  string   `json:"business_status"`
	AlreadyExported bool     `json:"alreadyExported"`
	Keyword         string   `json:"keyword,omitempty"` // set at export time only
}

// Rating is a provider rating that may be unknown. Unknown ratings render as "N/A".
type Rating struct {
	Value float64
	Known bool
}

// KnownRating returns a Rating holding v.
func KnownRating(v float64) Rating { return Rating{Value: v, Known: true} }

func (r Rating) String() string {
	if !r.Known {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Known {
		return []byte(`"N/A"`), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a number, a numeric string, "N/A" or null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	v, ok, err := decodeLooseNumber(data)
	if err != nil {
		return err
	}
	*r = Rating{Value: v, Known: ok}
	return nil
}

// Count is a provider review count that may be unknown. Unknown counts render as "0".
type Count struct {
	Value int
	Known bool
}

// KnownCount returns a Count holding n.
func KnownCount(n int) Count { return Count{Value: n, Known: true} }

func (c Count) String() string {
	if !c.Known {
		return "0"
	}
	return strconv.Itoa(c.Value)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte(`"0"`), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts a number, a numeric string or null.
func (c *Count) UnmarshalJSON(data []byte) error {
	v, ok, err := decodeLooseNumber(data)
	if err != nil {
		return err
	}
	*c = Count{Value: int(v), Known: ok}
	return nil
}

// decodeLooseNumber reads a JSON number or string. Non-numeric strings and
// null decode as unknown without error.
func decodeLooseNumber(data []byte) (float64, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false, nil
		}
		return v, true, nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchQuery is one inbound prospect search.
type SearchQuery struct {
	Keyword  string
	Location Location
	RadiusKm float64
	// Country is appended to textual locations before geocoding when non-empty.
	Country string
}

// RadiusMeters converts the kilometre radius for the provider.
func (q SearchQuery) RadiusMeters() int {
	return int(q.RadiusKm * 1000)
}
