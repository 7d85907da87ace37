package domain

import (
	"strconv"
	"strings"
)

// LocationKind tags the variant held by a Location.
type LocationKind int

const (
	LocationByName LocationKind = iota
	LocationByCoordinates
)

// Location is either a place name to geocode or explicit coordinates.
type Location struct {
	Kind        LocationKind
	Name        string // geocoding input for ByName, display label for ByCoordinates
	Coordinates Coordinates
}

// ByName builds a Location resolved through the geocoder.
func ByName(name string) Location {
	return Location{Kind: LocationByName, Name: strings.TrimSpace(name)}
}

// ByCoordinates builds a Location that bypasses the geocoder.
func ByCoordinates(lat, lng float64) Location {
	return Location{Kind: LocationByCoordinates, Coordinates: Coordinates{Lat: lat, Lng: lng}}
}

func (l Location) String() string {
	if l.Kind == LocationByCoordinates {
		return strconv.FormatFloat(l.Coordinates.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Coordinates.Lng, 'f', -1, 64)
	}
	return l.Name
}

// ParseLocation splits a raw location string into a Location. A bracketed
// "[lat,lng]" segment wins over the text when both numbers parse and are in
// range; otherwise the bracketed segment is dropped and the rest is geocoded.
func ParseLocation(raw string) Location {
	open := strings.Index(raw, "[")
	if open < 0 {
		return ByName(raw)
	}
	end := strings.Index(raw[open:], "]")
	if end < 0 {
		return ByName(raw)
	}
	end += open

	label := strings.TrimSpace(raw[:open] + " " + raw[end+1:])
	label = strings.Join(strings.Fields(label), " ")

	lat, lng, ok := parseCoordinatePair(raw[open+1 : end])
	if !ok {
		return ByName(label)
	}
	loc := ByCoordinates(lat, lng)
	loc.Name = label
	return loc
}

func parseCoordinatePair(s string) (float64, float64, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}
