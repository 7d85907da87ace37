package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Location
	}{
		{
			name: "plain name",
			raw:  "Arlon",
			want: Location{Kind: LocationByName, Name: "Arlon"},
		},
		{
			name: "trailing coordinates",
			raw:  "Arlon [49.6833,5.8167]",
			want: Location{Kind: LocationByCoordinates, Name: "Arlon", Coordinates: Coordinates{Lat: 49.6833, Lng: 5.8167}},
		},
		{
			name: "coordinates with spaces",
			raw:  "Musson [ 49.5667 , 5.5333 ]",
			want: Location{Kind: LocationByCoordinates, Name: "Musson", Coordinates: Coordinates{Lat: 49.5667, Lng: 5.5333}},
		},
		{
			name: "negative coordinates only",
			raw:  "[-33.8688,151.2093]",
			want: Location{Kind: LocationByCoordinates, Coordinates: Coordinates{Lat: -33.8688, Lng: 151.2093}},
		},
		{
			name: "unparseable bracket is dropped",
			raw:  "Arlon [north]",
			want: Location{Kind: LocationByName, Name: "Arlon"},
		},
		{
			name: "single number is dropped",
			raw:  "Arlon [49.6]",
			want: Location{Kind: LocationByName, Name: "Arlon"},
		},
		{
			name: "out of range latitude is dropped",
			raw:  "Arlon [149.6,5.8]",
			want: Location{Kind: LocationByName, Name: "Arlon"},
		},
		{
			name: "unclosed bracket keeps raw text",
			raw:  "Arlon [49.6,5.8",
			want: Location{Kind: LocationByName, Name: "Arlon [49.6,5.8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocation(tt.raw))
		})
	}
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "Namur", ByName(" Namur ").String())
	assert.Equal(t, "50.4669,4.8675", ByCoordinates(50.4669, 4.8675).String())
}
