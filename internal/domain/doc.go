// Package domain models business prospects discovered through a places
// provider and the shapes written to the export targets.
//
// # Data Source
//
// Prospects come from the Google Maps Platform. A search resolves a location
// to coordinates (Geocoding API), lists nearby places for a keyword (Places
// Nearby Search) and fetches a fixed field set for each place (Place Details).
// Nearby Search returns at most 20 results per page and a next_page_token when
// more exist. The token only becomes valid a short time after it is issued,
// so callers wait before following it.
//
// # Location Input
//
// The location string typed by the user may carry coordinates picked on a map
// as a bracketed suffix:
//
//	"Arlon [49.6833,5.8167]"  →  ByCoordinates(49.6833, 5.8167), label "Arlon"
//	"Arlon"                   →  ByName("Arlon")
//	"Arlon [north]"           →  ByName("Arlon"), bracket content discarded
//
// See [ParseLocation].
//
// # Record Defaults
//
// Provider fields are optional. Missing values normalize to "" for text,
// "N/A" for the rating, "0" for the review count and an empty list for
// opening hours. See [Normalize].
//
// # Categories
//
// Export targets classify a prospect by the keyword that found it. The
// keyword is lower-cased and matched by substring against an ordered table;
// the first category containing a matching entry wins, otherwise "Autre".
// The table doubles as the keyword suggestion list served to the frontend.
// See [ResolveCategory].
package domain
