package domain

// NearbyRequest asks for one page of places around a point.
type NearbyRequest struct {
	Center       Coordinates
	RadiusMeters int
	Keyword      string
	PageToken    string // empty for the first page
}

// NearbyPage is one page of Nearby Search results in provider order.
type NearbyPage struct {
	PlaceIDs      []string
	NextPageToken string // empty when no further page exists
}

// RawPlaceDetails holds the Place Details fields the service requests.
// Nil pointers and empty strings mean the provider omitted the field.
type RawPlaceDetails struct {
	Name             string
	FormattedAddress string
	PhoneNumber      string
	Website          string
	Rating           *float64
	UserRatingsTotal *int
	WeekdayText      []string
	BusinessStatus   string
}

// PlaceDetailFields is the fixed Place Details field mask.
var PlaceDetailFields = []string{
	"name",
	"formatted_address",
	"formatted_phone_number",
	"website",
	"rating",
	"user_ratings_total",
	"opening_hours",
	"business_status",
}
