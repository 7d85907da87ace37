package domain

// Normalize maps raw Place Details onto a BusinessRecord, substituting
// defaults for missing fields. AlreadyExported is left false for the caller.
func Normalize(raw RawPlaceDetails, placeID string) BusinessRecord {
	rec := BusinessRecord{
		ID:             placeID,
		Name:           raw.Name,
		Address:        raw.FormattedAddress,
		Phone:          raw.PhoneNumber,
		Website:        raw.Website,
		OpeningHours:   []string{},
		BusinessStatus: raw.BusinessStatus,
	}
	if raw.Rating != nil {
		rec.Rating = KnownRating(*raw.Rating)
	}
	if raw.UserRatingsTotal != nil {
		rec.TotalRatings = KnownCount(*raw.UserRatingsTotal)
	}
	if len(raw.WeekdayText) > 0 {
		rec.OpeningHours = append(rec.OpeningHours, raw.WeekdayText...)
	}
	return rec
}

// IsComplete reports whether the record has a name, an address and a phone.
func (r BusinessRecord) IsComplete() bool {
	return r.Name != "" && r.Address != "" && r.Phone != ""
}

// CompletenessNote is the workspace "Checker" text for the record.
func (r BusinessRecord) CompletenessNote() string {
	if r.IsComplete() {
		return "Informations complètes"
	}
	return "Informations incomplètes"
}
