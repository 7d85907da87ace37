package domain

import "strings"

const (
	// OtherCategory labels keywords that match no table entry.
	OtherCategory = "Autre"
	// DefaultGlyph is the page icon used for OtherCategory.
	DefaultGlyph = "🏢"
)

// Category groups suggestion keywords under a label and glyph.
type Category struct {
	Name     string
	Glyph    string
	Keywords []string
}

// Categories is ordered: resolution takes the first match.
var Categories = []Category{
	{
		Name:  "Restauration",
		Glyph: "🍽️",
		Keywords: []string{
			"restaurant", "café", "boulangerie", "pizzeria", "traiteur",
			"restaurant japonais", "restaurant italien", "fast-food",
		},
	},
	{
		Name:  "Beauté & Bien-être",
		Glyph: "💆",
		Keywords: []string{
			"coiffeur", "salon de beauté", "spa", "institut de beauté",
			"barbier", "massage", "onglerie", "esthéticienne",
		},
	},
	{
		Name:  "Commerce",
		Glyph: "🏪",
		Keywords: []string{
			"boutique", "magasin", "épicerie", "supermarché",
			"librairie", "fleuriste", "boucherie", "primeur",
		},
	},
	{
		Name:  "Services",
		Glyph: "🛠️",
		Keywords: []string{
			"garage", "plombier", "électricien", "architecte",
			"avocat", "comptable", "agent immobilier", "assurance",
		},
	},
	{
		Name:  "Santé",
		Glyph: "⚕️",
		Keywords: []string{
			"médecin", "dentiste", "pharmacie", "kinésithérapeute",
			"ostéopathe", "vétérinaire", "opticien", "laboratoire",
		},
	},
}

// ResolveCategory returns the category label and glyph for a search keyword.
func ResolveCategory(keyword string) (string, string) {
	kw := strings.ToLower(keyword)
	for _, c := range Categories {
		for _, k := range c.Keywords {
			if strings.Contains(kw, strings.ToLower(k)) {
				return c.Name, c.Glyph
			}
		}
	}
	return OtherCategory, DefaultGlyph
}

// Suggestion is the wire form of one category in the suggestion table.
type Suggestion struct {
	Emoji    string   `json:"emoji"`
	Keywords []string `json:"keywords"`
}

// Suggestions returns the keyword suggestion table keyed by category label.
func Suggestions() map[string]Suggestion {
	out := make(map[string]Suggestion, len(Categories))
	for _, c := range Categories {
		out[c.Name] = Suggestion{Emoji: c.Glyph, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}
