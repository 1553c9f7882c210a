package pokeapi

import (
	"fmt"
	"strings"
)

const noDescription = "No description available."

// EnglishDescription returns the first English flavor text with form feeds
// and newlines replaced by spaces.
func EnglishDescription(entries []FlavorText) string {
	for _, e := range entries {
		if e.Language.Name == "en" {
			return strings.NewReplacer("\f", " ", "\n", " ").Replace(e.FlavorText)
		}
	}
	return noDescription
}

// EnglishGenus returns the English genus ("Seed Pokémon"), or "".
func EnglishGenus(genera []Genus) string {
	for _, g := range genera {
		if g.Language.Name == "en" {
			return g.Genus
		}
	}
	return ""
}

// FormatHeight converts decimetres to metres, e.g. 7 -> "0.7 m".
func FormatHeight(decimetres int) string {
	return fmt.Sprintf("%.1f m", float64(decimetres)/10)
}

// FormatWeight converts hectograms to kilograms, e.g. 69 -> "6.9 kg".
func FormatWeight(hectograms int) string {
	return fmt.Sprintf("%.1f kg", float64(hectograms)/10)
}

var statNames = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Atk",
	"special-defense": "Sp. Def",
	"speed":           "Speed",
}

// FormatStatName maps API stat names to display labels.
func FormatStatName(name string) string {
	if label, ok := statNames[name]; ok {
		return label
	}
	return Capitalize(name)
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
