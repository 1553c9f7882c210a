package domain

import "strings"

// ValidRegions is the allow-list of home regions a directory trainer may declare.
var ValidRegions = []string{"Kanto", "Johto", "Hoenn", "Sinnoh", "Unova", "Kalos", "Alola", "Galar", "Paldea"}

// PokemonTypes lists the elemental types a trainer may pick as favorite.
var PokemonTypes = []string{
	"normal", "fire", "water", "grass", "electric", "ice", "fighting", "poison", "ground",
	"flying", "psychic", "bug", "rock", "ghost", "dark", "dragon", "steel", "fairy",
}

// IsValidRegion reports whether region is in ValidRegions. Matching is exact:
// "kanto" is not a valid region name.
func IsValidRegion(region string) bool {
	for _, r := range ValidRegions {
		if r == region {
			return true
		}
	}
	return false
}

// IsPokemonType reports whether t names one of PokemonTypes (case-insensitive).
func IsPokemonType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, known := range PokemonTypes {
		if known == t {
			return true
		}
	}
	return false
}
