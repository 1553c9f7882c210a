package domain

import "strings"

// TrainerUpdate is a partial update. Nil fields are left untouched; set fields
// overwrite the stored value (last write wins, no merging inside slices).
// ID and JoinDate are deliberately absent: neither can change after creation.
type TrainerUpdate struct {
	Name             *string
	Avatar           *string
	Badges           *int
	PokemonCaught    *int
	FavoriteType     *string
	Region           *string
	Bio              *string
	CollectedPokemon []int
	Items            []TrainerItem
	Collections      []PokemonCollection
}

// Apply shallow-merges the set fields of u into t.
func (u TrainerUpdate) Apply(t *Trainer) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Avatar != nil {
		t.Avatar = *u.Avatar
	}
	if u.Badges != nil {
		t.Badges = *u.Badges
	}
	if u.PokemonCaught != nil {
		t.PokemonCaught = *u.PokemonCaught
	}
	if u.FavoriteType != nil {
		t.FavoriteType = *u.FavoriteType
	}
	if u.Region != nil {
		t.Region = *u.Region
	}
	if u.Bio != nil {
		t.Bio = *u.Bio
	}
	if u.CollectedPokemon != nil {
		t.CollectedPokemon = dedupeInts(u.CollectedPokemon)
	}
	if u.Items != nil {
		t.Items = cloneItems(u.Items)
	}
	if u.Collections != nil {
		t.Collections = cloneCollections(u.Collections)
	}
}

// Empty reports whether the update carries no fields.
func (u TrainerUpdate) Empty() bool {
	return u.Name == nil && u.Avatar == nil && u.Badges == nil && u.PokemonCaught == nil &&
		u.FavoriteType == nil && u.Region == nil && u.Bio == nil &&
		u.CollectedPokemon == nil && u.Items == nil && u.Collections == nil
}

// NewTrainer is the insert payload for a directory trainer. The store assigns
// the id and stamps the join date.
type NewTrainer struct {
	Name             string
	Avatar           string
	Badges           int
	PokemonCaught    int
	FavoriteType     string
	Region           string
	Bio              string
	CollectedPokemon []int
	Items            []TrainerItem
}

// Validate checks the closed-set and range constraints of an insert. The region
// is checked first so an unknown region always surfaces as InvalidRegionError.
func (n NewTrainer) Validate() error {
	if err := CheckRegion(n.Region); err != nil {
		return err
	}
	if strings.TrimSpace(n.Name) == "" {
		return ValidationError{Field: "name", Value: n.Name, Reason: "must not be empty"}
	}
	if n.FavoriteType != "" && !IsPokemonType(n.FavoriteType) {
		return ValidationError{Field: "favoriteType", Value: n.FavoriteType, Reason: "unknown pokemon type"}
	}
	if n.Badges < 0 || n.Badges > MaxBadges {
		return ValidationError{Field: "badges", Value: n.Badges, Reason: "must be between 0 and 8"}
	}
	if n.PokemonCaught < 0 {
		return ValidationError{Field: "pokemonCaught", Value: n.PokemonCaught, Reason: "must not be negative"}
	}
	for _, item := range n.Items {
		if err := validateItemFields(item.Category, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Trainer materialises the insert payload into a record without id or join date.
func (n NewTrainer) Trainer() Trainer {
	return Trainer{
		Name:             n.Name,
		Avatar:           n.Avatar,
		Badges:           n.Badges,
		PokemonCaught:    n.PokemonCaught,
		FavoriteType:     n.FavoriteType,
		Region:           n.Region,
		Bio:              n.Bio,
		CollectedPokemon: dedupeInts(n.CollectedPokemon),
		Items:            cloneItems(n.Items),
	}
}

// NewItem is an inventory item without an id.
type NewItem struct {
	Name        string
	Description string
	Category    ItemCategory
	Sprite      string
	Quantity    int
}

// Validate checks category membership and a non-negative quantity.
func (n NewItem) Validate() error {
	return validateItemFields(n.Category, n.Quantity)
}

// WithID builds the stored item.
func (n NewItem) WithID(id int) TrainerItem {
	return TrainerItem{
		ID:          id,
		Name:        n.Name,
		Description: n.Description,
		Category:    n.Category,
		Sprite:      n.Sprite,
		Quantity:    n.Quantity,
	}
}

func validateItemFields(category ItemCategory, quantity int) error {
	if !category.Valid() {
		return ValidationError{Field: "category", Value: category, Reason: "unknown item category"}
	}
	if quantity < 0 {
		return ValidationError{Field: "quantity", Value: quantity, Reason: "must not be negative"}
	}
	return nil
}

// NewCollection is the create payload for a named Pokémon collection.
type NewCollection struct {
	Name        string
	Description string
	Pokemon     []int
}

// WithID builds the stored collection, collapsing duplicate Pokémon ids.
func (n NewCollection) WithID(id string) PokemonCollection {
	return PokemonCollection{
		ID:          id,
		Name:        n.Name,
		Description: n.Description,
		Pokemon:     dedupeInts(n.Pokemon),
	}
}
