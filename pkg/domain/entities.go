// Package domain defines the trainer, inventory, collection and map records
// managed by trainerdex, together with the change and rule primitives used by
// the transactional store.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and error messages.
const (
	// EntityTrainer identifies a trainer record (current trainer or directory entry).
	EntityTrainer EntityType = "trainer"
	// EntityTrainerItem identifies an inventory item owned by a trainer.
	EntityTrainerItem EntityType = "trainer_item"
	// EntityPokemonCollection identifies a named Pokémon grouping owned by a trainer.
	EntityPokemonCollection EntityType = "pokemon_collection"
	// EntityRegion identifies a region record.
	EntityRegion EntityType = "region"
	// EntityLocation identifies a location owned by a region.
	EntityLocation EntityType = "location"
)

// ItemCategory classifies inventory items.
type ItemCategory string

// Item categories understood by the inventory.
const (
	CategoryPokeball  ItemCategory = "pokeball"
	CategoryMedicine  ItemCategory = "medicine"
	CategoryBerry     ItemCategory = "berry"
	CategoryBattle    ItemCategory = "battle"
	CategoryEvolution ItemCategory = "evolution"
	CategoryMachine   ItemCategory = "machine"
	CategoryKey       ItemCategory = "key"
)

// ItemCategories lists every valid item category in display order.
var ItemCategories = []ItemCategory{
	CategoryPokeball,
	CategoryMedicine,
	CategoryBerry,
	CategoryBattle,
	CategoryEvolution,
	CategoryMachine,
	CategoryKey,
}

// Valid reports whether c is one of ItemCategories.
func (c ItemCategory) Valid() bool {
	for _, known := range ItemCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Rarity is the encounter tier of a wild Pokémon at a location.
type Rarity string

// Encounter rarity tiers.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very-rare"
	RarityLegendary Rarity = "legendary"
)

// Valid reports whether r is a known rarity tier.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityLegendary:
		return true
	}
	return false
}

// MaxBadges is the number of gym badges a trainer can hold.
const MaxBadges = 8

// Trainer is the shape shared by the current trainer and every directory entry.
type Trainer struct {
	ID               string              `json:"id" yaml:"id"`
	Name             string              `json:"name" yaml:"name"`
	Avatar           string              `json:"avatar" yaml:"avatar"`
	Badges           int                 `json:"badges" yaml:"badges"`
	PokemonCaught    int                 `json:"pokemonCaught" yaml:"pokemon_caught"`
	FavoriteType     string              `json:"favoriteType" yaml:"favorite_type"`
	Region           string              `json:"region" yaml:"region"`
	JoinDate         time.Time           `json:"joinDate" yaml:"join_date"`
	Bio              string              `json:"bio,omitempty" yaml:"bio,omitempty"`
	CollectedPokemon []int               `json:"collectedPokemon" yaml:"collected_pokemon"`
	Items            []TrainerItem       `json:"items" yaml:"items"`
	Collections      []PokemonCollection `json:"collections,omitempty" yaml:"collections,omitempty"`
}

// HasPokemon reports whether pokemonID is part of the trainer's collected set.
func (t Trainer) HasPokemon(pokemonID int) bool {
	return containsInt(t.CollectedPokemon, pokemonID)
}

// FindItem returns the index of the item with the given id, or -1.
func (t Trainer) FindItem(itemID int) int {
	for i, item := range t.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// FindCollection returns the index of the collection with the given id, or -1.
func (t Trainer) FindCollection(collectionID string) int {
	for i, c := range t.Collections {
		if c.ID == collectionID {
			return i
		}
	}
	return -1
}

// NextItemID returns max(existing item ids)+1, or 1 for an empty inventory.
func (t Trainer) NextItemID() int {
	next := 1
	for _, item := range t.Items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next
}

// TrainerItem is an inventory entry owned exclusively by one trainer.
type TrainerItem struct {
	ID          int          `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Category    ItemCategory `json:"category" yaml:"category"`
	Sprite      string       `json:"sprite" yaml:"sprite"`
	Quantity    int          `json:"quantity" yaml:"quantity"`
}

// PokemonCollection is a named set of Pokémon ids owned by a trainer.
type PokemonCollection struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Pokemon     []int  `json:"pokemon" yaml:"pokemon"`
}

// Contains reports membership of pokemonID.
func (c PokemonCollection) Contains(pokemonID int) bool {
	return containsInt(c.Pokemon, pokemonID)
}

// Coordinates positions a location on the region map.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// PokemonEncounter describes a wild Pokémon that can appear at a location.
type PokemonEncounter struct {
	PokemonID     int      `json:"pokemonId" yaml:"pokemon_id"`
	Name          string   `json:"name" yaml:"name"`
	Sprite        string   `json:"sprite" yaml:"sprite"`
	Rarity        Rarity   `json:"rarity" yaml:"rarity"`
	EncounterRate float64  `json:"encounterRate" yaml:"encounter_rate"`
	Conditions    []string `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Location is a place inside a region.
type Location struct {
	ID                string             `json:"id" yaml:"id"`
	Name              string             `json:"name" yaml:"name"`
	Region            string             `json:"region" yaml:"region"`
	Description       string             `json:"description" yaml:"description"`
	Coordinates       Coordinates        `json:"coordinates" yaml:"coordinates"`
	Weather           []string           `json:"weather" yaml:"weather"`
	PokemonEncounters []PokemonEncounter `json:"pokemonEncounters" yaml:"pokemon_encounters"`
}

// Region owns the locations found inside it.
type Region struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	MainImage   string     `json:"mainImage" yaml:"main_image"`
	Locations   []Location `json:"locations" yaml:"locations"`
}

// Change describes a mutation applied to an entity within a transaction.
type Change struct {
	Entity EntityType `json:"entity"`
	Action Action     `json:"action"`
	Before any        `json:"before,omitempty"`
	After  any        `json:"after,omitempty"`
}

// Action represents the type of mutation recorded in a Change.
type Action string

// Change actions enumerate supported CRUD operations captured in audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func containsInt(values []int, v int) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
