package pokeapi

// NamedResource is the {name, url} pair PokeAPI uses for references.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonListPage is one page of /pokemon.
type PokemonListPage struct {
	Count    int             `json:"count"`
	Next     string          `json:"next"`
	Previous string          `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// Pokemon is the /pokemon/{name-or-id} record.
type Pokemon struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Types          []PokemonType    `json:"types"`
	Sprites        Sprites          `json:"sprites"`
	Stats          []PokemonStat    `json:"stats"`
	Height         int              `json:"height"` // decimetres
	Weight         int              `json:"weight"` // hectograms
	BaseExperience int              `json:"base_experience"`
	Abilities      []PokemonAbility `json:"abilities"`
	Species        NamedResource    `json:"species"`
}

// TypeNames returns the type names ordered by slot as served.
func (p Pokemon) TypeNames() []string {
	out := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		out = append(out, t.Type.Name)
	}
	return out
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type Sprites struct {
	FrontDefault string       `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

type OtherSprites struct {
	OfficialArtwork Artwork `json:"official-artwork"`
}

type Artwork struct {
	FrontDefault string `json:"front_default"`
}

// PokemonSpecies is the /pokemon-species/{name-or-id} record.
type PokemonSpecies struct {
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	EvolutionChain    struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
	Genera []Genus       `json:"genera"`
	Color  NamedResource `json:"color"`
}

type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

// EvolutionChain is the /evolution-chain/{id} record.
type EvolutionChain struct {
	ID    int                `json:"id"`
	Chain EvolutionChainLink `json:"chain"`
}

type EvolutionChainLink struct {
	Species          NamedResource        `json:"species"`
	EvolutionDetails []EvolutionDetail    `json:"evolution_details"`
	EvolvesTo        []EvolutionChainLink `json:"evolves_to"`
}

type EvolutionDetail struct {
	MinLevel *int           `json:"min_level"`
	Item     *NamedResource `json:"item"`
	Trigger  NamedResource  `json:"trigger"`
}

// SpeciesNames walks the chain depth first and returns every species name.
func (c EvolutionChain) SpeciesNames() []string {
	var out []string
	var walk func(EvolutionChainLink)
	walk = func(link EvolutionChainLink) {
		out = append(out, link.Species.Name)
		for _, next := range link.EvolvesTo {
			walk(next)
		}
	}
	walk(c.Chain)
	return out
}
