package domain

// Clone returns a deep copy so callers never share slices with the store.
func (t Trainer) Clone() Trainer {
	cp := t
	cp.CollectedPokemon = cloneInts(t.CollectedPokemon)
	cp.Items = cloneItems(t.Items)
	if t.Collections != nil {
		cp.Collections = cloneCollections(t.Collections)
	}
	return cp
}

// Clone returns a deep copy of the collection.
func (c PokemonCollection) Clone() PokemonCollection {
	cp := c
	cp.Pokemon = cloneInts(c.Pokemon)
	return cp
}

// Clone returns a deep copy of the location.
func (l Location) Clone() Location {
	cp := l
	cp.Weather = append([]string(nil), l.Weather...)
	if l.PokemonEncounters != nil {
		cp.PokemonEncounters = make([]PokemonEncounter, len(l.PokemonEncounters))
		for i, enc := range l.PokemonEncounters {
			enc.Conditions = append([]string(nil), enc.Conditions...)
			cp.PokemonEncounters[i] = enc
		}
	}
	return cp
}

// Clone returns a deep copy of the region and its locations.
func (r Region) Clone() Region {
	cp := r
	if r.Locations != nil {
		cp.Locations = make([]Location, len(r.Locations))
		for i, loc := range r.Locations {
			cp.Locations[i] = loc.Clone()
		}
	}
	return cp
}

// CloneItems deep-copies an inventory slice.
func CloneItems(items []TrainerItem) []TrainerItem { return cloneItems(items) }

// CloneCollections deep-copies a collection slice.
func CloneCollections(collections []PokemonCollection) []PokemonCollection {
	return cloneCollections(collections)
}

func cloneInts(values []int) []int {
	if values == nil {
		return []int{}
	}
	return append([]int(nil), values...)
}

func cloneItems(items []TrainerItem) []TrainerItem {
	if items == nil {
		return []TrainerItem{}
	}
	return append([]TrainerItem(nil), items...)
}

func cloneCollections(collections []PokemonCollection) []PokemonCollection {
	out := make([]PokemonCollection, len(collections))
	for i, c := range collections {
		out[i] = c.Clone()
	}
	return out
}

func dedupeInts(values []int) []int {
	out := make([]int, 0, len(values))
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
