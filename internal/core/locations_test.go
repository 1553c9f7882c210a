package core_test

import (
	"context"
	"errors"
	"testing"

	"trainerdex/pkg/domain"
)

func TestFetchLocationsFlattensRegions(t *testing.T) {
	svc := newService(t)
	locations, err := svc.FetchLocations(context.Background())
	if err != nil {
		t.Fatalf("fetch locations: %v", err)
	}
	if len(locations) != 8 {
		t.Fatalf("expected 8 seeded locations, got %d", len(locations))
	}
	if locations[0].ID != "pallet-town" || locations[len(locations)-1].ID != "petalburg-woods" {
		t.Fatalf("unexpected ordering: first=%s last=%s", locations[0].ID, locations[len(locations)-1].ID)
	}
}

func TestFetchLocationsByRegion(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, key := range []string{"kanto", "Kanto", "KANTO"} {
		locations, err := svc.FetchLocationsByRegion(ctx, key)
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		if len(locations) != 4 {
			t.Fatalf("%s: expected 4 Kanto locations, got %d", key, len(locations))
		}
	}

	_, err := svc.FetchLocationsByRegion(ctx, "orre")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown region, got %v", err)
	}
	if err.Error() != "No locations found for region: orre" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFetchLocationDetail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	forest, ok, err := svc.FetchLocationDetail(ctx, "kanto", "viridian-forest")
	if err != nil || !ok {
		t.Fatalf("expected Viridian Forest, got ok=%v err=%v", ok, err)
	}
	if len(forest.PokemonEncounters) != 3 {
		t.Fatalf("expected 3 encounters, got %d", len(forest.PokemonEncounters))
	}

	cases := []struct{ region, id string }{
		{"johto", "viridian-forest"},
		{"orre", "pallet-town"},
		{"kanto", "cerulean-city"},
	}
	for _, tc := range cases {
		if _, ok, err := svc.FetchLocationDetail(ctx, tc.region, tc.id); err != nil || ok {
			t.Fatalf("%s/%s: expected absent without error, got ok=%v err=%v", tc.region, tc.id, ok, err)
		}
	}
}

func TestFetchLocationByIDSearchesAllRegions(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	loc, ok, err := svc.FetchLocationByID(ctx, "ilex-forest")
	if err != nil || !ok {
		t.Fatalf("expected Ilex Forest, got ok=%v err=%v", ok, err)
	}
	if loc.Region != "Johto" {
		t.Fatalf("unexpected region %s", loc.Region)
	}
	if _, ok, _ := svc.FetchLocationByID(ctx, "mt-silver"); ok {
		t.Fatalf("unexpected hit for unknown location")
	}
}

func TestFetchRegions(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	regions, err := svc.FetchRegions(ctx)
	if err != nil {
		t.Fatalf("fetch regions: %v", err)
	}
	if len(regions) != 3 || regions[0].ID != "kanto" || regions[1].ID != "johto" || regions[2].ID != "hoenn" {
		t.Fatalf("unexpected regions %+v", regions)
	}

	hoenn, ok, err := svc.FetchRegionByID(ctx, "Hoenn")
	if err != nil || !ok {
		t.Fatalf("expected Hoenn, got ok=%v err=%v", ok, err)
	}
	if len(hoenn.Locations) != 2 {
		t.Fatalf("expected two Hoenn locations, got %d", len(hoenn.Locations))
	}
	if _, ok, _ := svc.FetchRegionByID(ctx, "sinnoh"); ok {
		t.Fatalf("sinnoh is not seeded")
	}
}

func TestReturnedLocationsAreCopies(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	loc, _, _ := svc.FetchLocationByID(ctx, "viridian-forest")
	loc.PokemonEncounters[0].Name = "Missingno"
	loc.Weather[0] = "hail"
	again, _, _ := svc.FetchLocationByID(ctx, "viridian-forest")
	if again.PokemonEncounters[0].Name == "Missingno" || again.Weather[0] == "hail" {
		t.Fatalf("caller mutation leaked into store")
	}
}
