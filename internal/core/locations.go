package core

import (
	"context"
	"fmt"

	"trainerdex/pkg/domain"
)

const (
	opFetchLocations         = "fetch_locations"
	opFetchLocationsByRegion = "fetch_locations_by_region"
	opFetchLocationDetail    = "fetch_location_detail"
	opFetchLocationByID      = "fetch_location_by_id"
	opFetchRegions           = "fetch_regions"
	opFetchRegionByID        = "fetch_region_by_id"
)

type locationLookup struct {
	location Location
	ok       bool
}

// FetchLocations flattens every region's locations, regions in seed order.
func (s *Service) FetchLocations(ctx context.Context) ([]Location, error) {
	return read(ctx, s, opFetchLocations, "", func(view TransactionView) ([]Location, error) {
		var out []Location
		for _, r := range view.ListRegions() {
			out = append(out, r.Locations...)
		}
		if out == nil {
			out = []Location{}
		}
		return out, nil
	})
}

// FetchLocationsByRegion returns the locations of region, matched by id or
// name ignoring case.
func (s *Service) FetchLocationsByRegion(ctx context.Context, region string) ([]Location, error) {
	return read(ctx, s, opFetchLocationsByRegion, region, func(view TransactionView) ([]Location, error) {
		r, ok := view.FindRegion(region)
		if !ok {
			return nil, domain.NotFoundError{
				Entity:  EntityRegion,
				ID:      region,
				Message: fmt.Sprintf("No locations found for region: %s", region),
			}
		}
		if r.Locations == nil {
			return []Location{}, nil
		}
		return r.Locations, nil
	})
}

// FetchLocationDetail finds locationID inside region. Unknown regions and ids
// both yield false.
func (s *Service) FetchLocationDetail(ctx context.Context, region, locationID string) (Location, bool, error) {
	out, err := read(ctx, s, opFetchLocationDetail, region+"/"+locationID, func(view TransactionView) (locationLookup, error) {
		r, ok := view.FindRegion(region)
		if !ok {
			return locationLookup{}, nil
		}
		return findLocation(r.Locations, locationID), nil
	})
	return out.location, out.ok, err
}

// FetchLocationByID searches every region for locationID.
func (s *Service) FetchLocationByID(ctx context.Context, locationID string) (Location, bool, error) {
	out, err := read(ctx, s, opFetchLocationByID, locationID, func(view TransactionView) (locationLookup, error) {
		for _, r := range view.ListRegions() {
			if found := findLocation(r.Locations, locationID); found.ok {
				return found, nil
			}
		}
		return locationLookup{}, nil
	})
	return out.location, out.ok, err
}

// FetchRegions lists every region with its locations.
func (s *Service) FetchRegions(ctx context.Context) ([]Region, error) {
	return read(ctx, s, opFetchRegions, "", func(view TransactionView) ([]Region, error) {
		return view.ListRegions(), nil
	})
}

// FetchRegionByID finds a region by id or name, ignoring case.
func (s *Service) FetchRegionByID(ctx context.Context, id string) (Region, bool, error) {
	type lookup struct {
		region Region
		ok     bool
	}
	out, err := read(ctx, s, opFetchRegionByID, id, func(view TransactionView) (lookup, error) {
		r, ok := view.FindRegion(id)
		return lookup{r, ok}, nil
	})
	return out.region, out.ok, err
}

func findLocation(locations []Location, id string) locationLookup {
	for _, loc := range locations {
		if loc.ID == id {
			return locationLookup{location: loc.Clone(), ok: true}
		}
	}
	return locationLookup{}
}
