package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds used with errors.Is. Every typed error below matches exactly one.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrOutOfStock = errors.New("out of stock")
)

// NotFoundError reports a reference to a trainer, item, collection or region
// that does not exist.
type NotFoundError struct {
	Entity EntityType
	ID     string
	// Message overrides the default rendering when set.
	Message string
}

func (e NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is matches ErrNotFound.
func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports a value outside its allowed set or range.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrValidation.
func (e ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidRegionError is the ValidationError flavour raised by the region allow-list.
type InvalidRegionError struct {
	Region  string
	Allowed []string
}

func (e InvalidRegionError) Error() string {
	return fmt.Sprintf("Invalid region: %s. Valid regions are: %s", e.Region, strings.Join(e.Allowed, ", "))
}

// Is matches ErrValidation.
func (e InvalidRegionError) Is(target error) bool { return target == ErrValidation }

// OutOfStockError is returned when using an item whose quantity is already zero.
type OutOfStockError struct {
	ItemID int
	Name   string
}

func (e OutOfStockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("item %d (%s) out of stock", e.ItemID, e.Name)
	}
	return fmt.Sprintf("item %d out of stock", e.ItemID)
}

// Is matches ErrOutOfStock.
func (e OutOfStockError) Is(target error) bool { return target == ErrOutOfStock }

// CheckRegion returns an InvalidRegionError unless region is in ValidRegions.
func CheckRegion(region string) error {
	if IsValidRegion(region) {
		return nil
	}
	return InvalidRegionError{Region: region, Allowed: append([]string(nil), ValidRegions...)}
}
