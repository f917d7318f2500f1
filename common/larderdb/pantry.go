// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import (
	"fmt"
	"strings"
	"time"
)

// Location is where a pantry item is stored.
type Location string

const (
	LocationPantry  Location = "PANTRY"
	LocationFridge  Location = "FRIDGE"
	LocationFreezer Location = "FREEZER"
)

// ParseLocation parses a location case-insensitively.
func ParseLocation(s string) (Location, error) {
	switch loc := Location(strings.ToUpper(strings.TrimSpace(s))); loc {
	case LocationPantry, LocationFridge, LocationFreezer:
		return loc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
}

// PantryItem is an item of inventory. Pantry items are only kept in memory.
type PantryItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// ExpiryDate is the expiry in epoch milliseconds, or 0 when unknown.
	ExpiryDate int64 `json:"expiryDate,omitempty"`

	Quantity int      `json:"quantity"`
	Category string   `json:"category"`
	Location Location `json:"location"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Favorite bool     `json:"favorite"`
}

// Expiry returns the expiry time of the item and whether it is set.
func (p PantryItem) Expiry() (time.Time, bool) {
	if p.ExpiryDate == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(p.ExpiryDate), true
}
