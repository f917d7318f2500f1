// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidRecipe is returned when a recipe fails validation.
	ErrInvalidRecipe = errors.New("larderdb: invalid recipe")
	// ErrInvalidCategory is returned when a category fails validation.
	ErrInvalidCategory = errors.New("larderdb: invalid category")
	// ErrInvalidPreferences is returned when profile preferences fail validation.
	ErrInvalidPreferences = errors.New("larderdb: invalid preferences")
	// ErrInvalidLocation is returned for an unknown pantry location.
	ErrInvalidLocation = errors.New("larderdb: invalid pantry location")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// IsInvalid returns whether err is a validation failure of a model.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidRecipe) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidPreferences) ||
		errors.Is(err, ErrInvalidLocation)
}
