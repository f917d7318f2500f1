// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import (
	"fmt"
	"time"
)

// RecipeSourceUser is the source for recipes entered by the user.
const RecipeSourceUser = "user"

// Ingredient represents an ingredient in a recipe. Two ingredients are the same
// when their name, quantity and unit all match.
type Ingredient struct {
	// Name is the name of the ingredient.
	Name string `firestore:"name" json:"name" validate:"required"`

	// Quantity is the amount of the ingredient, in Unit.
	Quantity float64 `firestore:"quantity" json:"quantity" validate:"gt=0"`

	// Unit is the unit of Quantity, e.g. "g" or "cup". May be empty for counts.
	Unit string `firestore:"unit" json:"unit"`
}

// Instruction is a single step of a recipe.
type Instruction struct {
	// StepNumber is the 1-based position of the step in the recipe.
	StepNumber int `firestore:"stepNumber" json:"stepNumber"`

	// Instruction is the text of the step.
	Instruction string `firestore:"instruction" json:"instruction" validate:"required"`
}

// Recipe represents a recipe stored in Firestore under
// users/{uid}/recipes/{categoryName}/recipes/{recipeId}.
type Recipe struct {
	// RecipeID is the document ID of the recipe.
	RecipeID string `firestore:"recipeId" json:"recipeId"`

	// Title is the title of the recipe.
	Title string `firestore:"title" json:"title" validate:"required"`

	// Description is the description of the recipe.
	Description string `firestore:"description" json:"description"`

	// ImageURL is the public URL for the main image of the recipe.
	ImageURL string `firestore:"imageUrl" json:"imageUrl"`

	// Servings is the number of servings the recipe makes.
	Servings int `firestore:"servings" json:"servings" validate:"gt=0"`

	// Source is where the recipe came from, e.g. "user" or a discovery site.
	Source string `firestore:"source" json:"source"`

	// Ingredients are the ingredients of the recipe in display order.
	Ingredients []Ingredient `firestore:"ingredients" json:"ingredients" validate:"dive"`

	// Instructions are the steps of the recipe in order.
	Instructions []Instruction `firestore:"instructions" json:"instructions" validate:"dive"`

	// CreatedAt is set by the server when the recipe is first written.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Normalize removes duplicate ingredients and renumbers instructions so the
// recipe satisfies the stored invariants.
func (r *Recipe) Normalize() {
	r.Ingredients = DedupeIngredients(r.Ingredients)
	r.Instructions = RenumberInstructions(r.Instructions)
}

// Validate checks the recipe fields.
func (r *Recipe) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	return nil
}

// RecipeCategory is a named collection of recipes. The category name is also
// its document ID under users/{uid}/recipes.
type RecipeCategory struct {
	// CategoryName is the unique name of the category.
	CategoryName string `firestore:"categoryName" json:"categoryName" validate:"required,excludesall=/"`

	// Description is the description of the category.
	Description string `firestore:"description" json:"description"`

	// RecipeCount is the number of recipes in the category. It is maintained
	// when recipes are added or removed and can be repaired by reconciliation.
	RecipeCount int `firestore:"recipeCount" json:"recipeCount"`

	// CreatedAt is set by the server when the category is written.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Validate checks the category fields.
func (c *RecipeCategory) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCategory, err)
	}
	return nil
}

// FavoriteRecipe is a bookmark of a recipe in a category. It is a plain
// back-reference; the store never removes it on its own when the recipe is
// deleted.
type FavoriteRecipe struct {
	// FavoriteID is the document ID of the favorite.
	FavoriteID string `firestore:"favoriteId" json:"favoriteId"`

	// RecipeID is the ID of the favorited recipe.
	RecipeID string `firestore:"recipeId" json:"recipeId"`

	// CategoryName is the category the favorited recipe belongs to.
	CategoryName string `firestore:"categoryName" json:"categoryName"`

	// CreatedAt is set by the server when the favorite is added.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// DedupeIngredients returns ingredients with later repeats of the same
// (name, quantity, unit) removed, keeping the original order.
func DedupeIngredients(ingredients []Ingredient) []Ingredient {
	if len(ingredients) == 0 {
		return ingredients
	}
	seen := make(map[Ingredient]struct{}, len(ingredients))
	res := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if _, ok := seen[ing]; ok {
			continue
		}
		seen[ing] = struct{}{}
		res = append(res, ing)
	}
	return res
}

// RenumberInstructions returns a copy of instructions with step numbers
// rewritten to 1..N in list order.
func RenumberInstructions(instructions []Instruction) []Instruction {
	if instructions == nil {
		return nil
	}
	res := make([]Instruction, len(instructions))
	for i, ins := range instructions {
		res[i] = Instruction{
			StepNumber:  i + 1,
			Instruction: ins.Instruction,
		}
	}
	return res
}

// RemoveInstruction returns a copy of instructions without the step at index
// i, renumbered. Out of range indexes return the list renumbered but otherwise
// unchanged.
func RemoveInstruction(instructions []Instruction, i int) []Instruction {
	if i < 0 || i >= len(instructions) {
		return RenumberInstructions(instructions)
	}
	res := make([]Instruction, 0, len(instructions)-1)
	res = append(res, instructions[:i]...)
	res = append(res, instructions[i+1:]...)
	return RenumberInstructions(res)
}
