// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/curioswitch/larder/common/larderdb"
)

// RecipeStore stores recipes at
// users/{uid}/recipes/{categoryName}/recipes/{recipeId}. Creating and deleting
// a recipe updates the recipe count of its category in the same transaction.
type RecipeStore struct {
	client *firestore.Client
}

func NewRecipeStore(client *firestore.Client) *RecipeStore {
	return &RecipeStore{
		client: client,
	}
}

// NewID reserves a recipe ID in the category, for callers that need the ID
// before the recipe is written, e.g. to name its image.
func (s *RecipeStore) NewID(uid string, categoryName string) string {
	return recipesCol(s.client, uid, categoryName).NewDoc().ID
}

// Create writes a new recipe to the category and returns its ID. A RecipeID
// already set on recipe is used as is, otherwise one is generated. Any
// CreatedAt on recipe is replaced by the server time.
func (s *RecipeStore) Create(ctx context.Context, uid string, categoryName string, recipe *larderdb.Recipe) (string, error) {
	// A non-zero serverTimestamp field is not written at all.
	recipe.CreatedAt = time.Time{}
	recipe.Normalize()
	if recipe.Source == "" {
		recipe.Source = larderdb.RecipeSourceUser
	}
	if err := recipe.Validate(); err != nil {
		return "", err
	}

	categoryDoc := categoriesCol(s.client, uid).Doc(categoryName)
	var doc *firestore.DocumentRef
	if recipe.RecipeID != "" {
		doc = categoryDoc.Collection("recipes").Doc(recipe.RecipeID)
	} else {
		doc = categoryDoc.Collection("recipes").NewDoc()
		recipe.RecipeID = doc.ID
	}

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(categoryDoc); err != nil {
			if isNotFound(err) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("store: getting category: %w", err)
		}
		if err := tx.Create(doc, *recipe); err != nil {
			return fmt.Errorf("store: creating recipe: %w", err)
		}
		return tx.Update(categoryDoc, []firestore.Update{
			{Path: "recipeCount", Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return "", err
		}
		return "", fmt.Errorf("store: saving recipe: %w", err)
	}
	return doc.ID, nil
}

// Update replaces the content of an existing recipe. The creation time is kept.
func (s *RecipeStore) Update(ctx context.Context, uid string, categoryName string, recipe *larderdb.Recipe) error {
	if recipe.RecipeID == "" {
		return ErrRecipeNotFound
	}
	recipe.Normalize()
	if err := recipe.Validate(); err != nil {
		return err
	}

	doc := recipesCol(s.client, uid, categoryName).Doc(recipe.RecipeID)
	if _, err := doc.Update(ctx, []firestore.Update{
		{Path: "title", Value: recipe.Title},
		{Path: "description", Value: recipe.Description},
		{Path: "imageUrl", Value: recipe.ImageURL},
		{Path: "servings", Value: recipe.Servings},
		{Path: "source", Value: recipe.Source},
		{Path: "ingredients", Value: recipe.Ingredients},
		{Path: "instructions", Value: recipe.Instructions},
	}); err != nil {
		if isNotFound(err) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("store: updating recipe: %w", err)
	}
	return nil
}

func (s *RecipeStore) Delete(ctx context.Context, uid string, categoryName string, recipeID string) error {
	categoryDoc := categoriesCol(s.client, uid).Doc(categoryName)
	doc := categoryDoc.Collection("recipes").Doc(recipeID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(doc); err != nil {
			if isNotFound(err) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("store: getting recipe: %w", err)
		}
		if err := tx.Delete(doc); err != nil {
			return fmt.Errorf("store: deleting recipe: %w", err)
		}
		return tx.Update(categoryDoc, []firestore.Update{
			{Path: "recipeCount", Value: firestore.Increment(-1)},
		})
	})
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return err
		}
		return fmt.Errorf("store: removing recipe: %w", err)
	}
	return nil
}

func (s *RecipeStore) Get(ctx context.Context, uid string, categoryName string, recipeID string) (*larderdb.Recipe, error) {
	snap, err := recipesCol(s.client, uid, categoryName).Doc(recipeID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: getting recipe: %w", err)
	}

	var recipe larderdb.Recipe
	if err := snap.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("store: decoding recipe: %w", err)
	}
	return &recipe, nil
}

func (s *RecipeStore) List(ctx context.Context, uid string, categoryName string) ([]larderdb.Recipe, error) {
	iter := recipesCol(s.client, uid, categoryName).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	recipes := []larderdb.Recipe{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: listing recipes: %w", err)
		}

		var recipe larderdb.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, fmt.Errorf("store: decoding recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
