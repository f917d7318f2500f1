// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/larder/common/larderdb"
)

// newClient connects to the Firestore emulator. Tests are skipped when it is
// not running.
func newClient(t *testing.T) (*firestore.Client, string) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(t.Context(), "larder-test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, "test-" + uuid.NewString()
}

func testRecipe(title string) *larderdb.Recipe {
	return &larderdb.Recipe{
		Title:    title,
		Servings: 4,
		Ingredients: []larderdb.Ingredient{
			{Name: "flour", Quantity: 200, Unit: "g"},
			{Name: "flour", Quantity: 200, Unit: "g"},
			{Name: "sugar", Quantity: 100, Unit: "g"},
		},
		Instructions: []larderdb.Instruction{
			{StepNumber: 4, Instruction: "Mix"},
			{StepNumber: 9, Instruction: "Bake"},
		},
	}
}

func TestReconcileRecipeCounts(t *testing.T) {
	client, uid := newClient(t)
	ctx := t.Context()
	categories := NewCategoryStore(client)
	recipes := NewRecipeStore(client)

	key, err := categories.Create(ctx, uid, &larderdb.RecipeCategory{CategoryName: "Desserts"})
	require.NoError(t, err)
	require.Equal(t, "Desserts", key)

	_, err = recipes.Create(ctx, uid, "Desserts", testRecipe("Brownies"))
	require.NoError(t, err)
	_, err = recipes.Create(ctx, uid, "Desserts", testRecipe("Cookies"))
	require.NoError(t, err)

	// Break the stored count so the reconcile has something to repair.
	_, err = categoriesCol(client, uid).Doc("Desserts").Update(ctx, []firestore.Update{
		{Path: "recipeCount", Value: 7},
	})
	require.NoError(t, err)

	require.NoError(t, categories.ReconcileRecipeCounts(ctx, uid))

	category, err := categories.Get(ctx, uid, "Desserts")
	require.NoError(t, err)
	require.Equal(t, 2, category.RecipeCount)
}

func TestCategoryCreateKeepsCount(t *testing.T) {
	client, uid := newClient(t)
	ctx := t.Context()
	categories := NewCategoryStore(client)
	recipes := NewRecipeStore(client)

	_, err := categories.Create(ctx, uid, &larderdb.RecipeCategory{CategoryName: "Soups"})
	require.NoError(t, err)
	_, err = recipes.Create(ctx, uid, "Soups", testRecipe("Miso"))
	require.NoError(t, err)

	_, err = categories.Create(ctx, uid, &larderdb.RecipeCategory{CategoryName: "Soups", Description: "Warm"})
	require.NoError(t, err)

	list, err := categories.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Warm", list[0].Description)
	require.Equal(t, 1, list[0].RecipeCount)

	_, err = categories.Create(ctx, uid, &larderdb.RecipeCategory{CategoryName: "a/b"})
	require.ErrorIs(t, err, larderdb.ErrInvalidCategory)
}

func TestCategoryGetMissing(t *testing.T) {
	client, uid := newClient(t)
	category, err := NewCategoryStore(client).Get(t.Context(), uid, "Nothing")
	require.NoError(t, err)
	require.Nil(t, category)
}

func TestCategoryDelete(t *testing.T) {
	client, uid := newClient(t)
	ctx := t.Context()
	categories := NewCategoryStore(client)
	recipes := NewRecipeStore(client)

	_, err := categories.Create(ctx, uid, &larderdb.RecipeCategory{CategoryName: "Mains"})
	require.NoError(t, err)
	_, err = recipes.Create(ctx, uid, "Mains", testRecipe("Curry"))
	require.NoError(t, err)

	require.NoError(t, categories.Delete(ctx, uid, "Mains"))

	list, err := recipes.List(ctx, uid, "Mains")
	require.NoError(t, err)
	require.Empty(t, list)
	category, err := categories.Get(ctx, uid, "Mains")
	require.NoError(t, err)
	require.Nil(t, category)
}

func TestRecipeLifecycle(t *testing.T) {
	client, uid := newClient(t)
	ctx := t.Context()
	categories := NewCategoryStore(client)
	recipes := NewRecipeStore(client)

	_, err := recipes.Create(ctx, uid, "Missing", testRecipe("Orphan"))
	require.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = categories.Create(ctx, uid, &larderdb.RecipeCategory{CategoryName: "Baking"})
	require.NoError(t, err)

	_, err = recipes.Create(ctx, uid, "Baking", &larderdb.Recipe{Title: "No servings"})
	require.ErrorIs(t, err, larderdb.ErrInvalidRecipe)

	id := recipes.NewID(uid, "Baking")
	r := testRecipe("Bread")
	r.RecipeID = id
	got, err := recipes.Create(ctx, uid, "Baking", r)
	require.NoError(t, err)
	require.Equal(t, id, got)

	stored, err := recipes.Get(ctx, uid, "Baking", id)
	require.NoError(t, err)
	require.Equal(t, "Bread", stored.Title)
	require.Equal(t, larderdb.RecipeSourceUser, stored.Source)
	require.Len(t, stored.Ingredients, 2)
	require.Equal(t, []larderdb.Instruction{
		{StepNumber: 1, Instruction: "Mix"},
		{StepNumber: 2, Instruction: "Bake"},
	}, stored.Instructions)
	require.False(t, stored.CreatedAt.IsZero())

	stored.Title = "Sourdough"
	stored.Instructions = larderdb.RemoveInstruction(stored.Instructions, 0)
	require.NoError(t, recipes.Update(ctx, uid, "Baking", stored))

	updated, err := recipes.Get(ctx, uid, "Baking", id)
	require.NoError(t, err)
	require.Equal(t, "Sourdough", updated.Title)
	require.Equal(t, []larderdb.Instruction{{StepNumber: 1, Instruction: "Bake"}}, updated.Instructions)
	require.True(t, stored.CreatedAt.Equal(updated.CreatedAt))

	require.ErrorIs(t, recipes.Update(ctx, uid, "Baking", testRecipeWithID("nope")), ErrRecipeNotFound)

	category, err := categories.Get(ctx, uid, "Baking")
	require.NoError(t, err)
	require.Equal(t, 1, category.RecipeCount)

	require.NoError(t, recipes.Delete(ctx, uid, "Baking", id))
	require.ErrorIs(t, recipes.Delete(ctx, uid, "Baking", id), ErrRecipeNotFound)

	gone, err := recipes.Get(ctx, uid, "Baking", id)
	require.NoError(t, err)
	require.Nil(t, gone)

	category, err = categories.Get(ctx, uid, "Baking")
	require.NoError(t, err)
	require.Equal(t, 0, category.RecipeCount)

	list, err := recipes.List(ctx, uid, "Baking")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestRecipeCreateIgnoresClientCreatedAt(t *testing.T) {
	client, uid := newClient(t)
	ctx := t.Context()
	categories := NewCategoryStore(client)
	recipes := NewRecipeStore(client)

	_, err := categories.Create(ctx, uid, &larderdb.RecipeCategory{CategoryName: "Soups"})
	require.NoError(t, err)

	future := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	r := testRecipe("Minestrone")
	r.CreatedAt = future
	id, err := recipes.Create(ctx, uid, "Soups", r)
	require.NoError(t, err)

	list, err := recipes.List(ctx, uid, "Soups")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, id, list[0].RecipeID)
	require.False(t, list[0].CreatedAt.IsZero())
	require.True(t, list[0].CreatedAt.Before(future))
}

func testRecipeWithID(id string) *larderdb.Recipe {
	r := testRecipe("Ghost")
	r.RecipeID = id
	return r
}

func TestFavorites(t *testing.T) {
	client, uid := newClient(t)
	ctx := t.Context()
	favorites := NewFavoriteStore(client)

	ok, err := favorites.IsFavorite(ctx, uid, "r1", "Desserts")
	require.NoError(t, err)
	require.False(t, ok)

	first, err := favorites.Add(ctx, uid, "r1", "Desserts")
	require.NoError(t, err)
	second, err := favorites.Add(ctx, uid, "r1", "Desserts")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	_, err = favorites.Add(ctx, uid, "r1", "Mains")
	require.NoError(t, err)

	ok, err = favorites.IsFavorite(ctx, uid, "r1", "Desserts")
	require.NoError(t, err)
	require.True(t, ok)

	list, err := favorites.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 3)

	removed, err := favorites.Remove(ctx, uid, "r1", "Desserts")
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	ok, err = favorites.IsFavorite(ctx, uid, "r1", "Desserts")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = favorites.IsFavorite(ctx, uid, "r1", "Mains")
	require.NoError(t, err)
	require.True(t, ok)

	removed, err = favorites.Remove(ctx, uid, "r1", "Desserts")
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestProfile(t *testing.T) {
	client, uid := newClient(t)
	ctx := t.Context()
	profiles := NewProfileStore(client)

	missing, err := profiles.Get(ctx, uid)
	require.NoError(t, err)
	require.Nil(t, missing)
	require.ErrorIs(t, profiles.Update(ctx, uid, "Cook", ""), ErrProfileNotFound)

	require.NoError(t, profiles.Create(ctx, &larderdb.UserProfile{
		ID:           uid,
		Email:        "cook@example.com",
		DisplayName:  "Cook",
		AuthProvider: "password",
	}))

	require.NoError(t, profiles.Update(ctx, uid, "Chef", "https://example.com/p.jpg"))

	prefs := larderdb.Preferences{
		Dietary:       larderdb.DietaryPreferences{Vegetarian: true},
		Allergies:     larderdb.AllergyPreferences{Peanuts: true, Other: []string{"kiwi"}},
		Notifications: larderdb.NotificationPreferences{ExpiryReminders: true, ReminderDaysBefore: 3},
	}
	require.NoError(t, profiles.UpdatePreferences(ctx, uid, prefs, true))

	bad := prefs
	bad.Notifications.ReminderDaysBefore = 90
	require.ErrorIs(t, profiles.UpdatePreferences(ctx, uid, bad, false), larderdb.ErrInvalidPreferences)

	profile, err := profiles.Get(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, "Chef", profile.DisplayName)
	require.Equal(t, "https://example.com/p.jpg", profile.PhotoURL)
	require.True(t, profile.Onboarded)
	require.Equal(t, prefs, profile.Preferences)

	require.NoError(t, profiles.Delete(ctx, uid))
	profile, err = profiles.Get(ctx, uid)
	require.NoError(t, err)
	require.Nil(t, profile)
}
