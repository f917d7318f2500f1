// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"github.com/curioswitch/larder/common/larderdb"
)

const reconcileParallelism = 8

// CategoryStore stores recipe categories at users/{uid}/recipes/{categoryName}.
type CategoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *CategoryStore {
	return &CategoryStore{
		client: client,
	}
}

// Create upserts the category keyed by its name and returns the key. The
// recipe count of an existing category is preserved.
func (s *CategoryStore) Create(ctx context.Context, uid string, category *larderdb.RecipeCategory) (string, error) {
	if err := category.Validate(); err != nil {
		return "", err
	}

	doc := categoriesCol(s.client, uid).Doc(category.CategoryName)
	if _, err := doc.Set(ctx, map[string]any{
		"categoryName": category.CategoryName,
		"description":  category.Description,
		"createdAt":    firestore.ServerTimestamp,
	}, firestore.MergeAll); err != nil {
		return "", fmt.Errorf("store: saving category: %w", err)
	}
	return doc.ID, nil
}

// Get returns nil if there is no category with the name.
func (s *CategoryStore) Get(ctx context.Context, uid string, name string) (*larderdb.RecipeCategory, error) {
	snap, err := categoriesCol(s.client, uid).Doc(name).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: getting category: %w", err)
	}

	var category larderdb.RecipeCategory
	if err := snap.DataTo(&category); err != nil {
		return nil, fmt.Errorf("store: decoding category: %w", err)
	}
	return &category, nil
}

func (s *CategoryStore) List(ctx context.Context, uid string) ([]larderdb.RecipeCategory, error) {
	iter := categoriesCol(s.client, uid).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	categories := []larderdb.RecipeCategory{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: listing categories: %w", err)
		}

		var category larderdb.RecipeCategory
		if err := doc.DataTo(&category); err != nil {
			return nil, fmt.Errorf("store: decoding category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// ReconcileRecipeCounts recounts the recipes of every category and stores the
// result. A failure in one category does not stop the others, all failures
// are returned joined.
func (s *CategoryStore) ReconcileRecipeCounts(ctx context.Context, uid string) error {
	docs, err := categoriesCol(s.client, uid).Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("store: listing categories: %w", err)
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	g.SetLimit(reconcileParallelism)
	for _, doc := range docs {
		g.Go(func() error {
			if err := s.reconcile(ctx, doc.Ref); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (s *CategoryStore) reconcile(ctx context.Context, category *firestore.DocumentRef) error {
	res, err := category.Collection("recipes").NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return fmt.Errorf("store: counting recipes of %q: %w", category.ID, err)
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return fmt.Errorf("store: counting recipes of %q: missing count", category.ID)
	}

	if _, err := category.Update(ctx, []firestore.Update{
		{Path: "recipeCount", Value: v.GetIntegerValue()},
	}); err != nil {
		return fmt.Errorf("store: updating recipe count of %q: %w", category.ID, err)
	}
	return nil
}

// Delete deletes the category and all of its recipes. Favorites pointing at
// the recipes are left in place.
func (s *CategoryStore) Delete(ctx context.Context, uid string, name string) error {
	doc := categoriesCol(s.client, uid).Doc(name)
	recipes, err := doc.Collection("recipes").DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("store: listing recipes of category: %w", err)
	}

	if err := deleteAll(s.client.BulkWriter(ctx), append(recipes, doc)); err != nil {
		return fmt.Errorf("store: deleting category: %w", err)
	}
	return nil
}
