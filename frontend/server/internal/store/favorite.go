// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/curioswitch/larder/common/larderdb"
)

// FavoriteStore stores favorites at users/{uid}/favorites/{favoriteId}. A
// recipe favorited twice has two rows, and removing it removes both.
type FavoriteStore struct {
	client *firestore.Client
}

func NewFavoriteStore(client *firestore.Client) *FavoriteStore {
	return &FavoriteStore{
		client: client,
	}
}

func (s *FavoriteStore) Add(ctx context.Context, uid string, recipeID string, categoryName string) (string, error) {
	doc := favoritesCol(s.client, uid).NewDoc()
	favorite := larderdb.FavoriteRecipe{
		FavoriteID:   doc.ID,
		RecipeID:     recipeID,
		CategoryName: categoryName,
	}
	if _, err := doc.Create(ctx, favorite); err != nil {
		return "", fmt.Errorf("store: adding favorite: %w", err)
	}
	return doc.ID, nil
}

func (s *FavoriteStore) matching(uid string, recipeID string, categoryName string) firestore.Query {
	return favoritesCol(s.client, uid).
		Where("recipeId", "==", recipeID).
		Where("categoryName", "==", categoryName)
}

// Remove deletes every favorite row of the recipe and returns how many were
// deleted.
func (s *FavoriteStore) Remove(ctx context.Context, uid string, recipeID string, categoryName string) (int, error) {
	refs, err := s.matching(uid, recipeID, categoryName).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("store: finding favorites: %w", err)
	}
	if len(refs) == 0 {
		return 0, nil
	}

	docs := make([]*firestore.DocumentRef, len(refs))
	for i, ref := range refs {
		docs[i] = ref.Ref
	}
	if err := deleteAll(s.client.BulkWriter(ctx), docs); err != nil {
		return 0, fmt.Errorf("store: removing favorites: %w", err)
	}
	return len(docs), nil
}

func (s *FavoriteStore) IsFavorite(ctx context.Context, uid string, recipeID string, categoryName string) (bool, error) {
	iter := s.matching(uid, recipeID, categoryName).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil {
		if errors.Is(err, iterator.Done) {
			return false, nil
		}
		return false, fmt.Errorf("store: checking favorite: %w", err)
	}
	return true, nil
}

func (s *FavoriteStore) List(ctx context.Context, uid string) ([]larderdb.FavoriteRecipe, error) {
	iter := favoritesCol(s.client, uid).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	favorites := []larderdb.FavoriteRecipe{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: listing favorites: %w", err)
		}

		var favorite larderdb.FavoriteRecipe
		if err := doc.DataTo(&favorite); err != nil {
			return nil, fmt.Errorf("store: decoding favorite: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	return favorites, nil
}
