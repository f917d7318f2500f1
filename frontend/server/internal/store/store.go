// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package store reads and writes the per-user documents in Firestore. All data
// of a user lives under users/{uid}, and every method takes the uid explicitly.
package store

import (
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrCategoryNotFound is returned when writing a recipe to a missing category.
	ErrCategoryNotFound = errors.New("store: category not found")
	// ErrRecipeNotFound is returned when modifying a missing recipe.
	ErrRecipeNotFound = errors.New("store: recipe not found")
	// ErrProfileNotFound is returned when modifying a missing profile.
	ErrProfileNotFound = errors.New("store: profile not found")
)

func userDoc(client *firestore.Client, uid string) *firestore.DocumentRef {
	return client.Collection("users").Doc(uid)
}

func categoriesCol(client *firestore.Client, uid string) *firestore.CollectionRef {
	return userDoc(client, uid).Collection("recipes")
}

func recipesCol(client *firestore.Client, uid string, categoryName string) *firestore.CollectionRef {
	return categoriesCol(client, uid).Doc(categoryName).Collection("recipes")
}

func favoritesCol(client *firestore.Client, uid string) *firestore.CollectionRef {
	return userDoc(client, uid).Collection("favorites")
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// deleteAll deletes refs with a BulkWriter and returns the first failure.
func deleteAll(bw *firestore.BulkWriter, refs []*firestore.DocumentRef) error {
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}
