// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/curioswitch/larder/common/larderdb"
)

// ProfileStore stores user profiles at users/{uid}.
type ProfileStore struct {
	client *firestore.Client
}

func NewProfileStore(client *firestore.Client) *ProfileStore {
	return &ProfileStore{
		client: client,
	}
}

func (s *ProfileStore) Create(ctx context.Context, profile *larderdb.UserProfile) error {
	if err := profile.Preferences.Validate(); err != nil {
		return err
	}
	if _, err := userDoc(s.client, profile.ID).Set(ctx, *profile); err != nil {
		return fmt.Errorf("store: creating profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) Get(ctx context.Context, uid string) (*larderdb.UserProfile, error) {
	snap, err := userDoc(s.client, uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: getting profile: %w", err)
	}

	var profile larderdb.UserProfile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("store: decoding profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileStore) Update(ctx context.Context, uid string, displayName string, photoURL string) error {
	return s.update(ctx, uid, []firestore.Update{
		{Path: "displayName", Value: displayName},
		{Path: "photoUrl", Value: photoURL},
	})
}

// UpdatePreferences replaces the preferences of the profile, and marks the
// user onboarded when completeOnboarding is set.
func (s *ProfileStore) UpdatePreferences(ctx context.Context, uid string, prefs larderdb.Preferences, completeOnboarding bool) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	updates := []firestore.Update{
		{Path: "preferences", Value: prefs},
	}
	if completeOnboarding {
		updates = append(updates, firestore.Update{Path: "onboarded", Value: true})
	}
	return s.update(ctx, uid, updates)
}

func (s *ProfileStore) update(ctx context.Context, uid string, updates []firestore.Update) error {
	if _, err := userDoc(s.client, uid).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("store: updating profile: %w", err)
	}
	return nil
}

// Delete deletes the profile document. Subcollections are not deleted.
func (s *ProfileStore) Delete(ctx context.Context, uid string) error {
	if _, err := userDoc(s.client, uid).Delete(ctx); err != nil {
		return fmt.Errorf("store: deleting profile: %w", err)
	}
	return nil
}
