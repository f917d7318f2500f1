// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

const (
	// StorageBackendGCS stores images in Google Cloud Storage.
	StorageBackendGCS = "gcs"
	// StorageBackendSupabase stores images in Supabase storage.
	StorageBackendSupabase = "supabase"
)

type Supabase struct {
	// URL is the base URL of the Supabase project, e.g. https://abcd.supabase.co.
	URL string `koanf:"url"`

	// ServiceKey is the service role key used to write objects.
	ServiceKey string `koanf:"servicekey"`
}

type Storage struct {
	// Backend is the object storage to use, either gcs or supabase.
	Backend string `koanf:"backend"`

	// ProfileBucket is the bucket for profile photos.
	ProfileBucket string `koanf:"profilebucket"`

	// RecipeBucket is the bucket for recipe images.
	RecipeBucket string `koanf:"recipebucket"`

	// PantryBucket is the bucket for pantry item images.
	PantryBucket string `koanf:"pantrybucket"`

	Supabase Supabase `koanf:"supabase"`
}

type Discovery struct {
	// URL is the base URL of the recipe discovery API.
	URL string `koanf:"url"`

	// Audience is the audience of the ID tokens sent to the discovery API.
	// Defaults to URL.
	Audience string `koanf:"audience"`
}

type Config struct {
	config.Common

	// Storage is the configuration for image storage.
	Storage Storage `koanf:"storage"`

	// Discovery is the configuration for the discovery API.
	Discovery Discovery `koanf:"discovery"`
}
