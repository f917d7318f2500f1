// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package upload stores user images in public buckets. Each image is keyed by
// the ID of what it belongs to and overwritten when uploaded again.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/curioswitch/larder/common/image"
)

// MaxImageBytes is the largest encoded image accepted for upload.
const MaxImageBytes = 10 << 20

type Bucket string

const (
	BucketProfile Bucket = "profile"
	BucketRecipe  Bucket = "recipe"
	BucketPantry  Bucket = "pantry"
)

var (
	// ErrEmptyKey is returned when uploading without a key.
	ErrEmptyKey = errors.New("upload: key is empty")
	// ErrEmptyImage is returned when uploading no bytes.
	ErrEmptyImage = errors.New("upload: image is empty")
	// ErrUnknownBucket is returned for a bucket without a configured store.
	ErrUnknownBucket = errors.New("upload: unknown bucket")
	ErrImageTooLarge = errors.New("upload: image is too large")
)

type Kind int

const (
	// KindValidation means the input was rejected before talking to storage.
	KindValidation Kind = iota
	// KindTransport means the storage backend failed.
	KindTransport
)

// Error is returned by all Uploader operations.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var uerr *Error
	return errors.As(err, &uerr) && uerr.Kind == KindValidation
}

func Key(uid string, id string) string {
	return uid + "/" + id
}

type ObjectStore interface {
	WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error)
	DeleteFile(ctx context.Context, path string) error
}

type Uploader struct {
	stores map[Bucket]ObjectStore
}

func NewUploader(stores map[Bucket]ObjectStore) *Uploader {
	return &Uploader{
		stores: stores,
	}
}

func (u *Uploader) store(bucket Bucket) (ObjectStore, error) {
	s, ok := u.stores[bucket]
	if !ok {
		return nil, &Error{Kind: KindValidation, Err: fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)}
	}
	return s, nil
}

// Upload normalizes the image and writes it under key, replacing any previous
// image, and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, bucket Bucket, key string, data []byte) (string, error) {
	if key == "" {
		return "", &Error{Kind: KindValidation, Err: ErrEmptyKey}
	}
	if len(data) == 0 {
		return "", &Error{Kind: KindValidation, Err: ErrEmptyImage}
	}
	if len(data) > MaxImageBytes {
		return "", &Error{Kind: KindValidation, Err: fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))}
	}
	s, err := u.store(bucket)
	if err != nil {
		return "", err
	}

	normalized, err := image.Normalize(data)
	if err != nil {
		return "", &Error{Kind: KindValidation, Err: fmt.Errorf("upload: %w", err)}
	}

	url, err := s.WriteFile(ctx, key, image.ContentType, normalized)
	if err != nil {
		return "", &Error{Kind: KindTransport, Err: fmt.Errorf("upload: writing %s image: %w", bucket, err)}
	}
	return url, nil
}

// URL uploads like Upload but reports any failure as an empty URL, for callers
// that only need to know whether an image is available.
func (u *Uploader) URL(ctx context.Context, bucket Bucket, key string, data []byte) string {
	url, err := u.Upload(ctx, bucket, key, data)
	if err != nil {
		slog.WarnContext(ctx, "upload: image not stored", "bucket", bucket, "key", key, "error", err)
		return ""
	}
	return url
}

// Deleting a missing image succeeds.
func (u *Uploader) Delete(ctx context.Context, bucket Bucket, key string) error {
	if key == "" {
		return &Error{Kind: KindValidation, Err: ErrEmptyKey}
	}
	s, err := u.store(bucket)
	if err != nil {
		return err
	}
	if err := s.DeleteFile(ctx, key); err != nil {
		return &Error{Kind: KindTransport, Err: fmt.Errorf("upload: deleting %s image: %w", bucket, err)}
	}
	return nil
}
