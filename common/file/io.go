// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package file

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
)

type IO struct {
	storage *storage.Client
	bucket  string
}

func NewIO(storage *storage.Client, bucket string) *IO {
	return &IO{
		storage: storage,
		bucket:  bucket,
	}
}

func (io *IO) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := io.storage.Bucket(io.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("file: writing file: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("file: closing writer: %w", err)
	}
	return io.URL(path), nil
}

// Deleting a missing object is not an error.
func (io *IO) DeleteFile(ctx context.Context, path string) error {
	if err := io.storage.Bucket(io.bucket).Object(path).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("file: deleting file: %w", err)
	}
	return nil
}

func (io *IO) URL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", io.bucket, path)
}
