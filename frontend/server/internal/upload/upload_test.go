// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	files    map[string][]byte
	writeErr error
	deleted  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}}
}

func (f *fakeStore) WriteFile(_ context.Context, path string, contentType string, data []byte) (string, error) {
	if f.writeErr != nil {
		return "", f.writeErr
	}
	if contentType != "image/jpeg" {
		return "", errors.New("unexpected content type " + contentType)
	}
	f.files[path] = data
	return "https://cdn.example.com/" + path, nil
}

func (f *fakeStore) DeleteFile(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	delete(f.files, path)
	return nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadRejectsOversizedImage(t *testing.T) {
	store := newFakeStore()
	u := NewUploader(map[Bucket]ObjectStore{BucketRecipe: store})

	_, err := u.Upload(t.Context(), BucketRecipe, "r1", make([]byte, MaxImageBytes+1))
	require.ErrorIs(t, err, ErrImageTooLarge)
	require.True(t, IsValidation(err))
	require.Empty(t, store.files)
}

func TestUpload(t *testing.T) {
	store := newFakeStore()
	u := NewUploader(map[Bucket]ObjectStore{BucketRecipe: store})

	url, err := u.Upload(t.Context(), BucketRecipe, "r1", testPNG(t))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/r1", url)

	_, err = jpeg.DecodeConfig(bytes.NewReader(store.files["r1"]))
	require.NoError(t, err)

	// Uploading again overwrites the same key.
	again, err := u.Upload(t.Context(), BucketRecipe, "r1", testPNG(t))
	require.NoError(t, err)
	require.Equal(t, url, again)
	require.Len(t, store.files, 1)
}

func TestUploadValidation(t *testing.T) {
	u := NewUploader(map[Bucket]ObjectStore{BucketRecipe: newFakeStore()})

	tests := []struct {
		name   string
		bucket Bucket
		key    string
		data   []byte
		want   error
	}{
		{name: "empty key", bucket: BucketRecipe, data: []byte{1}, want: ErrEmptyKey},
		{name: "empty image", bucket: BucketRecipe, key: "k", want: ErrEmptyImage},
		{name: "unknown bucket", bucket: BucketProfile, key: "k", data: []byte{1}, want: ErrUnknownBucket},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := u.Upload(t.Context(), tc.bucket, tc.key, tc.data)
			require.ErrorIs(t, err, tc.want)
			require.True(t, IsValidation(err))
		})
	}

	_, err := u.Upload(t.Context(), BucketRecipe, "k", []byte("not an image"))
	require.True(t, IsValidation(err))
}

func TestUploadTransportError(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errors.New("connection reset")
	u := NewUploader(map[Bucket]ObjectStore{BucketPantry: store})

	_, err := u.Upload(t.Context(), BucketPantry, "item", testPNG(t))
	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, KindTransport, uerr.Kind)
	require.False(t, IsValidation(err))
	require.ErrorContains(t, err, "connection reset")
}

func TestURLEmptySentinel(t *testing.T) {
	store := newFakeStore()
	u := NewUploader(map[Bucket]ObjectStore{BucketProfile: store})

	require.NotPanics(t, func() {
		require.Empty(t, u.URL(t.Context(), BucketProfile, "uid", nil))
		require.Empty(t, u.URL(t.Context(), BucketProfile, "", testPNG(t)))
	})
	require.Equal(t, "https://cdn.example.com/uid", u.URL(t.Context(), BucketProfile, "uid", testPNG(t)))

	store.writeErr = errors.New("down")
	require.Empty(t, u.URL(t.Context(), BucketProfile, "uid", testPNG(t)))
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	u := NewUploader(map[Bucket]ObjectStore{BucketProfile: store})

	require.NoError(t, u.Delete(t.Context(), BucketProfile, "uid"))
	require.Equal(t, []string{"uid"}, store.deleted)
	require.ErrorIs(t, u.Delete(t.Context(), BucketProfile, ""), ErrEmptyKey)
	require.ErrorIs(t, u.Delete(t.Context(), BucketRecipe, "r"), ErrUnknownBucket)
}
