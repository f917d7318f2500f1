// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURL = errors.New("image: invalid data URL")

// DecodeDataURL decodes a base64 image data URL such as
// data:image/png;base64,iVBOR... into its content type and bytes.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURL)
	}
	ct, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing content type", ErrInvalidDataURL)
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", nil, fmt.Errorf("%w: only image data URLs supported, got %q", ErrInvalidDataURL, ct)
	}
	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 data URLs supported", ErrInvalidDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, fmt.Errorf("%w: decoding base64: %w", ErrInvalidDataURL, err)
	}
	return ct, data, nil
}

func ToDataURL(b []byte) string {
	if len(b) > 0 {
		return "data:" + ContentType + ";base64," + base64.StdEncoding.EncodeToString(b)
	}
	return ""
}
