// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package image

import (
	"hash/fnv"
	"image"
	"image/color"
	"strings"
	"unicode"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const PlaceholderSize = 256

// Fits the 7x13 bitmap font.
const tileSize = 32

var placeholderColors = []color.RGBA{
	{R: 0xe5, G: 0x73, B: 0x73, A: 0xff},
	{R: 0xf0, G: 0x9a, B: 0x3e, A: 0xff},
	{R: 0x81, G: 0xc7, B: 0x84, A: 0xff},
	{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff},
	{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff},
	{R: 0x95, G: 0x75, B: 0xcd, A: 0xff},
}

// Placeholder renders a square JPEG showing the initials of label on a
// background color derived from label.
func Placeholder(label string) ([]byte, error) {
	tile := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	xdraw.Draw(tile, tile.Bounds(), image.NewUniform(placeholderColor(label)), image.Point{}, xdraw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  tile,
		Src:  image.White,
		Face: face,
	}
	text := Initials(label)
	width := d.MeasureString(text).Round()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Round()
	d.Dot = fixed.P((tileSize-width)/2, (tileSize-height)/2+metrics.Ascent.Round())
	d.DrawString(text)

	dst := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), tile, tile.Bounds(), xdraw.Src, nil)
	return encodeJPEG(dst)
}

// Initials returns up to two upper-case initials of the words in label, or "?"
// when label has no letters or digits.
func Initials(label string) string {
	var res []rune
	for _, word := range strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		r := []rune(word)[0]
		// The bitmap font only has ASCII glyphs.
		if r > unicode.MaxASCII {
			continue
		}
		res = append(res, unicode.ToUpper(r))
		if len(res) == 2 {
			break
		}
	}
	if len(res) == 0 {
		return "?"
	}
	return string(res)
}

func placeholderColor(label string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	return placeholderColors[h.Sum32()%uint32(len(placeholderColors))]
}
