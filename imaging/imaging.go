// Package imaging normalizes provider output before it is stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/gift"
)

const ContentType = "image/png"

var ErrEmptyImage = errors.New("empty image data")

// Normalize decodes data, shrinks it to fit within maxWidth x maxHeight while
// keeping the aspect ratio, and re-encodes it as PNG. Images already inside
// the bounds are only re-encoded.
func Normalize(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dst := src
	bounds := src.Bounds()
	if maxWidth > 0 && maxHeight > 0 && (bounds.Dx() > maxWidth || bounds.Dy() > maxHeight) {
		g := gift.New(gift.ResizeToFit(maxWidth, maxHeight, gift.LanczosResampling))
		rgba := image.NewRGBA(g.Bounds(bounds))
		g.Draw(rgba, src)
		dst = rgba
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
