package media

import (
	"errors"
	"image"

	"media-gallery/internal/mediatypes"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/tiff" // TIFF format support
	_ "golang.org/x/image/webp" // WebP format support
)

// ErrNotImage is returned when dimensions are requested for a non-image leaf.
var ErrNotImage = errors.New("media: not an image")

// ImageDimensions holds image width and height
type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AspectRatio returns width divided by height, or 0 when height is unknown.
func (d ImageDimensions) AspectRatio() float64 {
	if d.Height == 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

// ProbeDimensions returns image dimensions without fully decoding the image.
// Formats without a registered decoder (svg, heic, avif) return an error; the
// grid lays those out with a default aspect ratio.
func ProbeDimensions(leaf *FileLeaf) (*ImageDimensions, error) {
	if leaf.Kind() != mediatypes.KindImage {
		return nil, ErrNotImage
	}

	config, _, err := image.DecodeConfig(leaf.Reader())
	if err != nil {
		return nil, err
	}

	return &ImageDimensions{
		Width:  config.Width,
		Height: config.Height,
	}, nil
}
