package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService provides image processing for cover art.
//
// Example:
//
//	svc := ioutils.NewImageService()
//	prepared, err := svc.PrepareCoverArt(ctx, raw, true, 1000, true)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCoverArt applies the configured cover art transformations:
// an optional downscale to fit within maxSize on the longer edge, and
// an optional conversion to JPEG. When neither transformation is
// requested the input is returned unchanged.
func (s *ImageService) PrepareCoverArt(ctx context.Context, data []byte, resize bool, maxSize int, toJPEG bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if resize {
		resized, err := s.ResizeImage(ctx, data, maxSize, maxSize)
		if err != nil {
			return nil, err
		}
		// ResizeImage already re-encodes as JPEG.
		return resized, nil
	}
	if toJPEG {
		return s.ConvertToJPEG(ctx, data)
	}
	return data, nil
}

// ResizeImage resizes an image to fit within maxWidth x maxHeight,
// preserving aspect ratio. Images already within bounds are only
// re-encoded. The result is JPEG at quality 90; Catmull-Rom is used
// for the scaling.
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertToJPEG re-encodes an image (JPEG, PNG, ...) as JPEG at
// quality 90.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
