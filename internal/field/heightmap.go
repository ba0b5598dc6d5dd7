package field

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// Channel selects how a pixel becomes a scalar value.
type Channel string

const (
	// ChannelLuma uses ITU-R BT.601 luminance (0.299R + 0.587G + 0.114B), 0..1.
	ChannelLuma Channel = "luma"
	// ChannelLightness uses CIE L* (perceptual lightness), 0..1.
	ChannelLightness Channel = "lightness"
)

// HeightmapOptions controls image ingestion.
type HeightmapOptions struct {
	// Channel picks the pixel-to-value mapping. Empty means ChannelLuma.
	Channel Channel `json:"channel" mapstructure:"channel"`

	// MaxSize caps the longer image side. Larger images are downsampled
	// (aspect ratio kept) before sampling. 0 disables the cap.
	MaxSize int `json:"max_size" mapstructure:"max_size"`

	// Smooth is the Gaussian blur radius applied before sampling. 0 disables it.
	Smooth float64 `json:"smooth" mapstructure:"smooth"`

	// Scale multiplies every value. 0 means 1.
	Scale float64 `json:"scale" mapstructure:"scale"`
}

// DefaultHeightmapOptions returns luma sampling at full resolution, unscaled.
func DefaultHeightmapOptions() HeightmapOptions {
	return HeightmapOptions{Channel: ChannelLuma, Scale: 1}
}

// LoadHeightmap decodes an image file and converts it with FromImage.
// Supported formats are those of the imaging package: PNG, JPEG, GIF, BMP and TIFF.
func LoadHeightmap(path string, opts HeightmapOptions) (*Grid, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode heightmap: %w", err)
	}
	return FromImage(img, opts)
}

// FromImage samples an image as a scalar field.
//
// The x axis is the pixel column (0..W-1) and the y axis the pixel row
// (0..H-1), so y grows downward as in image space. Each value is
// Scale * channel(pixel).
//
// # Pipeline
//
//  1. Gaussian blur of radius Smooth (bild), if Smooth > 0
//  2. Downsampling to fit MaxSize x MaxSize (imaging.Fit, Box filter), if needed
//  3. Per-pixel channel sampling
func FromImage(img image.Image, opts HeightmapOptions) (*Grid, error) {
	if opts.Channel == "" {
		opts.Channel = ChannelLuma
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.Channel != ChannelLuma && opts.Channel != ChannelLightness {
		return nil, fmt.Errorf("%w: unknown heightmap channel %q", ErrUnsupportedFormat, opts.Channel)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyGrid
	}

	if opts.Smooth > 0 {
		img = blur.Gaussian(img, opts.Smooth)
	}
	if opts.MaxSize > 0 && (b.Dx() > opts.MaxSize || b.Dy() > opts.MaxSize) {
		img = imaging.Fit(img, opts.MaxSize, opts.MaxSize, imaging.Box)
	}

	var values *mat.Dense
	switch opts.Channel {
	case ChannelLuma:
		values = sampleLuma(imaging.Grayscale(img), opts.Scale)
	case ChannelLightness:
		values = sampleLightness(img, opts.Scale)
	}

	h, w := values.Dims()
	return newGrid(pixelAxis(w), pixelAxis(h), values), nil
}

func sampleLuma(gray *image.NRGBA, scale float64) *mat.Dense {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	values := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// R, G and B are equal after Grayscale.
			v := gray.Pix[y*gray.Stride+x*4]
			values.Set(y, x, scale*float64(v)/255.0)
		}
	}
	return values
}

func sampleLightness(img image.Image, scale float64) *mat.Dense {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	values := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := colorful.MakeColor(img.At(x+b.Min.X, y+b.Min.Y))
			if !ok {
				// fully transparent
				continue
			}
			l, _, _ := c.Lab()
			values.Set(y, x, scale*l)
		}
	}
	return values
}

func pixelAxis(n int) []float64 {
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(i)
	}
	return axis
}
