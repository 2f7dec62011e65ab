// Package screenshot saves framebuffer contents as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Capture writes screenshots into a directory.
type Capture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// New creates a capture writing <prefix>_<label>_<timestamp>.png files into
// outputDir. An empty outputDir means the working directory.
func New(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename returns the path a capture with the given label would be saved to.
func (c *Capture) Filename(label string) string {
	name := c.prefix
	if label != "" {
		name += "_" + label
	}
	name = fmt.Sprintf("%s_%s.png", name, c.now().Format("2006-01-02_15-04-05.000"))
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// SavePixels writes RGBA pixel data read from OpenGL. Rows are flipped since
// OpenGL puts the origin at the bottom left.
func (c *Capture) SavePixels(pixels []byte, width, height int, label string) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	return c.SaveImage(img, label)
}

// SaveImage encodes img as PNG.
func (c *Capture) SaveImage(img image.Image, label string) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename(label)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := writePNG(file, img); err != nil {
		return "", err
	}
	return filename, nil
}

// writePNG encodes img to w and closes it. A failed close is reported, since
// the file may be incomplete on disk.
func writePNG(w io.WriteCloser, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
