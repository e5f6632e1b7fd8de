package ocr

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// downscale re-encodes the image as PNG with its longest edge bounded by
// maxEdge. Returns ("", nil, nil) when the image is already within bounds.
// The caller owns the returned cleanup.
func downscale(path string, maxEdge int, cacheDir string) (string, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxEdge {
		return "", nil, nil
	}

	scale := float64(maxEdge) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("cache dir: %w", err)
	}
	out := filepath.Join(cacheDir, uuid.New().String()+".png")
	of, err := os.Create(out)
	if err != nil {
		return "", nil, fmt.Errorf("create scaled image: %w", err)
	}
	if err := png.Encode(of, dst); err != nil {
		of.Close()
		os.Remove(out)
		return "", nil, fmt.Errorf("encode scaled image: %w", err)
	}
	if err := of.Close(); err != nil {
		os.Remove(out)
		return "", nil, err
	}
	return out, func() { os.Remove(out) }, nil
}
