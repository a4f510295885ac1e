package report

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// ContactSheet tiles processed frames into a single PNG overview image.
// Frames are downscaled to tileWidth and laid out left to right in rows of
// cols tiles, preserving aspect ratio
func ContactSheet(paths []string, cols, tileWidth int, file string) error {

	if len(paths) == 0 {
		return fmt.Errorf("no frames for contact sheet")
	}

	if cols <= 0 || tileWidth <= 0 {
		return fmt.Errorf("invalid contact sheet layout %dx%d", cols, tileWidth)
	}

	tiles := make([]image.Image, 0, len(paths))
	tileHeight := 0

	for _, p := range paths {
		src, err := loadPNG(p)

		if err != nil {
			return err
		}

		h := src.Bounds().Dy() * tileWidth / src.Bounds().Dx()

		if h > tileHeight {
			tileHeight = h
		}

		dst := image.NewRGBA(image.Rect(0, 0, tileWidth, h))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(),
			xdraw.Src, nil)

		tiles = append(tiles, dst)
	}

	rows := (len(tiles) + cols - 1) / cols

	sheet := image.NewRGBA(image.Rect(0, 0, cols*tileWidth, rows*tileHeight))

	for i, tile := range tiles {
		x := (i % cols) * tileWidth
		y := (i / cols) * tileHeight

		xdraw.Draw(sheet, tile.Bounds().Add(image.Pt(x, y)), tile,
			image.Point{}, xdraw.Src)
	}

	out, err := os.Create(file)

	if err != nil {
		return fmt.Errorf("failed to create contact sheet: %w", err)
	}

	defer out.Close()

	if err := png.Encode(out, sheet); err != nil {
		return fmt.Errorf("failed to encode contact sheet: %w", err)
	}

	return nil
}

// loadPNG decodes a single PNG frame from disk
func loadPNG(path string) (image.Image, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("failed to open frame %s: %w", path, err)
	}

	defer f.Close()

	img, err := png.Decode(f)

	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}

	return img, nil
}
