// Package render turns tilings and study results into images. It only reads
// what the optimizer produces.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/dralexportfolio/active-projects/internal/board"
)

// TileColor returns the fill color of a tile type.
func TileColor(t board.Tile) color.RGBA {
	switch t {
	case board.TileBrick:
		return color.RGBA{180, 60, 30, 255}
	case board.TileSheep:
		return color.RGBA{20, 200, 50, 255}
	case board.TileStone:
		return color.RGBA{127, 127, 127, 255}
	case board.TileWheat:
		return color.RGBA{250, 230, 20, 255}
	case board.TileWood:
		return color.RGBA{10, 80, 10, 255}
	case board.TileDesert:
		return color.RGBA{230, 210, 150, 255}
	case board.TileGold:
		return color.RGBA{160, 140, 50, 255}
	case board.TileWater:
		return color.RGBA{80, 210, 240, 255}
	default:
		return color.RGBA{0, 0, 0, 255}
	}
}

// BoardConfig holds board image parameters.
type BoardConfig struct {
	Scale      float64 // Pixels per layout unit (hexagon circumradius)
	Margin     int     // Pixels around the board
	Border     float64 // Outline width in layout units
	Background color.RGBA
	Outline    color.RGBA
}

// DefaultBoardConfig returns a readable board size.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Scale:      60,
		Margin:     20,
		Border:     0.06,
		Background: color.RGBA{238, 238, 238, 255},
		Outline:    color.RGBA{40, 40, 40, 255},
	}
}

// Board draws each polygon of layout as a pointy-top hexagon in its tile's color.
func Board(layout *board.Layout, tiles []board.Tile, cfg BoardConfig) (*image.RGBA, error) {
	if len(tiles) != layout.Len() {
		return nil, fmt.Errorf("render: %d tiles for %d polygons", len(tiles), layout.Len())
	}
	if cfg.Scale <= 0 {
		return nil, fmt.Errorf("render: scale must be positive")
	}

	lo, hi := layout.Bounds()
	halfW := board.NeighborDistance / 2
	w := int(math.Ceil((hi.X-lo.X+2*halfW)*cfg.Scale)) + 2*cfg.Margin
	h := int(math.Ceil((hi.Y-lo.Y+2)*cfg.Scale)) + 2*cfg.Margin

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	for i, c := range layout.Centers() {
		t := tiles[i]
		px := (c.X-lo.X+halfW)*cfg.Scale + float64(cfg.Margin)
		py := (c.Y-lo.Y+1)*cfg.Scale + float64(cfg.Margin)

		fillHexagon(z, img, px, py, cfg.Scale, cfg.Outline)
		fillHexagon(z, img, px, py, cfg.Scale*(1-cfg.Border), TileColor(t))
	}
	return img, nil
}

func fillHexagon(z *vector.Rasterizer, dst draw.Image, cx, cy, radius float64, c color.Color) {
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	for k := 0; k < 6; k++ {
		angle := math.Pi/2 + float64(k)*math.Pi/3
		x := float32(cx + radius*math.Cos(angle))
		y := float32(cy + radius*math.Sin(angle))
		if k == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
