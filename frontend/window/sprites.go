package window

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	foreground = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	background = color.RGBA{0x10, 0x10, 0x18, 0xff}
)

type sprites struct {
	ball   *ebiten.Image
	paddle *ebiten.Image
}

// loadSprites reads PNG sprites from disk. Empty paths get generated shapes
// of the given sizes. A path that cannot be read or decoded is an error.
func loadSprites(ballPath, paddlePath string, radius, paddleW, paddleH float64) (*sprites, error) {
	ball, err := loadSprite(ballPath, func() *ebiten.Image { return circleImage(radius) })
	if err != nil {
		return nil, err
	}
	paddle, err := loadSprite(paddlePath, func() *ebiten.Image { return rectImage(paddleW, paddleH) })
	if err != nil {
		return nil, err
	}
	return &sprites{ball: ball, paddle: paddle}, nil
}

func loadSprite(path string, generate func() *ebiten.Image) (*ebiten.Image, error) {
	if path == "" {
		return generate(), nil
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sprite %s: %w", path, err)
	}
	return img, nil
}

func circleImage(radius float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2))
	img := ebiten.NewImage(max(size, 1), max(size, 1))
	r := float32(radius)
	vector.DrawFilledCircle(img, r, r, r, foreground, true)
	return img
}

func rectImage(w, h float64) *ebiten.Image {
	img := ebiten.NewImage(max(int(math.Ceil(w)), 1), max(int(math.Ceil(h)), 1))
	img.Fill(foreground)
	return img
}

// drawStretched draws img covering r.
func drawStretched(screen, img *ebiten.Image, r rect) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	screen.DrawImage(img, op)
}
