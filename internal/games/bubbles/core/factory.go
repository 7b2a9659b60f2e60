package core

import "math/rand"

// Factory creates bubbles with unique, never reused IDs.
type Factory struct {
	rng     *rand.Rand
	palette []Color
	lastID  uint64
}

// NewFactory creates a factory drawing colors from palette with rng.
func NewFactory(rng *rand.Rand, palette []Color) *Factory {
	p := make([]Color, len(palette))
	copy(p, palette)
	return &Factory{rng: rng, palette: p}
}

// NextID returns a fresh bubble ID.
func (f *Factory) NextID() uint64 {
	f.lastID++
	return f.lastID
}

// Reseed swaps the random source. IDs keep counting.
func (f *Factory) Reseed(rng *rand.Rand) {
	f.rng = rng
}

// NewBubble creates a bubble at (row, col).
func (f *Factory) NewBubble(row, col int, color Color, kind Kind) *Bubble {
	return &Bubble{
		ID:    f.NextID(),
		Color: color,
		Kind:  kind,
		Row:   row,
		Col:   col,
	}
}

// RandomBubble creates a normal bubble with a color from the full palette.
// Only for placeholder bubbles; in-flow projectiles use PickColor.
func (f *Factory) RandomBubble(row, col int) (*Bubble, error) {
	if len(f.palette) == 0 {
		return nil, ErrEmptyPalette
	}
	color := f.palette[f.rng.Intn(len(f.palette))]
	return f.NewBubble(row, col, color, KindNormal), nil
}

// PickColor draws a projectile color for the given board.
func (f *Factory) PickColor(b *Board) (Color, error) {
	return PickColor(b, f.palette, f.rng)
}

// PickColor samples uniformly among the colors present on b, or among
// palette when b is empty.
func PickColor(b *Board, palette []Color, rng *rand.Rand) (Color, error) {
	candidates := b.ColorsPresent()
	if len(candidates) == 0 {
		candidates = palette
	}
	if len(candidates) == 0 {
		return 0, ErrEmptyPalette
	}
	return candidates[rng.Intn(len(candidates))], nil
}
