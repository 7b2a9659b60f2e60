package core

import "errors"

var (
	// ErrInvalidPlacement is returned by Board.Place for an out-of-bounds or
	// occupied target. The shot pipeline turns it into a miss.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrEmptyPalette means there was no color to draw a projectile from.
	// It can only happen with an empty configured palette.
	ErrEmptyPalette = errors.New("empty palette")

	ErrGameOver      = errors.New("game over")
	ErrBusy          = errors.New("shot already in flight")
	ErrColorMismatch = errors.New("color does not match current projectile")
)
