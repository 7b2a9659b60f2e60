package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		placed core.Coord
		want   int
	}{
		{
			name:   "three in a row",
			rows:   []string{"RRR-"},
			placed: core.At(0, 2),
			want:   3,
		},
		{
			name:   "pair only",
			rows:   []string{"RR--"},
			placed: core.At(0, 1),
			want:   2,
		},
		{
			name:   "other color breaks the run",
			rows:   []string{"RRBR"},
			placed: core.At(0, 3),
			want:   1,
		},
		{
			name:   "locked bubble blocks traversal",
			rows:   []string{"RrRR"},
			placed: core.At(0, 3),
			want:   2,
		},
		{
			name: "diagonal links across rows",
			rows: []string{
				"-G--",
				"G---",
				"-G--",
			},
			placed: core.At(1, 0),
			want:   3,
		},
		{
			name: "even row does not reach up-right",
			rows: []string{
				"--G-",
				"-G--",
				"G---",
			},
			placed: core.At(2, 0),
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromRows(t, 4, 4, tt.rows...)
			got := core.FindMatches(b, tt.placed)
			if len(got) != tt.want {
				t.Fatalf("FindMatches() returned %d bubbles, want %d", len(got), tt.want)
			}
			if got[0].Coord() != tt.placed {
				t.Errorf("first match = %v, want placed %v", got[0].Coord(), tt.placed)
			}
			for _, m := range got {
				if m.Kind != core.KindNormal {
					t.Errorf("locked bubble %v in match set", m.Coord())
				}
			}
		})
	}
}

func TestFindMatchesLockedStart(t *testing.T) {
	b := boardFromRows(t, 2, 3, "rRR")
	if got := core.FindMatches(b, core.At(0, 0)); got != nil {
		t.Errorf("FindMatches() from locked bubble = %v, want nil", got)
	}
	if got := core.FindMatches(b, core.At(1, 1)); got != nil {
		t.Errorf("FindMatches() from empty cell = %v, want nil", got)
	}
}

func TestFindFloating(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []core.Coord
	}{
		{
			name: "all anchored",
			rows: []string{
				"R---",
				"B---",
				"-G--",
			},
			want: nil,
		},
		{
			name: "island below",
			rows: []string{
				"R---",
				"B---",
				"--G-",
			},
			want: []core.Coord{core.At(2, 2)},
		},
		{
			name: "locked bubbles fall too",
			rows: []string{
				"---Y",
				"----",
				"rb--",
			},
			want: []core.Coord{core.At(2, 0), core.At(2, 1)},
		},
		{
			name: "empty ceiling drops everything",
			rows: []string{
				"----",
				"RG--",
			},
			want: []core.Coord{core.At(1, 0), core.At(1, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromRows(t, 4, 4, tt.rows...)
			got := core.FindFloating(b)
			if len(got) != len(tt.want) {
				t.Fatalf("FindFloating() = %d bubbles, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Coord() != tt.want[i] {
					t.Errorf("floating[%d] = %v, want %v", i, got[i].Coord(), tt.want[i])
				}
			}
		})
	}
}
