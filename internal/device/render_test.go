package device

import (
	"testing"
	"time"

	"github.com/vovakirdan/jsgotchi/internal/lcd"
	"github.com/vovakirdan/jsgotchi/internal/pet"
)

var noon = time.Date(2024, 1, 1, 12, 34, 0, 0, time.UTC)

func TestRenderTabs(t *testing.T) {
	tests := []struct {
		name string
		snap pet.Snapshot
		row0 string
		row1 string
	}{
		{
			name: "experience",
			snap: pet.Snapshot{ActiveTab: 0, Experience: 42, Level: 3, AverageQuality: 2},
			row0: "EXP     42    2#",
			row1: "LVL      3  #   ",
		},
		{
			name: "energy and clock",
			snap: pet.Snapshot{ActiveTab: 1, Energy: 999},
			row0: "ENG    999    0#",
			row1: "12:34       #   ",
		},
		{
			name: "frameworks",
			snap: pet.Snapshot{ActiveTab: 2, Framework: 7, ActiveFrameworkProgress: 250, FrameworkCreationExp: 500, AverageQuality: 3},
			row0: "FRW      7    3#",
			row1: "##########  #   ",
		},
		{
			name: "overflow is cut",
			snap: pet.Snapshot{ActiveTab: 0, Experience: 123456789012, Level: 1},
			row0: "EXP1234567    0#",
			row1: "LVL      1  #   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := lcd.NewPanel()
			Render(p, tt.snap, 1, noon, "15:04")

			f := p.Snapshot()
			text := f.Text()
			want := tt.row0 + "\n" + tt.row1
			if text != want {
				t.Errorf("panel =\n%q\nexpected\n%q", text, want)
			}
		})
	}
}

func TestRenderProgressBar(t *testing.T) {
	p := lcd.NewPanel()
	snap := pet.Snapshot{ActiveTab: 2, ActiveFrameworkProgress: 250, FrameworkCreationExp: 500}
	Render(p, snap, 1, noon, "")

	f := p.Snapshot()
	for i := 0; i < 10; i++ {
		want := rune(lcd.SlotProgressEmpty)
		if i < 5 {
			want = rune(lcd.SlotProgressFull)
		}
		if f.Cells[1][i] != want {
			t.Errorf("cell %d = %d, expected %d", i, f.Cells[1][i], want)
		}
	}
}

func TestProgressCells(t *testing.T) {
	tests := []struct {
		progress int
		want     int
	}{
		{0, 0},
		{24, 0},
		{25, 1}, // 0.5 rounds up
		{16, 0},
		{250, 5},
		{499, 10},
		{600, 10},
	}

	for _, tt := range tests {
		s := pet.Snapshot{ActiveFrameworkProgress: tt.progress, FrameworkCreationExp: 500}
		if got := ProgressCells(s); got != tt.want {
			t.Errorf("ProgressCells(%d) = %d, expected %d", tt.progress, got, tt.want)
		}
	}
	if got := ProgressCells(pet.Snapshot{ActiveFrameworkProgress: 10}); got != 0 {
		t.Errorf("ProgressCells() without a target = %d, expected 0", got)
	}
}

func TestRenderAnimationFrames(t *testing.T) {
	p := lcd.NewPanel()
	snap := pet.Snapshot{ActiveTab: 1, AvatarState: pet.StateTired}

	Render(p, snap, 1, noon, "15:04")
	f := p.Snapshot()
	if f.Cells[1][12] != rune(lcd.SlotAvatarA) {
		t.Errorf("frame 1 avatar = %d, expected slot %d", f.Cells[1][12], lcd.SlotAvatarA)
	}
	if f.Glyphs[lcd.SlotAvatarA] != lcd.GlyphTiredA || f.Glyphs[lcd.SlotAvatarB] != lcd.GlyphTiredB {
		t.Error("tired glyphs not loaded")
	}

	Render(p, snap, 0, noon, "15:04")
	if got := p.Snapshot().Cells[1][12]; got != rune(lcd.SlotAvatarB) {
		t.Errorf("frame 0 avatar = %d, expected slot %d", got, lcd.SlotAvatarB)
	}
}

func TestRenderClearsStaleText(t *testing.T) {
	p := lcd.NewPanel()
	Render(p, pet.Snapshot{ActiveTab: 0, Experience: 1234567, Level: 9}, 1, noon, "15:04")
	Render(p, pet.Snapshot{ActiveTab: 1, Energy: 5}, 1, noon, "15:04")

	if got := p.Snapshot().Row(1)[:10]; got != "12:34     " {
		t.Errorf("row 1 = %q, stale characters left", got)
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		name  string
		snap  pet.Snapshot
		frame int
		want  string
	}{
		{"idle", pet.Snapshot{AvatarState: pet.StateResting}, 1, "  "},
		{"proximity frame 1", pet.Snapshot{IsProximityActive: true}, 1, "!?"},
		{"proximity frame 0", pet.Snapshot{IsProximityActive: true}, 0, "?!"},
		{"sleeping frame 1", pet.Snapshot{AvatarState: pet.StateExhausted}, 1, "Zz"},
		{"sleeping frame 0", pet.Snapshot{AvatarState: pet.StateExhausted}, 0, "zZ"},
		{"proximity wakes", pet.Snapshot{AvatarState: pet.StateExhausted, IsProximityActive: true}, 1, "!?"},
	}

	for _, tt := range tests {
		if got := Header(tt.snap, tt.frame); got != tt.want {
			t.Errorf("%s: Header() = %q, expected %q", tt.name, got, tt.want)
		}
	}
}

func TestAvatarGlyphsDistinct(t *testing.T) {
	seen := make(map[lcd.Glyph]pet.AvatarState)
	for _, st := range pet.AllStates {
		a, _ := AvatarGlyphs(st)
		if prev, dup := seen[a]; dup {
			t.Errorf("%v and %v share a glyph", prev, st)
		}
		seen[a] = st
	}
}
