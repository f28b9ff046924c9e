// Package lcd models the 16x2 character display the pet is drawn on.
// A Panel is an in-memory HD44780-style buffer: printable runes plus eight
// user-definable 5x8 glyph slots addressed by codes 0-7.
package lcd

import (
	"strings"
	"sync"

	"github.com/vovakirdan/jsgotchi/internal/core"
)

// Panel geometry.
const (
	Cols      = 16
	Rows      = 2
	GlyphRows = 8
	GlyphCols = 5
	Slots     = 8
)

// Glyph is a 5x8 character-generator bitmap, one byte per row (low 5 bits).
type Glyph [GlyphRows]byte

// Pixel reports whether the pixel at (x, y) is lit. x=0 is the leftmost column.
func (g Glyph) Pixel(x, y int) bool {
	if x < 0 || x >= GlyphCols || y < 0 || y >= GlyphRows {
		return false
	}
	return g[y]&(1<<(GlyphCols-1-x)) != 0
}

// Lines renders the bitmap using on/off runes, one string per row.
func (g Glyph) Lines(on, off rune) []string {
	lines := make([]string, GlyphRows)
	for y := 0; y < GlyphRows; y++ {
		var sb strings.Builder
		for x := 0; x < GlyphCols; x++ {
			if g.Pixel(x, y) {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

// Display is the narrow interface the presentation layer draws through.
// Panel implements it; a hardware driver would too.
type Display interface {
	MoveCursor(col, row int)
	Write(text string)
	WriteCustom(slot int)
	DefineGlyph(slot int, g Glyph)
}

// Frame is an immutable copy of the panel contents.
type Frame struct {
	Cells  [Rows][Cols]rune
	Glyphs [Slots]Glyph
}

// Row returns row y as a string. Custom slots appear as runes 0-7.
func (f Frame) Row(y int) string {
	if y < 0 || y >= Rows {
		return strings.Repeat(" ", Cols)
	}
	return string(f.Cells[y][:])
}

// IsCustom reports whether r addresses a glyph slot.
func IsCustom(r rune) bool {
	return r >= 0 && r < Slots
}

// Panel is a thread-safe 16x2 character buffer with a write cursor.
type Panel struct {
	mu     sync.RWMutex
	cells  [Rows][Cols]rune
	glyphs [Slots]Glyph
	col    int
	row    int
}

// NewPanel creates a cleared panel.
func NewPanel() *Panel {
	p := &Panel{}
	p.Clear()
	return p
}

// Clear fills the panel with spaces and homes the cursor.
// Glyph definitions survive, like CGRAM on the real controller.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for y := range p.cells {
		for x := range p.cells[y] {
			p.cells[y][x] = ' '
		}
	}
	p.col, p.row = 0, 0
}

// MoveCursor places the write cursor. Out-of-range positions are clamped.
func (p *Panel) MoveCursor(col, row int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.col = core.Clamp(col, 0, Cols)
	p.row = core.Clamp(row, 0, Rows-1)
}

// Write prints text at the cursor and advances it.
// Characters past the right edge are dropped.
func (p *Panel) Write(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range text {
		p.putLocked(r)
	}
}

// WriteCustom prints the glyph in slot at the cursor.
func (p *Panel) WriteCustom(slot int) {
	if slot < 0 || slot >= Slots {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.putLocked(rune(slot))
}

// DefineGlyph loads a bitmap into a slot.
func (p *Panel) DefineGlyph(slot int, g Glyph) {
	if slot < 0 || slot >= Slots {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.glyphs[slot] = g
}

// Snapshot copies the current contents.
func (p *Panel) Snapshot() Frame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Frame{Cells: p.cells, Glyphs: p.glyphs}
}

// String renders both rows joined by a newline, custom slots as '#'.
func (p *Panel) String() string {
	return p.Snapshot().Text()
}

// Text renders both rows joined by a newline, custom slots as '#'.
func (f Frame) Text() string {
	var sb strings.Builder
	sb.Grow(Rows*Cols + Rows)
	for y := 0; y < Rows; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, r := range f.Cells[y] {
			if IsCustom(r) {
				sb.WriteRune('#')
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (p *Panel) putLocked(r rune) {
	if p.col >= Cols {
		return
	}
	p.cells[p.row][p.col] = r
	p.col++
}
