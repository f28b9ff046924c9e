package device

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/vovakirdan/jsgotchi/internal/lcd"
	"github.com/vovakirdan/jsgotchi/internal/pet"
)

// Panel layout.
const (
	fieldWidth  = 10 // tab fields occupy columns 0-9
	progressLen = 10
	headerCol   = 11
	avatarCol   = 12
	qualityCol  = 14
	flagCol     = 15
)

// AvatarGlyphs returns the two animation frames for a state.
func AvatarGlyphs(state pet.AvatarState) (lcd.Glyph, lcd.Glyph) {
	switch state {
	case pet.StateTired:
		return lcd.GlyphTiredA, lcd.GlyphTiredB
	case pet.StateExhausted:
		return lcd.GlyphExhaustedA, lcd.GlyphExhaustedB
	case pet.StateHyperactive:
		return lcd.GlyphHyperactiveA, lcd.GlyphHyperactiveB
	case pet.StateLonely:
		return lcd.GlyphLonelyA, lcd.GlyphLonelyB
	default:
		return lcd.GlyphRestingA, lcd.GlyphRestingB
	}
}

// Header returns the two characters shown above the avatar.
func Header(s pet.Snapshot, frame int) string {
	switch {
	case s.IsProximityActive:
		return pick(frame, "!?", "?!")
	case s.AvatarState == pet.StateExhausted:
		return pick(frame, "Zz", "zZ")
	default:
		return "  "
	}
}

// ProgressCells is the number of filled cells in the framework progress bar.
func ProgressCells(s pet.Snapshot) int {
	return int(math.Round(s.ProgressRatio() * progressLen))
}

// Render draws one animation frame of the pet onto d.
// Frame 1 shows the first glyph of the avatar pair, frame 0 the second.
func Render(d lcd.Display, s pet.Snapshot, frame int, now time.Time, clockFormat string) {
	a, b := AvatarGlyphs(s.AvatarState)
	d.DefineGlyph(lcd.SlotAvatarA, a)
	d.DefineGlyph(lcd.SlotAvatarB, b)

	d.MoveCursor(avatarCol, 1)
	if frame == 1 {
		d.WriteCustom(lcd.SlotAvatarA)
	} else {
		d.WriteCustom(lcd.SlotAvatarB)
	}
	d.MoveCursor(headerCol, 0)
	d.Write(Header(s, frame))

	renderTab(d, s, now, clockFormat)

	d.MoveCursor(qualityCol, 0)
	d.Write(strconv.Itoa(s.AverageQuality))
	d.MoveCursor(flagCol, 0)
	d.WriteCustom(lcd.SlotFlag)
}

func renderTab(d lcd.Display, s pet.Snapshot, now time.Time, clockFormat string) {
	switch s.ActiveTab {
	case 0:
		writeField(d, 0, fmt.Sprintf("EXP%7d", s.Experience))
		writeField(d, 1, fmt.Sprintf("LVL%7d", s.Level))
	case 1:
		writeField(d, 0, fmt.Sprintf("ENG%7d", s.Energy))
		if clockFormat == "" {
			clockFormat = "15:04"
		}
		writeField(d, 1, now.Format(clockFormat))
	case 2:
		writeField(d, 0, fmt.Sprintf("FRW%7d", s.Framework))
		full := ProgressCells(s)
		d.MoveCursor(0, 1)
		for i := 0; i < progressLen; i++ {
			if i < full {
				d.WriteCustom(lcd.SlotProgressFull)
			} else {
				d.WriteCustom(lcd.SlotProgressEmpty)
			}
		}
	}
}

// writeField prints text in the tab area of row, padded or cut to its width.
func writeField(d lcd.Display, row int, text string) {
	if len(text) > fieldWidth {
		text = text[:fieldWidth]
	}
	d.MoveCursor(0, row)
	d.Write(fmt.Sprintf("%-*s", fieldWidth, text))
}

func pick(frame int, first, second string) string {
	if frame == 1 {
		return first
	}
	return second
}
