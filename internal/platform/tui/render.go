package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jsgotchi/internal/lcd"
)

// slotRunes stands in for custom glyphs in the compact display.
var slotRunes = map[int]rune{
	lcd.SlotAvatarA:       '@',
	lcd.SlotAvatarB:       '@',
	lcd.SlotProgressEmpty: '░',
	lcd.SlotProgressFull:  '█',
	lcd.SlotFlag:          '⚑',
}

var (
	lcdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("148"))
	lcdBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	avatarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("22")).
			Background(lipgloss.Color("148")).
			Bold(true)
	ledOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	ledOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// LCDText converts a frame to plain text, custom slots as their stand-in runes.
func LCDText(f lcd.Frame) string {
	var sb strings.Builder
	for y := 0; y < lcd.Rows; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, r := range f.Cells[y] {
			if lcd.IsCustom(r) {
				if sub, ok := slotRunes[int(r)]; ok {
					r = sub
				} else {
					r = ' '
				}
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// RenderLCD draws the display inside a bordered box.
func RenderLCD(f lcd.Frame) string {
	rows := strings.Split(LCDText(f), "\n")
	for i, row := range rows {
		rows[i] = lcdStyle.Render(" " + row + " ")
	}
	return lcdBorder.Render(strings.Join(rows, "\n"))
}

// RenderGlyph draws a 5x8 bitmap two terminal cells per pixel.
func RenderGlyph(g lcd.Glyph) string {
	lines := g.Lines('█', ' ')
	for i, l := range lines {
		l = strings.ReplaceAll(l, "█", "██")
		l = strings.ReplaceAll(l, " ", "  ")
		lines[i] = avatarStyle.Render(" " + l + " ")
	}
	return lcdBorder.Render(strings.Join(lines, "\n"))
}

// AvatarGlyph returns the glyph currently shown in the avatar cell.
func AvatarGlyph(f lcd.Frame) lcd.Glyph {
	for y := 0; y < lcd.Rows; y++ {
		for _, r := range f.Cells[y] {
			if r == rune(lcd.SlotAvatarA) || r == rune(lcd.SlotAvatarB) {
				return f.Glyphs[r]
			}
		}
	}
	return lcd.Glyph{}
}

// RenderLED draws the low-energy light.
func RenderLED(on bool) string {
	if on {
		return ledOnStyle.Render("●") + " LED"
	}
	return ledOffStyle.Render("○") + dimStyle.Render(" LED")
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
