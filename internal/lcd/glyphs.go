package lcd

// Glyph slots used by the pet face and status row.
const (
	SlotAvatarA       = 1
	SlotAvatarB       = 2
	SlotProgressEmpty = 3
	SlotProgressFull  = 4
	SlotFlag          = 5
)

// Status glyphs, loaded once at startup.
var (
	GlyphProgressFull  = Glyph{0x1F, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x00, 0x1F}
	GlyphProgressEmpty = Glyph{0x1F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F}
	GlyphFlag          = Glyph{0x1F, 0x11, 0x11, 0x11, 0x11, 0x15, 0x1B, 0x11}
)

// Avatar animation pairs, two frames per mood.
var (
	GlyphRestingA     = Glyph{0x00, 0x00, 0x00, 0x0E, 0x0E, 0x1F, 0x0E, 0x0A}
	GlyphRestingB     = Glyph{0x00, 0x00, 0x00, 0x0E, 0x0E, 0x0E, 0x1F, 0x0A}
	GlyphTiredA       = Glyph{0x00, 0x02, 0x00, 0x0E, 0x0E, 0x1F, 0x0E, 0x0A}
	GlyphTiredB       = Glyph{0x08, 0x00, 0x02, 0x00, 0x0E, 0x0E, 0x1F, 0x0A}
	GlyphExhaustedA   = Glyph{0x00, 0x0C, 0x0C, 0x00, 0x02, 0x00, 0x0F, 0x1F}
	GlyphExhaustedB   = Glyph{0x00, 0x06, 0x06, 0x00, 0x04, 0x00, 0x0F, 0x1F}
	GlyphHyperactiveA = Glyph{0x00, 0x00, 0x00, 0x0E, 0x0E, 0x0E, 0x1F, 0x0A}
	GlyphHyperactiveB = Glyph{0x00, 0x00, 0x0E, 0x1F, 0x0E, 0x0E, 0x11, 0x00}
	GlyphLonelyA      = Glyph{0x1F, 0x0A, 0x0E, 0x1F, 0x0E, 0x0E, 0x00, 0x00}
	GlyphLonelyB      = Glyph{0x1F, 0x0A, 0x0E, 0x0E, 0x1F, 0x0E, 0x00, 0x00}
)

// LoadStatusGlyphs defines the progress bar and flag slots on d.
func LoadStatusGlyphs(d Display) {
	d.DefineGlyph(SlotProgressEmpty, GlyphProgressEmpty)
	d.DefineGlyph(SlotProgressFull, GlyphProgressFull)
	d.DefineGlyph(SlotFlag, GlyphFlag)
}
