package pepc

import "fmt"

// NumGlyphs is the length of a GlyphTable: NoChannel and channels 1 to 8.
const NumGlyphs = 9

// GlyphTable maps a winning channel (index 0 for NoChannel, 1 to 8 for the
// channels) to the 7-bit value field of the data word.
type GlyphTable []uint8

// SevenSegmentGlyphs renders the channel number as a seven-segment digit,
// segments gfedcba on bits 6 to 0. NoChannel is blank.
func SevenSegmentGlyphs() GlyphTable {
	return GlyphTable{
		0x00, // blank
		0x06, // 1
		0x5b, // 2
		0x4f, // 3
		0x66, // 4
		0x6d, // 5
		0x7d, // 6
		0x07, // 7
		0x7f, // 8
	}
}

// Validate returns an error if the table does not hold one glyph per channel
// or if a glyph uses bit 7, which belongs to the check bit.
func (g GlyphTable) Validate() error {
	if len(g) != NumGlyphs {
		return fmt.Errorf("glyph table has %d entries, want %d",
			len(g), NumGlyphs)
	}

	for ch, glyph := range g {
		if glyph&^dataValueMask != 0 {
			return fmt.Errorf(
				"glyph for channel %d is %#02x, wider than 7 bits", ch, glyph)
		}
	}

	return nil
}

// Encode derives the data word for a winning channel. Channels without a
// glyph in the table get a blank value field.
func (g GlyphTable) Encode(
	ch WinningChannel,
	ctrl ControlWord,
	req RequestVector,
) DataWord {
	var word DataWord
	if int(ch) < len(g) {
		word = DataWord(g[ch] & dataValueMask)
	}

	if CheckBit(req, ctrl.ParityMode()) {
		word |= 1 << dataCheckBit
	}

	return word
}

var defaultGlyphs = SevenSegmentGlyphs()

// Encode derives the data word using SevenSegmentGlyphs.
func Encode(ch WinningChannel, ctrl ControlWord, req RequestVector) DataWord {
	return defaultGlyphs.Encode(ch, ctrl, req)
}

// CheckBit is set when the number of active request lines belongs to the
// selected parity class: an even count under ParityEven, an odd count under
// ParityOdd.
func CheckBit(req RequestVector, mode ParityMode) bool {
	return req.Count()%2 == int(mode&1)
}
