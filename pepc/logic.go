package pepc

// Outputs is the pair of words presented by the core.
type Outputs struct {
	Status StatusWord
	Data   DataWord
}

// Logic is the combinational path between the sampled inputs and the output
// register.
type Logic struct {
	Overflow ChannelOverflowPolicy
	Glyphs   GlyphTable
}

// DefaultLogic wraps channel 8 and renders seven-segment glyphs.
func DefaultLogic() Logic {
	return Logic{
		Overflow: OverflowWrap,
		Glyphs:   SevenSegmentGlyphs(),
	}
}

// Evaluate resolves the winner and encodes both output words.
func (l Logic) Evaluate(req RequestVector, ctrl ControlWord) Outputs {
	ch := Resolve(req, ctrl.Direction())

	return Outputs{
		Status: MakeStatusWord(ch, l.Overflow),
		Data:   l.Glyphs.Encode(ch, ctrl, req),
	}
}
