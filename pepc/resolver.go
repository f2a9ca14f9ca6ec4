package pepc

import "math/bits"

// Resolve picks the winning channel of a request vector. With DirectionMSB the
// highest set bit wins, with DirectionLSB the lowest set bit wins. An empty
// vector yields NoChannel.
func Resolve(req RequestVector, dir Direction) WinningChannel {
	if req == 0 {
		return NoChannel
	}

	var index int
	if dir == DirectionLSB {
		index = bits.TrailingZeros8(uint8(req))
	} else {
		index = 7 - bits.LeadingZeros8(uint8(req))
	}

	return WinningChannel(index + 1)
}
