package pepc

import (
	"fmt"
	"strings"
)

// ChannelOverflowPolicy decides how channel 8 is reported in the 3-bit channel
// field of the status word.
type ChannelOverflowPolicy int

// Overflow policies.
const (
	// OverflowWrap keeps the low three bits, so channel 8 reads as 0. Because
	// channel 0 never carries the valid flag otherwise, a valid status with
	// channel 0 identifies channel 8.
	OverflowWrap ChannelOverflowPolicy = iota
	// OverflowSaturate clamps channel 8 to 7.
	OverflowSaturate
)

func (p ChannelOverflowPolicy) String() string {
	switch p {
	case OverflowWrap:
		return "wrap"
	case OverflowSaturate:
		return "saturate"
	default:
		return fmt.Sprintf("ChannelOverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy converts "wrap" or "saturate" into a policy.
func ParseOverflowPolicy(s string) (ChannelOverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap":
		return OverflowWrap, nil
	case "saturate":
		return OverflowSaturate, nil
	default:
		return 0, fmt.Errorf("unknown channel overflow policy %q", s)
	}
}

// MakeStatusWord packs a winning channel into a status word.
func MakeStatusWord(
	ch WinningChannel,
	policy ChannelOverflowPolicy,
) StatusWord {
	if !ch.Valid() {
		return 0
	}

	field := uint8(ch)
	if field > statusChannelMask {
		switch policy {
		case OverflowSaturate:
			field = statusChannelMask
		case OverflowWrap:
			field &= statusChannelMask
		default:
			panic(fmt.Sprintf("unknown channel overflow policy %d", policy))
		}
	}

	return StatusWord(field&statusChannelMask)<<statusChannelShift |
		1<<statusValidBit
}
