package pepc

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logic", func() {
	var logic Logic

	BeforeEach(func() {
		logic = DefaultLogic()
	})

	DescribeTable("reference vectors",
		func(req RequestVector, ctrl ControlWord, status StatusWord, data DataWord) {
			out := logic.Evaluate(req, ctrl)

			Expect(out.Status).To(Equal(status), "status")
			Expect(out.Data).To(Equal(data), "data")
		},
		Entry("MSB priority, even parity",
			RequestVector(0b00000011), ControlWord(0b000),
			StatusWord(0b00101000), DataWord(0b11011011)),
		Entry("MSB priority, sparse requests",
			RequestVector(0b01000001), ControlWord(0b000),
			StatusWord(0b01111000), DataWord(0b10000111)),
		Entry("LSB priority, even parity",
			RequestVector(0b01000001), ControlWord(0b010),
			StatusWord(0b00011000), DataWord(0b10000110)),
		Entry("LSB priority, odd parity",
			RequestVector(0b01000011), ControlWord(0b110),
			StatusWord(0b00011000), DataWord(0b10000110)),
	)

	It("should keep the valid flag in line with the request vector", func() {
		for v := 0; v < 256; v++ {
			for ctrl := ControlWord(0); ctrl <= controlMask; ctrl++ {
				out := logic.Evaluate(RequestVector(v), ctrl)

				Expect(out.Status.Valid()).To(Equal(v != 0))
				Expect(uint8(out.Status) & 0b10000111).To(BeZero())
				if v == 0 {
					Expect(out.Status).To(BeZero())
				}
			}
		}
	})

	It("should ignore the reserved control bit", func() {
		for v := 0; v < 256; v++ {
			req := RequestVector(v)
			Expect(logic.Evaluate(req, 0b001)).
				To(Equal(logic.Evaluate(req, 0b000)))
			Expect(logic.Evaluate(req, 0b111)).
				To(Equal(logic.Evaluate(req, 0b110)))
		}
	})

	It("should blank the value field when no request is active", func() {
		even := logic.Evaluate(0, MakeControlWord(DirectionMSB, ParityEven))
		odd := logic.Evaluate(0, MakeControlWord(DirectionMSB, ParityOdd))

		Expect(even.Data.Value()).To(BeZero())
		Expect(even.Data.CheckBit()).To(BeTrue())
		Expect(odd.Data).To(BeZero())
	})
})

var _ = Describe("CheckBit", func() {
	It("should flag request vectors of the selected parity", func() {
		Expect(CheckBit(0b00000011, ParityEven)).To(BeTrue())
		Expect(CheckBit(0b00000011, ParityOdd)).To(BeFalse())
		Expect(CheckBit(0b01000011, ParityOdd)).To(BeTrue())
		Expect(CheckBit(0b01000011, ParityEven)).To(BeFalse())
	})

	It("should flip with the parity mode", func() {
		for v := 0; v < 256; v++ {
			req := RequestVector(v)
			Expect(CheckBit(req, ParityEven)).
				NotTo(Equal(CheckBit(req, ParityOdd)))
		}
	})
})

var _ = Describe("GlyphTable", func() {
	It("should reject glyphs using the check bit", func() {
		glyphs := SevenSegmentGlyphs()
		Expect(glyphs.Validate()).To(Succeed())

		glyphs[3] = 0x80
		Expect(glyphs.Validate()).To(MatchError(ContainSubstring("channel 3")))
		Expect(SevenSegmentGlyphs()[3]).To(Equal(uint8(0x4f)))
	})

	It("should reject tables of the wrong length", func() {
		Expect(GlyphTable{0x00, 0x06}.Validate()).
			To(MatchError(ContainSubstring("2 entries")))
		Expect(GlyphTable(nil).Validate()).To(HaveOccurred())
	})

	It("should encode channels outside the table as blank", func() {
		ctrl := MakeControlWord(DirectionMSB, ParityEven)

		Expect(Encode(WinningChannel(9), ctrl, 0b11)).To(Equal(DataWord(0x80)))
		Expect(GlyphTable{0x00, 0x06}.Encode(5, ctrl, 0b1)).
			To(Equal(DataWord(0x00)))
	})

	It("should encode with a custom table", func() {
		glyphs := make(GlyphTable, NumGlyphs)
		for i := range glyphs {
			glyphs[i] = uint8(i)
		}

		Expect(glyphs.Encode(5, MakeControlWord(DirectionMSB, ParityOdd), 0b1)).
			To(Equal(DataWord(0x85)))
	})
})

var _ = Describe("StatusWord", func() {
	It("should wrap channel 8 by default", func() {
		s := MakeStatusWord(8, OverflowWrap)

		Expect(s).To(Equal(StatusWord(0b00001000)))
		Expect(s.Valid()).To(BeTrue())
		Expect(s.Channel()).To(BeZero())
	})

	It("should saturate channel 8 on request", func() {
		s := MakeStatusWord(8, OverflowSaturate)

		Expect(s).To(Equal(StatusWord(0b01111000)))
	})

	It("should never touch bit 7", func() {
		for ch := WinningChannel(0); ch <= 8; ch++ {
			for _, p := range []ChannelOverflowPolicy{OverflowWrap, OverflowSaturate} {
				Expect(uint8(MakeStatusWord(ch, p)) & 0x80).To(BeZero())
			}
		}
	})

	It("should parse policies", func() {
		p, err := ParseOverflowPolicy(" Saturate ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(OverflowSaturate))

		_, err = ParseOverflowPolicy("clamp")
		Expect(err).To(HaveOccurred())
	})
})
