package stimulus_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pepc/stimulus"
)

var _ = Describe("Script", func() {
	It("should parse a script", func() {
		s, err := stimulus.ParseScript(strings.NewReader(`
name: smoke
steps:
  - set: {request: 0x81, control: 0x02, reset_n: true}
  - wait: 3
  - expect: {status: 0x18}
  - log: done
`))

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Name).To(Equal("smoke"))
		Expect(s.Steps).To(HaveLen(4))
		Expect(*s.Steps[0].Set.Request).To(Equal(uint8(0x81)))
		Expect(*s.Steps[0].Set.Control).To(Equal(uint8(0x02)))
		Expect(*s.Steps[0].Set.ResetN).To(BeTrue())
		Expect(s.Steps[0].Set.Bus).To(BeNil())
		Expect(s.Steps[1].Kind()).To(Equal("wait"))
		Expect(s.Steps[2].Expect.Data).To(BeNil())
		Expect(s.Steps[3].Kind()).To(Equal("log"))
		Expect(s.TotalCycles()).To(Equal(3))
	})

	DescribeTable("invalid scripts",
		func(src string, want error) {
			_, err := stimulus.ParseScript(strings.NewReader(src))
			Expect(err).To(MatchError(want))
		},
		Entry("empty step", "steps: [{}]", stimulus.ErrEmptyStep),
		Entry("two actions", "steps: [{wait: 1, log: x}]",
			stimulus.ErrAmbiguousStep),
		Entry("negative wait", "steps: [{wait: -2}]", stimulus.ErrNegativeWait),
		Entry("empty set", "steps: [{set: {}}]", stimulus.ErrEmptyStep),
		Entry("empty expect", "steps: [{expect: {}}]", stimulus.ErrEmptyStep),
		Entry("wide control", "steps: [{set: {control: 8}}]",
			stimulus.ErrControlRange),
		Entry("control and bus", "steps: [{set: {control: 1, bus: 1}}]",
			stimulus.ErrControlAndBus),
	)

	It("should reject unknown fields", func() {
		_, err := stimulus.ParseScript(strings.NewReader(
			"steps: [{sleep: 1}]"))
		Expect(err).To(HaveOccurred())
	})

	It("should load a script from a file and default its name", func() {
		path := filepath.Join(GinkgoT().TempDir(), "s.yaml")
		Expect(os.WriteFile(path, []byte("steps: [{wait: 4}]"), 0o600)).
			To(Succeed())

		s, err := stimulus.LoadScript(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Name).To(Equal(path))
		Expect(s.TotalCycles()).To(Equal(4))
	})

	It("should report missing files", func() {
		_, err := stimulus.LoadScript(
			filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("should provide the reference script", func() {
		s := stimulus.ReferenceScript()

		Expect(s.Name).To(Equal("reference"))
		Expect(s.TotalCycles()).To(Equal(10 + 2 + 1 + 3*(10+1)))
	})
})
