// Package stimulus drives the pins of a PEPC core from a script and checks
// the presented outputs.
package stimulus

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scripts/reference.yaml
var referenceScript []byte

// Script errors.
var (
	ErrEmptyStep     = errors.New("step has no action")
	ErrAmbiguousStep = errors.New("step has more than one action")
	ErrNegativeWait  = errors.New("wait must be positive")
	ErrControlRange  = errors.New("control word is wider than 3 bits")
	ErrControlAndBus = errors.New("control and bus drive the same pins")
)

// Script is a named sequence of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one action of a script. Exactly one of the fields is set.
type Step struct {
	Set    *Set    `yaml:"set,omitempty"`
	Wait   int     `yaml:"wait,omitempty"`
	Expect *Expect `yaml:"expect,omitempty"`
	Log    string  `yaml:"log,omitempty"`
}

// Set drives pins. Absent fields keep their level.
type Set struct {
	Request *uint8 `yaml:"request,omitempty"`
	Control *uint8 `yaml:"control,omitempty"`
	Bus     *uint8 `yaml:"bus,omitempty"`
	ResetN  *bool  `yaml:"reset_n,omitempty"`
}

// Expect checks the presented output words. Absent fields are not checked.
type Expect struct {
	Status *uint8 `yaml:"status,omitempty"`
	Data   *uint8 `yaml:"data,omitempty"`
}

// Kind names the action of the step.
func (s Step) Kind() string {
	switch {
	case s.Set != nil:
		return "set"
	case s.Wait != 0:
		return "wait"
	case s.Expect != nil:
		return "expect"
	case s.Log != "":
		return "log"
	default:
		return "empty"
	}
}

// Validate checks that every step is well formed.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("script %q, step %d: %w", s.Name, i, err)
		}
	}

	return nil
}

func (s Step) validate() error {
	actions := 0
	if s.Set != nil {
		actions++
	}
	if s.Wait != 0 {
		actions++
	}
	if s.Expect != nil {
		actions++
	}
	if s.Log != "" {
		actions++
	}

	switch {
	case actions == 0:
		return ErrEmptyStep
	case actions > 1:
		return ErrAmbiguousStep
	case s.Wait < 0:
		return ErrNegativeWait
	case s.Set != nil:
		return s.Set.validate()
	case s.Expect != nil && s.Expect.Status == nil && s.Expect.Data == nil:
		return ErrEmptyStep
	}

	return nil
}

func (s *Set) validate() error {
	if s.Request == nil && s.Control == nil && s.Bus == nil && s.ResetN == nil {
		return ErrEmptyStep
	}

	if s.Control != nil && s.Bus != nil {
		return ErrControlAndBus
	}

	if s.Control != nil && *s.Control > 0b111 {
		return fmt.Errorf("%w: %#02x", ErrControlRange, *s.Control)
	}

	return nil
}

// TotalCycles returns the number of edges the script waits for.
func (s *Script) TotalCycles() int {
	total := 0
	for _, step := range s.Steps {
		total += step.Wait
	}

	return total
}

// ParseScript decodes and validates a YAML script.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := &Script{}
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// LoadScript reads a YAML script from a file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.Name == "" {
		s.Name = path
	}

	return s, nil
}

// ReferenceScript holds reset for 10 edges, releases it, and checks the four
// reference vectors.
func ReferenceScript() *Script {
	s, err := ParseScript(bytes.NewReader(referenceScript))
	if err != nil {
		panic(err)
	}

	return s
}
