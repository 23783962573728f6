// Package config loads barrier demo scenarios from YAML.
//
// A scenario describes a small type hierarchy, a set of reference arrays
// with per-slot runtime types, and a list of copies to run through the
// barrier dispatcher. The gcbarrier CLI executes scenarios to demonstrate
// strategy behavior without writing Go against the library.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decorator names accepted in scenario files.
const (
	DecoratorUnchecked    = "unchecked"
	DecoratorNullChecked  = "nullchecked"
	DecoratorCastChecked  = "castchecked"
	DecoratorFullyChecked = "fullychecked"
)

// Strategy names accepted in scenario files.
const (
	StrategyEpsilon   = "epsilon"
	StrategyCardTable = "cardtable"
)

// Scenario is one demo run: a strategy, a hierarchy, arrays, and copies.
type Scenario struct {
	// Strategy selects the barrier strategy: "epsilon" or "cardtable".
	Strategy string `yaml:"strategy"`

	// Types declares the hierarchy, parents before children.
	Types []TypeDef `yaml:"types"`

	// Arrays declares the reference arrays.
	Arrays []ArrayDef `yaml:"arrays"`

	// Copies lists the copies to run, in order.
	Copies []CopyDef `yaml:"copies"`
}

// TypeDef declares one type. Super must name an earlier type, or be empty
// for the hierarchy root.
type TypeDef struct {
	Name  string `yaml:"name"`
	Super string `yaml:"super,omitempty"`
}

// ArrayDef declares one reference array. Either Elements (per-slot runtime
// type names, empty string for null) or Length (all-null array) is given.
type ArrayDef struct {
	Name     string   `yaml:"name"`
	Element  string   `yaml:"element"`
	Elements []string `yaml:"elements,omitempty"`
	Length   int      `yaml:"length,omitempty"`
}

// Len returns the declared slot count.
func (a ArrayDef) Len() int {
	if len(a.Elements) > 0 {
		return len(a.Elements)
	}
	return a.Length
}

// CopyDef declares one copy operation between two declared arrays.
type CopyDef struct {
	Src        string `yaml:"src"`
	Dst        string `yaml:"dst"`
	Decorators string `yaml:"decorators"`
	SrcFrom    int    `yaml:"srcFrom,omitempty"`
	DstFrom    int    `yaml:"dstFrom,omitempty"`

	// Count is the element count; 0 means "as many as both windows hold".
	Count int `yaml:"count,omitempty"`
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Validate checks cross references and enumerated names.
func (s *Scenario) Validate() error {
	switch s.Strategy {
	case StrategyEpsilon, StrategyCardTable:
	case "":
		return fmt.Errorf("scenario: strategy missing")
	default:
		return fmt.Errorf("scenario: unknown strategy %q", s.Strategy)
	}

	types := make(map[string]bool, len(s.Types))
	for i, td := range s.Types {
		if td.Name == "" {
			return fmt.Errorf("scenario: type %d has no name", i)
		}
		if types[td.Name] {
			return fmt.Errorf("scenario: type %q declared twice", td.Name)
		}
		if td.Super != "" && !types[td.Super] {
			return fmt.Errorf("scenario: type %q: super %q not declared before it", td.Name, td.Super)
		}
		types[td.Name] = true
	}

	arrays := make(map[string]ArrayDef, len(s.Arrays))
	for i, ad := range s.Arrays {
		if ad.Name == "" {
			return fmt.Errorf("scenario: array %d has no name", i)
		}
		if _, ok := arrays[ad.Name]; ok {
			return fmt.Errorf("scenario: array %q declared twice", ad.Name)
		}
		if !types[ad.Element] {
			return fmt.Errorf("scenario: array %q: unknown element type %q", ad.Name, ad.Element)
		}
		if len(ad.Elements) > 0 && ad.Length > 0 && ad.Length != len(ad.Elements) {
			return fmt.Errorf("scenario: array %q: length %d disagrees with %d elements",
				ad.Name, ad.Length, len(ad.Elements))
		}
		for j, el := range ad.Elements {
			if el != "" && !types[el] {
				return fmt.Errorf("scenario: array %q: slot %d has unknown type %q", ad.Name, j, el)
			}
		}
		arrays[ad.Name] = ad
	}

	for i, cd := range s.Copies {
		src, ok := arrays[cd.Src]
		if !ok {
			return fmt.Errorf("scenario: copy %d: unknown src array %q", i, cd.Src)
		}
		dst, ok := arrays[cd.Dst]
		if !ok {
			return fmt.Errorf("scenario: copy %d: unknown dst array %q", i, cd.Dst)
		}
		switch cd.Decorators {
		case DecoratorUnchecked, DecoratorNullChecked, DecoratorCastChecked, DecoratorFullyChecked:
		case "":
			return fmt.Errorf("scenario: copy %d: decorators missing", i)
		default:
			return fmt.Errorf("scenario: copy %d: unknown decorators %q", i, cd.Decorators)
		}
		if cd.SrcFrom < 0 || cd.DstFrom < 0 || cd.Count < 0 {
			return fmt.Errorf("scenario: copy %d: negative window", i)
		}
		n := cd.EffectiveCount(src, dst)
		if cd.SrcFrom+n > src.Len() || cd.DstFrom+n > dst.Len() {
			return fmt.Errorf("scenario: copy %d: window [%d+%d / %d+%d] exceeds arrays (%d, %d slots)",
				i, cd.SrcFrom, n, cd.DstFrom, n, src.Len(), dst.Len())
		}
	}
	return nil
}

// EffectiveCount resolves a copy's element count against its arrays: an
// explicit Count wins, otherwise as many slots as both windows hold.
func (cd CopyDef) EffectiveCount(src, dst ArrayDef) int {
	if cd.Count > 0 {
		return cd.Count
	}
	n := src.Len() - cd.SrcFrom
	if m := dst.Len() - cd.DstFrom; m < n {
		n = m
	}
	if n < 0 {
		return 0
	}
	return n
}
