package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrShapeMismatch signals that a raw outcome string does not match the
// declared register layout. Truncating instead would silently corrupt
// register contents, so decoding stops here.
var ErrShapeMismatch = errors.New("outcome does not match declared registers")

// DecodedRegisters holds the typed, named results of one decode call, one
// map per element kind. Bit registers receive one boolean vector per shot;
// float and complex registers are filled by the continuous-output path.
type DecodedRegisters struct {
	Bits      map[string][][]bool
	Floats    map[string][][]float64
	Complexes map[string][][]complex128
}

// newDecodedRegisters prepares empty result maps with one entry per output
// register of each kind.
func newDecodedRegisters(regs []RegisterDef) DecodedRegisters {
	dr := DecodedRegisters{
		Bits:      make(map[string][][]bool),
		Floats:    make(map[string][][]float64),
		Complexes: make(map[string][][]complex128),
	}
	for _, r := range regs {
		if !r.Output {
			continue
		}
		switch r.Kind {
		case BitRegister:
			dr.Bits[r.Name] = nil
		case FloatRegister:
			dr.Floats[r.Name] = nil
		case ComplexRegister:
			dr.Complexes[r.Name] = nil
		}
	}
	return dr
}

// decodeShots decodes a per-shot outcome list: each raw outcome contributes
// one boolean vector to every output bit register, in input order.
func decodeShots(outcomes []string, regs []RegisterDef) (DecodedRegisters, error) {
	dr := newDecodedRegisters(regs)
	bitRegs := bitOnly(regs)
	for _, outcome := range outcomes {
		if err := appendOutcome(&dr, outcome, bitRegs, 1); err != nil {
			return DecodedRegisters{}, err
		}
	}
	return dr, nil
}

// decodeCounts decodes a count-keyed histogram: each key contributes its
// decoded vector once per recorded count. Keys are visited in sorted order
// so decoding is deterministic.
func decodeCounts(counts map[string]int, regs []RegisterDef) (DecodedRegisters, error) {
	dr := newDecodedRegisters(regs)
	bitRegs := bitOnly(regs)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := appendOutcome(&dr, k, bitRegs, counts[k]); err != nil {
			return DecodedRegisters{}, err
		}
	}
	return dr, nil
}

func bitOnly(regs []RegisterDef) []RegisterDef {
	var bits []RegisterDef
	for _, r := range regs {
		if r.Kind == BitRegister {
			bits = append(bits, r)
		}
	}
	return bits
}

// appendOutcome splits one raw outcome into per-register groups and appends
// the decoded vectors repeat times.
func appendOutcome(dr *DecodedRegisters, outcome string, bitRegs []RegisterDef, repeat int) error {
	groups, err := splitOutcome(outcome, bitRegs)
	if err != nil {
		return err
	}
	for i, r := range bitRegs {
		if _, ok := dr.Bits[r.Name]; !ok {
			continue
		}
		for n := 0; n < repeat; n++ {
			dr.Bits[r.Name] = append(dr.Bits[r.Name], groupBits(groups[i]))
		}
	}
	return nil
}

// splitOutcome returns one substring per bit register, in declaration order.
//
// A separator-free outcome is a fixed-width concatenation with the
// most-recently-declared register at the most significant (leftmost) end.
// An outcome with explicit separators is split on them directly and the
// group order reversed to restore declaration order; every group must still
// match its register's declared length.
func splitOutcome(outcome string, bitRegs []RegisterDef) ([]string, error) {
	if strings.Contains(outcome, " ") {
		fields := strings.Fields(outcome)
		if len(fields) != len(bitRegs) {
			return nil, fmt.Errorf("%w: %d groups for %d bit registers",
				ErrShapeMismatch, len(fields), len(bitRegs))
		}
		groups := make([]string, len(bitRegs))
		for i, f := range fields {
			reg := bitRegs[len(bitRegs)-1-i]
			if len(f) != reg.Length {
				return nil, fmt.Errorf("%w: group %q has %d bits, register %q declares %d",
					ErrShapeMismatch, f, len(f), reg.Name, reg.Length)
			}
			groups[len(bitRegs)-1-i] = f
		}
		return groups, nil
	}

	total := 0
	for _, r := range bitRegs {
		total += r.Length
	}
	if len(outcome) != total {
		return nil, fmt.Errorf("%w: outcome %q has %d bits, registers declare %d",
			ErrShapeMismatch, outcome, len(outcome), total)
	}
	groups := make([]string, len(bitRegs))
	pos := 0
	for i := len(bitRegs) - 1; i >= 0; i-- {
		groups[i] = outcome[pos : pos+bitRegs[i].Length]
		pos += bitRegs[i].Length
	}
	return groups, nil
}

// groupBits converts one register group to a boolean vector, preserving the
// group's character order; any character other than '1' reads as false.
func groupBits(group string) []bool {
	bits := make([]bool, len(group))
	for i := 0; i < len(group); i++ {
		bits[i] = group[i] == '1'
	}
	return bits
}
