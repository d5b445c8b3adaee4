package main

import (
	"errors"
	"fmt"
)

// ErrInvalidCircuit signals a classifier invariant violation. It is reported
// before any execution is attempted so an invalid circuit never reaches a
// costly simulator run.
var ErrInvalidCircuit = errors.New("invalid circuit")

// RegisterDef records one classical register declaration.
type RegisterDef struct {
	Name   string
	Length int
	Kind   RegisterKind
	Output bool
}

// RepeatedReadout is the metadata of one repeated-measurement instruction.
type RepeatedReadout struct {
	Readout      string
	Shots        int
	QubitMapping map[int]int
}

// SingleReadout is the metadata of one per-qubit measurement instruction.
type SingleReadout struct {
	Qubit   int
	Readout string
	Bit     int
}

// ShotRequest is the metadata of a measurement-count pragma.
type ShotRequest struct {
	Readout string
	Shots   int
}

// SimMetadata accumulates everything the executing backend needs beyond the
// wire-format text: register declarations in declaration order, measurement
// bookkeeping, the requested continuous outputs and an optional initial state.
type SimMetadata struct {
	Registers         []RegisterDef
	Repeated          []RepeatedReadout
	Singles           []SingleReadout
	ShotRequests      []ShotRequest
	InitialState      []complex128
	WantStateVector   bool
	WantDensityMatrix bool
}

// BitRegisters returns the bit-kind register declarations in declaration
// order. This is the length map the shot decoder consumes.
func (md *SimMetadata) BitRegisters() []RegisterDef {
	var regs []RegisterDef
	for _, r := range md.Registers {
		if r.Kind == BitRegister {
			regs = append(regs, r)
		}
	}
	return regs
}

// ShotCount returns the number of shots the backend should execute: the
// repeated measurement's count if present, otherwise the first measurement-
// count pragma, otherwise a single shot.
func (md *SimMetadata) ShotCount() int {
	if len(md.Repeated) > 0 {
		return md.Repeated[0].Shots
	}
	if len(md.ShotRequests) > 0 {
		return md.ShotRequests[0].Shots
	}
	return 1
}

// classifyCircuit splits a circuit into the emittable sub-sequence and the
// accumulated simulation metadata, then enforces the circuit-wide
// invariants. The input circuit is not modified.
//
// Per-instruction rules, in precedence order:
//  1. SetStateVector is captured as metadata and dropped.
//  2. RepeatedMeasurement is recorded and kept (it still becomes wire text).
//  3. MeasureQubit is recorded and kept.
//  4. SetNumberOfMeasurements is recorded and dropped.
//  5. GetStateVector / GetDensityMatrix set their flag and are dropped.
//  6. Anything else is kept unchanged; register definitions are additionally
//     recorded for the decoder.
func classifyCircuit(c Circuit) (Circuit, *SimMetadata, error) {
	emittable := make(Circuit, 0, len(c))
	md := &SimMetadata{}
	seen := make(map[string]bool)

	for _, op := range c {
		switch g := op.(type) {
		case SetStateVector:
			md.InitialState = g.Amplitudes
		case RepeatedMeasurement:
			md.Repeated = append(md.Repeated, RepeatedReadout{
				Readout:      g.Readout,
				Shots:        g.Shots,
				QubitMapping: g.QubitMapping,
			})
			emittable = append(emittable, op)
		case MeasureQubit:
			md.Singles = append(md.Singles, SingleReadout{
				Qubit:   g.Qubit,
				Readout: g.Readout,
				Bit:     g.ReadoutIndex,
			})
			emittable = append(emittable, op)
		case SetNumberOfMeasurements:
			md.ShotRequests = append(md.ShotRequests, ShotRequest{
				Readout: g.Readout,
				Shots:   g.Shots,
			})
		case GetStateVector:
			md.WantStateVector = true
		case GetDensityMatrix:
			md.WantDensityMatrix = true
		case DefineRegister:
			if g.Length <= 0 {
				return nil, nil, fmt.Errorf("%w: register %q has non-positive length %d",
					ErrInvalidCircuit, g.Name, g.Length)
			}
			if seen[g.Name] {
				return nil, nil, fmt.Errorf("%w: register %q declared twice",
					ErrInvalidCircuit, g.Name)
			}
			seen[g.Name] = true
			md.Registers = append(md.Registers, RegisterDef{
				Name:   g.Name,
				Length: g.Length,
				Kind:   g.Kind,
				Output: g.Output,
			})
			emittable = append(emittable, op)
		default:
			emittable = append(emittable, op)
		}
	}

	if len(md.Repeated) > 0 && len(md.Singles) > 0 {
		return nil, nil, fmt.Errorf(
			"%w: repeated and per-qubit measurements cannot be mixed", ErrInvalidCircuit)
	}
	if md.WantStateVector && md.WantDensityMatrix {
		return nil, nil, fmt.Errorf(
			"%w: state-vector and density-matrix requests are mutually exclusive", ErrInvalidCircuit)
	}
	if len(md.Repeated) == 0 && len(md.Singles) == 0 &&
		!md.WantStateVector && !md.WantDensityMatrix {
		return nil, nil, fmt.Errorf("%w: circuit has no retrievable output", ErrInvalidCircuit)
	}

	return emittable, md, nil
}
