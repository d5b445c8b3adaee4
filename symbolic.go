package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// symbolPrefix starts every placeholder token staged by the cache.
const symbolPrefix = "p_"

// SymbolCache maps placeholder tokens to the parameter values they replaced
// during symbolic translation. Tokens derive from the IEEE-754 bit pattern of
// the staged value, so staging is deterministic across runs and idempotent:
// the same value always yields the same token and at most one entry.
//
// Staging is safe under concurrent translation; insertion is atomic
// insert-if-absent.
type SymbolCache struct {
	entries sync.Map // uint64 bit pattern -> float64
}

// Stage records the value and returns its placeholder token.
func (c *SymbolCache) Stage(v float64) string {
	bits := math.Float64bits(v)
	c.entries.LoadOrStore(bits, v)
	return fmt.Sprintf("%s%016x", symbolPrefix, bits)
}

// Resolve returns the value a placeholder token stands for.
func (c *SymbolCache) Resolve(token string) (float64, bool) {
	hexa, ok := strings.CutPrefix(token, symbolPrefix)
	if !ok {
		return 0, false
	}
	bits, err := strconv.ParseUint(hexa, 16, 64)
	if err != nil {
		return 0, false
	}
	v, ok := c.entries.Load(bits)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

// Len reports the number of distinct staged values.
func (c *SymbolCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Entries returns a token -> value snapshot, for display and for batched
// re-parametrization by downstream consumers.
func (c *SymbolCache) Entries() map[string]float64 {
	out := make(map[string]float64)
	c.entries.Range(func(k, v any) bool {
		out[fmt.Sprintf("%s%016x", symbolPrefix, k.(uint64))] = v.(float64)
		return true
	})
	return out
}
