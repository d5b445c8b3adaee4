package main

import (
	"math"
	"strings"
	"sync"
	"testing"
)

func TestSymbolCacheIdempotent(t *testing.T) {
	c := &SymbolCache{}

	tok1 := c.Stage(math.Pi / 2)
	tok2 := c.Stage(math.Pi / 2)
	if tok1 != tok2 {
		t.Errorf("same value staged twice gave %q and %q", tok1, tok2)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	// A distinct value gets a distinct token.
	tok3 := c.Stage(math.Pi / 4)
	if tok3 == tok1 {
		t.Errorf("distinct values share token %q", tok1)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestSymbolCacheTokenFormat(t *testing.T) {
	c := &SymbolCache{}
	tok := c.Stage(1.0)

	// Tokens are the prefix plus 16 hex digits of the value's bit pattern.
	if !strings.HasPrefix(tok, symbolPrefix) {
		t.Fatalf("token %q missing prefix %q", tok, symbolPrefix)
	}
	if len(tok) != len(symbolPrefix)+16 {
		t.Errorf("token %q has length %d, want %d", tok, len(tok), len(symbolPrefix)+16)
	}
	if tok != "p_3ff0000000000000" {
		t.Errorf("Stage(1.0) = %q, want %q", tok, "p_3ff0000000000000")
	}
}

func TestSymbolCacheResolve(t *testing.T) {
	c := &SymbolCache{}
	tok := c.Stage(2.5)

	if v, ok := c.Resolve(tok); !ok || v != 2.5 {
		t.Errorf("Resolve(%q) = %g, %v; want 2.5, true", tok, v, ok)
	}

	// Unknown and malformed tokens fail to resolve.
	for _, bad := range []string{"p_0000000000000000", "q_3ff0000000000000", "p_zzzz", ""} {
		if _, ok := c.Resolve(bad); ok {
			t.Errorf("Resolve(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestSymbolCacheEntries(t *testing.T) {
	c := &SymbolCache{}
	tok := c.Stage(0.75)

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() has %d entries, want 1", len(entries))
	}
	if entries[tok] != 0.75 {
		t.Errorf("Entries()[%q] = %g, want 0.75", tok, entries[tok])
	}
}

func TestSymbolCacheConcurrentStaging(t *testing.T) {
	c := &SymbolCache{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Stage(float64(j % 5))
			}
		}()
	}
	wg.Wait()

	if c.Len() != 5 {
		t.Errorf("Len() = %d after concurrent staging, want 5", c.Len())
	}
}
