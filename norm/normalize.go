// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package norm implements Unicode Normalization Form KC over code point
// sequences, driven by a set of tables that can be replaced for testing.
//
// Normalization proceeds in two phases. Decomposition expands every code
// point through the decomposition table and inserts each resulting code
// point into the output ordered by canonical combining class. Composition
// then makes a single pass combining each starter with the characters that
// follow it and are not blocked from it.
//
// References: http://unicode.org/reports/tr15/.
package norm

import (
	"github.com/idnxcode/xcode"
)

// maxDecompositionDepth bounds recursion through the decomposition table.
// Unicode data needs fewer than 5 levels; deeper chains indicate a cycle.
const maxDecompositionDepth = 32

// A Normalizer normalizes code point sequences using a fixed set of Tables.
// It is safe for concurrent use.
type Normalizer struct {
	t *Tables
}

// New returns a Normalizer using t.
func New(t *Tables) *Normalizer {
	return &Normalizer{t: t}
}

// Default returns a Normalizer using DefaultTables.
func Default() *Normalizer {
	return New(DefaultTables())
}

// NFKC returns the NFKC form of src. It fails for empty input and for input
// containing U+0000.
func (n *Normalizer) NFKC(src []rune) ([]rune, error) {
	d, err := n.Decompose(src, false)
	if err != nil {
		return nil, err
	}
	return n.Compose(d), nil
}

// IsNFKC reports whether src is already in NFKC.
func (n *Normalizer) IsNFKC(src []rune) (bool, error) {
	out, err := n.NFKC(src)
	if err != nil {
		return false, err
	}
	if len(out) != len(src) {
		return false, nil
	}
	for i, r := range out {
		if src[i] != r {
			return false, nil
		}
	}
	return true, nil
}

// Decompose returns the decomposition of src in canonical order. If
// canonical is set, compatibility decompositions are not applied.
func (n *Normalizer) Decompose(src []rune, canonical bool) ([]rune, error) {
	if len(src) == 0 {
		return nil, xcode.Empty
	}
	out := make([]rune, 0, len(src)+len(src)>>1)
	var leaves []rune
	for _, r := range src {
		if r == 0 {
			return nil, xcode.NullCharacterPresent
		}
		var err error
		leaves, err = n.expand(leaves[:0], r, canonical, 0)
		if err != nil {
			return nil, err
		}
		for _, c := range leaves {
			out = n.insert(out, c)
		}
	}
	return out, nil
}

// expand appends the full decomposition of r to dst.
func (n *Normalizer) expand(dst []rune, r rune, canonical bool, depth int) ([]rune, error) {
	d, ok := n.t.Decompose[r]
	if !ok || (canonical && n.t.Compatibility[r]) {
		return append(dst, r), nil
	}
	if len(d) == 0 || depth >= maxDecompositionDepth {
		return nil, xcode.CanonicalLookupError
	}
	var err error
	for _, c := range d {
		if dst, err = n.expand(dst, c, canonical, depth+1); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// insert adds r to the end of out, moving it before any trailing code points
// with a strictly higher, non-zero combining class.
func (n *Normalizer) insert(out []rune, r rune) []rune {
	cc := n.class(r)
	i := len(out)
	if cc != 0 {
		for ; i > 0; i-- {
			prev := n.class(out[i-1])
			if prev == 0 || prev <= cc {
				break
			}
		}
	}
	out = append(out, 0)
	copy(out[i+1:], out[i:])
	out[i] = r
	return out
}

func (n *Normalizer) class(r rune) uint8 {
	return n.t.CanonicalClass[r]
}

// Compose returns the canonical composition of the decomposed sequence src.
func (n *Normalizer) Compose(src []rune) []rune {
	if len(src) == 0 {
		return nil
	}
	out := make([]rune, len(src))
	copy(out, src)

	starterPos := 0
	starter := out[0]
	lastClass := int(n.class(starter))
	if lastClass != 0 {
		// A leading non-starter may not combine with what follows.
		lastClass = 256
	}
	k := 1
	for _, r := range src[1:] {
		cc := int(n.class(r))
		if c, ok := n.t.Compose[[2]rune{starter, r}]; ok && (lastClass < cc || lastClass == 0) {
			out[starterPos] = c
			starter = c
			continue
		}
		if cc == 0 {
			starterPos = k
			starter = r
		}
		lastClass = cc
		out[k] = r
		k++
	}
	return out[:k]
}
