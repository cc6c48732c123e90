// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package norm

import (
	"sync"
	"unicode"
	"unicode/utf8"

	xnorm "golang.org/x/text/unicode/norm"
)

// Tables holds the data that drives normalization. A Tables value must not
// be modified once it is handed to New.
type Tables struct {
	// Compatibility contains the code points whose Decompose entry is a
	// compatibility, rather than a canonical, decomposition.
	Compatibility map[rune]bool

	// CanonicalClass maps a code point to its canonical combining class.
	// Absent code points have class 0.
	CanonicalClass map[rune]uint8

	// Decompose maps a code point to its decomposition. Entries may
	// themselves contain decomposable code points.
	Decompose map[rune][]rune

	// Compose maps an ordered pair to its primary composite.
	Compose map[[2]rune]rune
}

// A TablesBuilder accumulates table entries. The zero value is ready to use.
type TablesBuilder struct {
	t Tables
}

func (b *TablesBuilder) init() {
	if b.t.Compatibility == nil {
		b.t = Tables{
			Compatibility:  map[rune]bool{},
			CanonicalClass: map[rune]uint8{},
			Decompose:      map[rune][]rune{},
			Compose:        map[[2]rune]rune{},
		}
	}
}

// Class sets the combining class of r.
func (b *TablesBuilder) Class(r rune, ccc uint8) *TablesBuilder {
	b.init()
	if ccc != 0 {
		b.t.CanonicalClass[r] = ccc
	}
	return b
}

// Canonical adds a canonical decomposition of r.
func (b *TablesBuilder) Canonical(r rune, d ...rune) *TablesBuilder {
	b.init()
	b.t.Decompose[r] = d
	return b
}

// Compat adds a compatibility decomposition of r.
func (b *TablesBuilder) Compat(r rune, d ...rune) *TablesBuilder {
	b.init()
	b.t.Decompose[r] = d
	b.t.Compatibility[r] = true
	return b
}

// Composite adds the pair (a, c) composing to r.
func (b *TablesBuilder) Composite(a, c, r rune) *TablesBuilder {
	b.init()
	b.t.Compose[[2]rune{a, c}] = r
	return b
}

// Tables returns the accumulated tables. The builder must not be used
// afterwards.
func (b *TablesBuilder) Tables() *Tables {
	b.init()
	t := b.t
	b.t = Tables{}
	return &t
}

// Hangul syllable constants of Unicode section 3.12.
const (
	hangulBase  = 0xAC00
	hangulEnd   = 0xD7A4
	jamoLBase   = 0x1100
	jamoVBase   = 0x1161
	jamoTBase   = 0x11A7
	jamoVCount  = 21
	jamoTCount  = 28
	jamoNCount  = jamoVCount * jamoTCount
	maxUnicode  = unicode.MaxRune
	surrogateLo = 0xD800
	surrogateHi = 0xDFFF
)

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// DefaultTables returns tables derived from golang.org/x/text/unicode/norm.
// They are computed once, on first use.
func DefaultTables() *Tables {
	defaultOnce.Do(func() {
		defaultTables = buildTables()
	})
	return defaultTables
}

func buildTables() *Tables {
	var b TablesBuilder
	var buf [utf8.UTFMax]byte
	for r := rune(0); r <= maxUnicode; r++ {
		if r == surrogateLo {
			r = surrogateHi
			continue
		}
		if hangulBase <= r && r < hangulEnd {
			addHangul(&b, r)
			continue
		}
		p := buf[:utf8.EncodeRune(buf[:], r)]
		b.Class(r, xnorm.NFD.Properties(p).CCC())
		if xnorm.NFKD.Properties(p).Decomposition() == nil {
			continue
		}
		s := string(p)
		d := []rune(xnorm.NFD.String(s))
		if k := []rune(xnorm.NFKD.String(s)); string(k) != string(d) {
			b.Compat(r, k...)
		} else {
			b.Canonical(r, d...)
		}
		if string(d) != s {
			addComposite(&b, r, d)
		}
	}
	return b.Tables()
}

// addComposite records r as the composite of its decomposition when r is a
// primary composite, that is when NFC recomposes it.
func addComposite(b *TablesBuilder, r rune, d []rune) {
	if len(d) < 2 {
		return
	}
	first := []rune(xnorm.NFC.String(string(d[:len(d)-1])))
	if len(first) != 1 {
		return
	}
	last := d[len(d)-1]
	if xnorm.NFC.String(string([]rune{first[0], last})) != string(r) {
		return
	}
	b.Composite(first[0], last, r)
}

func addHangul(b *TablesBuilder, r rune) {
	s := r - hangulBase
	l := jamoLBase + s/jamoNCount
	v := jamoVBase + (s%jamoNCount)/jamoTCount
	t := s % jamoTCount
	if t == 0 {
		b.Canonical(r, l, v)
		b.Composite(l, v, r)
		return
	}
	lv := r - t
	b.Canonical(r, lv, jamoTBase+t)
	b.Composite(lv, jamoTBase+t, r)
}
