// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package props derives the IDNA2008 property of code points as defined in
// RFC 5892 and implements the contextual rules of its Appendix A.
//
// The derivation is computed from the Unicode tables of the standard library
// and of golang.org/x/text. It is meant as the default data source for the
// idna package; any other implementation of idna.Properties may be used
// instead.
package props

import (
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// Property is the derived property value of a code point.
type Property uint8

// The order of these constants matter: everything below ContextO is never
// allowed in a label.
const (
	Unassigned Property = iota
	Disallowed
	ContextO
	ContextJ
	PValid
)

func (p Property) String() string {
	switch p {
	case Unassigned:
		return "UNASSIGNED"
	case Disallowed:
		return "DISALLOWED"
	case ContextO:
		return "CONTEXTO"
	case ContextJ:
		return "CONTEXTJ"
	case PValid:
		return "PVALID"
	}
	return "invalid"
}

// The Exceptions class as defined in RFC 5892
// https://tools.ietf.org/html/rfc5892#section-2.6
var exceptions = map[rune]Property{
	0x00DF: PValid,
	0x03C2: PValid,
	0x06FD: PValid,
	0x06FE: PValid,
	0x0F0B: PValid,
	0x3007: PValid,
	0x00B7: ContextO,
	0x0375: ContextO,
	0x05F3: ContextO,
	0x05F4: ContextO,
	0x30FB: ContextO,
	0x0660: ContextO,
	0x0661: ContextO,
	0x0662: ContextO,
	0x0663: ContextO,
	0x0664: ContextO,
	0x0665: ContextO,
	0x0666: ContextO,
	0x0667: ContextO,
	0x0668: ContextO,
	0x0669: ContextO,
	0x06F0: ContextO,
	0x06F1: ContextO,
	0x06F2: ContextO,
	0x06F3: ContextO,
	0x06F4: ContextO,
	0x06F5: ContextO,
	0x06F6: ContextO,
	0x06F7: ContextO,
	0x06F8: ContextO,
	0x06F9: ContextO,
	0x0640: Disallowed,
	0x07FA: Disallowed,
	0x302E: Disallowed,
	0x302F: Disallowed,
	0x3031: Disallowed,
	0x3032: Disallowed,
	0x3033: Disallowed,
	0x3034: Disallowed,
	0x3035: Disallowed,
	0x303B: Disallowed,
}

// OldHangulJamo: https://tools.ietf.org/html/rfc5892#section-2.9
// Hangul_Syllable_Type L, V or T.
var oldHangulJamo = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x1100, Hi: 0x11FF, Stride: 1},
		{Lo: 0xA960, Hi: 0xA97C, Stride: 1},
		{Lo: 0xD7B0, Hi: 0xD7C6, Stride: 1},
		{Lo: 0xD7CB, Hi: 0xD7FB, Stride: 1},
	},
}

// IgnorableBlocks: https://tools.ietf.org/html/rfc5892#section-2.8
var ignorableBlocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x20D0, Hi: 0x20FF, Stride: 1}, // Combining Diacritical Marks for Symbols
	},
	R32: []unicode.Range32{
		{Lo: 0x1D100, Hi: 0x1D1FF, Stride: 1}, // Musical Symbols
		{Lo: 0x1D200, Hi: 0x1D24F, Stride: 1}, // Ancient Greek Musical Notation
	},
}

var (
	assignedOnce sync.Once
	assigned     *unicode.RangeTable
)

// isAssigned reports whether r has a General_Category other than Cn.
func isAssigned(r rune) bool {
	assignedOnce.Do(func() {
		assigned = rangetable.Assigned(unicode.Version)
	})
	if assigned != nil {
		return unicode.Is(assigned, r)
	}
	// x/text does not know this Unicode version.
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P,
		unicode.S, unicode.Z, unicode.C)
}

// LetterDigits: https://tools.ietf.org/html/rfc5892#section-2.1
// r in {Ll, Lu, Lo, Nd, Lm, Mn, Mc}.
func isLetterDigits(r rune) bool {
	return unicode.In(r,
		unicode.Ll, unicode.Lu, unicode.Lm, unicode.Lo,
		unicode.Mn, unicode.Mc,
		unicode.Nd,
	)
}

// IgnorableProperties: https://tools.ietf.org/html/rfc5892#section-2.7
// Default_Ignorable_Code_Point, White_Space or Noncharacter_Code_Point.
// Default_Ignorable_Code_Point is approximated by its main contributors.
func isIgnorable(r rune) bool {
	return unicode.In(r,
		unicode.White_Space,
		unicode.Noncharacter_Code_Point,
		unicode.Other_Default_Ignorable_Code_Point,
		unicode.Variation_Selector,
		unicode.Cf,
	)
}

// Unstable: https://tools.ietf.org/html/rfc5892#section-2.3
// r is unstable if NFKC(casefold(NFKC(r))) differs from r.
func isUnstable(r rune) bool {
	s := string(r)
	return norm.NFKC.String(cases.Fold().String(norm.NFKC.String(s))) != s
}

func isLDH(r rune) bool {
	return 'a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '-'
}

// Lookup returns the derived property of r.
//
// From https://tools.ietf.org/html/rfc5892#section-3:
//
//	If .cp. .in. Exceptions Then Exceptions(cp);
//	Else If .cp. .in. BackwardCompatible Then BackwardCompatible(cp);
//	Else If .cp. .in. Unassigned Then UNASSIGNED;
//	Else If .cp. .in. LDH Then PVALID;
//	Else If .cp. .in. JoinControl Then CONTEXTJ;
//	Else If .cp. .in. Unstable Then DISALLOWED;
//	Else If .cp. .in. IgnorableProperties Then DISALLOWED;
//	Else If .cp. .in. IgnorableBlocks Then DISALLOWED;
//	Else If .cp. .in. OldHangulJamo Then DISALLOWED;
//	Else If .cp. .in. LetterDigits Then PVALID;
//	Else DISALLOWED;
//
// BackwardCompatible is currently empty.
func Lookup(r rune) Property {
	if p, ok := exceptions[r]; ok {
		return p
	}
	switch {
	case r < 0 || r > unicode.MaxRune:
		return Unassigned
	case !isAssigned(r) && !unicode.Is(unicode.Noncharacter_Code_Point, r):
		return Unassigned
	case isLDH(r):
		return PValid
	case r == 0x200C || r == 0x200D:
		return ContextJ
	case isUnstable(r):
		return Disallowed
	case isIgnorable(r):
		return Disallowed
	case unicode.Is(ignorableBlocks, r):
		return Disallowed
	case unicode.Is(oldHangulJamo, r):
		return Disallowed
	case isLetterDigits(r):
		return PValid
	}
	return Disallowed
}

// A Provider answers the property questions asked by the IDNA2008 protocol.
// It is stateless and safe for concurrent use.
type Provider struct{}

// Default returns the Provider backed by Lookup.
func Default() Provider {
	return Provider{}
}

// IsDisallowedOrUnassigned reports whether r may never appear in a label.
func (Provider) IsDisallowedOrUnassigned(r rune) bool {
	return Lookup(r) < ContextO
}

// IsCombiningMark reports whether r has General_Category M.
func (Provider) IsCombiningMark(r rune) bool {
	return unicode.Is(unicode.M, r)
}

// HasContextual reports whether label holds any CONTEXTJ or CONTEXTO code
// point.
func (Provider) HasContextual(label []rune) bool {
	for _, r := range label {
		if p := Lookup(r); p == ContextJ || p == ContextO {
			return true
		}
	}
	return false
}

// CheckContextual runs the rules of RFC 5892 Appendix A for every contextual
// code point of label.
func (Provider) CheckContextual(label []rune) error {
	return checkContext(label)
}
