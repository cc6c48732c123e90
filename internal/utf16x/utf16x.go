// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package utf16x classifies code point sequences and converts between code
// points and UTF-16 code units.
package utf16x

import (
	"unicode"
	"unicode/utf16"

	"github.com/idnxcode/xcode"
)

const (
	surr1    = 0xd800
	surr3    = 0xe000
	maxRune  = unicode.MaxRune
	hyphen   = '-'
	runeSelf = 0x80
)

// IsASCII reports whether all of s is in the ASCII range.
func IsASCII(s []rune) bool {
	for _, r := range s {
		if r < 0 || r >= runeSelf {
			return false
		}
	}
	return true
}

// IsLDH reports whether r is an ASCII letter, digit or hyphen.
func IsLDH(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return true
	}
	return r == hyphen
}

// IsSTD3ASCII reports whether s satisfies the STD3 ASCII rules: every ASCII
// code point is a letter, digit or hyphen, and s neither begins nor ends
// with a hyphen. Code points outside ASCII are not constrained.
func IsSTD3ASCII(s []rune) bool {
	if len(s) == 0 {
		return true
	}
	if s[0] == hyphen || s[len(s)-1] == hyphen {
		return false
	}
	for _, r := range s {
		if r >= 0 && r < runeSelf && !IsLDH(r) {
			return false
		}
	}
	return true
}

// IsSurrogateSafe reports whether every surrogate in s is part of a
// well-formed pair.
func IsSurrogateSafe(s []uint16) bool {
	for i := 0; i < len(s); i++ {
		u := rune(s[i])
		switch {
		case u < surr1 || u >= surr3:
		case utf16.IsSurrogate(u) && u < 0xdc00 && i+1 < len(s) &&
			0xdc00 <= s[i+1] && s[i+1] < surr3:
			i++
		default:
			return false
		}
	}
	return true
}

// Contract converts code points to UTF-16 code units. It fails with
// xcode.InvalidCodePoint for surrogates and values beyond U+10FFFF.
func Contract(s []rune) ([]uint16, error) {
	n := 0
	for _, r := range s {
		switch {
		case r < 0 || r > maxRune || (surr1 <= r && r < surr3):
			return nil, xcode.InvalidCodePoint
		case r >= 0x10000:
			n += 2
		default:
			n++
		}
	}
	out := make([]uint16, 0, n)
	for _, r := range s {
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			out = append(out, uint16(r1), uint16(r2))
			continue
		}
		out = append(out, uint16(r))
	}
	return out, nil
}

// Expand converts UTF-16 code units to code points. Well-formed surrogate
// pairs become a single code point; unpaired surrogates are passed through
// unchanged.
func Expand(s []uint16) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); i++ {
		u := rune(s[i])
		if utf16.IsSurrogate(u) && i+1 < len(s) {
			if r := utf16.DecodeRune(u, rune(s[i+1])); r != unicode.ReplacementChar {
				out = append(out, r)
				i++
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

// FromString returns the code units of the ASCII or UTF-16 encodable s.
func FromString(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// String returns s as UTF-8. Unpaired surrogates become U+FFFD.
func String(s []uint16) string {
	return string(utf16.Decode(s))
}

// HasPrefixFold reports whether s begins with the ASCII string prefix,
// ignoring ASCII case.
func HasPrefixFold(s []uint16, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if lower(rune(s[i])) != lower(rune(prefix[i])) {
			return false
		}
	}
	return true
}

// HasRunePrefixFold is HasPrefixFold for code points.
func HasRunePrefixFold(s []rune, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if lower(s[i]) != lower(rune(prefix[i])) {
			return false
		}
	}
	return true
}

func lower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}
