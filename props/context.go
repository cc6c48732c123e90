// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/idnxcode/xcode"
)

// This file contains the rules of RFC 5892, Appendix A.

type catBitmap uint8

const (
	// Bits describing the label as a whole.
	bJapanese catBitmap = 1 << iota
	bArabicIndicDigit
	bExtendedArabicIndicDigit
)

const viramaClass = 9

// labelBits computes the label-wide bits of label.
func labelBits(label []rune) catBitmap {
	var b catBitmap
	for _, r := range label {
		switch {
		case 0x0660 <= r && r <= 0x0669:
			b |= bArabicIndicDigit
		case 0x06F0 <= r && r <= 0x06F9:
			b |= bExtendedArabicIndicDigit
		case unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han):
			b |= bJapanese
		}
	}
	return b
}

// A rule reports whether the code point at label[i] is allowed in its
// context.
type rule func(label []rune, i int, bits catBitmap) bool

var contextRules = map[rune]rule{
	0x200C: zeroWidthNonJoiner,
	0x200D: zeroWidthJoiner,
	0x00B7: middleDot,
	0x0375: greekLowerNumeralSign,
	0x05F3: hebrewPunctuation,
	0x05F4: hebrewPunctuation,
	0x30FB: katakanaMiddleDot,
}

func init() {
	for r := rune(0x0660); r <= 0x0669; r++ {
		contextRules[r] = arabicIndicDigit
	}
	for r := rune(0x06F0); r <= 0x06F9; r++ {
		contextRules[r] = extendedArabicIndicDigit
	}
}

func checkContext(label []rune) error {
	bits := labelBits(label)
	for i, r := range label {
		p := Lookup(r)
		if p != ContextJ && p != ContextO {
			continue
		}
		allowed, ok := contextRules[r]
		if !ok || !allowed(label, i, bits) {
			return errors.Wrapf(xcode.ContextualRuleViolation, "%U at position %d", r, i)
		}
	}
	return nil
}

func precededByVirama(label []rune, i int) bool {
	if i == 0 {
		return false
	}
	return norm.NFD.PropertiesString(string(label[i-1])).CCC() == viramaClass
}

// zeroWidthNonJoiner implements A.1. Unless it follows a virama, the label
// must match (Joining_Type:{L,D})(Joining_Type:T)*U+200C
// (Joining_Type:T)*(Joining_Type:{R,D}) around it.
func zeroWidthNonJoiner(label []rune, i int, _ catBitmap) bool {
	if precededByVirama(label, i) {
		return true
	}
	j := i - 1
	for j >= 0 && joiningTypeOf(label[j]) == joiningT {
		j--
	}
	if j < 0 {
		return false
	}
	if jt := joiningTypeOf(label[j]); jt != joiningL && jt != joiningD {
		return false
	}
	k := i + 1
	for k < len(label) && joiningTypeOf(label[k]) == joiningT {
		k++
	}
	if k == len(label) {
		return false
	}
	jt := joiningTypeOf(label[k])
	return jt == joiningR || jt == joiningD
}

// zeroWidthJoiner implements A.2.
func zeroWidthJoiner(label []rune, i int, _ catBitmap) bool {
	return precededByVirama(label, i)
}

// middleDot implements A.3: it must be surrounded by 'l'.
func middleDot(label []rune, i int, _ catBitmap) bool {
	return i > 0 && i+1 < len(label) && label[i-1] == 'l' && label[i+1] == 'l'
}

// greekLowerNumeralSign implements A.4: the next code point must be Greek.
func greekLowerNumeralSign(label []rune, i int, _ catBitmap) bool {
	return i+1 < len(label) && unicode.Is(unicode.Greek, label[i+1])
}

// hebrewPunctuation implements A.5 and A.6.
func hebrewPunctuation(label []rune, i int, _ catBitmap) bool {
	return i > 0 && unicode.Is(unicode.Hebrew, label[i-1])
}

// katakanaMiddleDot implements A.7.
func katakanaMiddleDot(_ []rune, _ int, bits catBitmap) bool {
	return bits&bJapanese != 0
}

// arabicIndicDigit implements A.8.
func arabicIndicDigit(_ []rune, _ int, bits catBitmap) bool {
	return bits&bExtendedArabicIndicDigit == 0
}

// extendedArabicIndicDigit implements A.9.
func extendedArabicIndicDigit(_ []rune, _ int, bits catBitmap) bool {
	return bits&bArabicIndicDigit == 0
}
