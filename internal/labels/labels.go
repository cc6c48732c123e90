// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package labels splits domain names into labels at the IDNA label
// separators.
package labels

// The label separators of RFC 3490, section 3.1.
const (
	FullStop                 = 0x002E
	IdeographicFullStop      = 0x3002
	FullwidthFullStop        = 0xFF0E
	HalfwidthIdeographicStop = 0xFF61
)

// A Unit is a code point or a UTF-16 code unit. All separators are in the
// BMP, so they are recognized identically in both encodings.
type Unit interface {
	~int32 | ~uint16
}

// IsDelimiter reports whether c is one of the four label separators.
func IsDelimiter[T Unit](c T) bool {
	switch rune(c) {
	case FullStop, IdeographicFullStop, FullwidthFullStop, HalfwidthIdeographicStop:
		return true
	}
	return false
}

// A Token is either a label, a maximal non-empty run of non-separators,
// or a single separator.
type Token[T Unit] struct {
	Text      []T
	Delimiter bool
}

// Tokenize splits s into labels and separators, keeping each separator as a
// token of its own. Token texts alias s.
func Tokenize[T Unit](s []T) []Token[T] {
	var toks []Token[T]
	start := 0
	for i, c := range s {
		if !IsDelimiter(c) {
			continue
		}
		if start < i {
			toks = append(toks, Token[T]{Text: s[start:i:i]})
		}
		toks = append(toks, Token[T]{Text: s[i : i+1 : i+1], Delimiter: true})
		start = i + 1
	}
	if start < len(s) {
		toks = append(toks, Token[T]{Text: s[start:len(s):len(s)]})
	}
	return toks
}

// Split returns the labels of s, dropping the separators.
func Split[T Unit](s []T) [][]T {
	var out [][]T
	for _, t := range Tokenize(s) {
		if !t.Delimiter {
			out = append(out, t.Text)
		}
	}
	return out
}

// ContainsDelimiter reports whether any element of s is a separator.
func ContainsDelimiter[T Unit](s []T) bool {
	for _, c := range s {
		if IsDelimiter(c) {
			return true
		}
	}
	return false
}
