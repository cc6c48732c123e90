// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package race implements the Row-based ASCII Compatible Encoding, the
// ACE that preceded Punycode.
//
// A label is converted to UTF-16, compressed by factoring out a common high
// octet, and written in a lowercase Base32 alphabet.
package race

import (
	"encoding/base32"

	"github.com/idnxcode/xcode"
	"github.com/idnxcode/xcode/internal/labels"
	"github.com/idnxcode/xcode/internal/utf16x"
)

const (
	// nullCompression flags an uncompressed sequence of octet pairs.
	nullCompression = 0xD8

	escape       = 0xFF
	doubleEscape = 0x99

	// MaxCompressed is the largest number of octets a compressed label may
	// have before Base32.
	MaxCompressed = 36
)

var encoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

func isSurrogateOctet(b byte) bool {
	return 0xD8 <= b && b <= 0xDF
}

// commonHigh returns the single non-zero high octet shared by s, or 0 if
// all high octets are zero. ok is false if s has two distinct non-zero high
// octets.
func commonHigh(s []uint16) (u1 byte, ok bool) {
	for _, u := range s {
		hi := byte(u >> 8)
		switch {
		case hi == 0 || hi == u1:
		case u1 == 0:
			u1 = hi
		default:
			return 0, false
		}
	}
	return u1, true
}

// Compress returns the compressed form of s.
func Compress(s []uint16) ([]byte, error) {
	if len(s) == 0 {
		return nil, xcode.Empty
	}
	if labels.ContainsDelimiter(s) {
		return nil, xcode.RaceDelimiterFound
	}
	u1, ok := commonHigh(s)
	var out []byte
	if !ok {
		out = make([]byte, 0, 2*len(s)+1)
		out = append(out, nullCompression)
		for _, u := range s {
			out = append(out, byte(u>>8), byte(u))
		}
	} else {
		if isSurrogateOctet(u1) {
			return nil, xcode.BadSurrogateUse
		}
		out = make([]byte, 0, 2*len(s)+1)
		out = append(out, u1)
		for _, u := range s {
			hi, lo := byte(u>>8), byte(u)
			switch {
			case hi == u1 && lo == escape:
				out = append(out, escape, doubleEscape)
			case hi == u1:
				out = append(out, lo)
			case lo == doubleEscape:
				// Would read back as u1<<8 | 0xFF.
				return nil, xcode.DoubleEscapePresent
			default:
				out = append(out, escape, lo)
			}
		}
	}
	if len(out) > MaxCompressed {
		return nil, xcode.CompressionOverflow
	}
	return out, nil
}

// Decompress returns the UTF-16 code units compressed in b.
func Decompress(b []byte) ([]uint16, error) {
	if len(b) == 0 {
		return nil, xcode.Empty
	}
	if len(b) > MaxCompressed {
		return nil, xcode.CompressionOverflow
	}
	var (
		out []uint16
		err error
	)
	switch u1 := b[0]; {
	case u1 == nullCompression:
		out, err = decompressNull(b[1:])
	case isSurrogateOctet(u1):
		return nil, xcode.BadSurrogateUse
	default:
		out, err = decompressRow(u1, b[1:])
	}
	if err != nil {
		return nil, err
	}
	if labels.ContainsDelimiter(out) {
		return nil, xcode.RaceDelimiterFound
	}
	for _, u := range out {
		if u >= 0x80 || !utf16x.IsLDH(rune(u)) {
			return out, nil
		}
	}
	return nil, xcode.NoInvalidDNSCharacter
}

func decompressNull(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, xcode.OddOctetCount
	}
	out := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		out = append(out, uint16(b[i])<<8|uint16(b[i+1]))
	}
	if _, ok := commonHigh(out); ok {
		return nil, xcode.ImproperNullCompression
	}
	return out, nil
}

func decompressRow(u1 byte, b []byte) ([]uint16, error) {
	out := make([]uint16, 0, len(b))
	high := uint16(u1) << 8
	unescaped := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != escape {
			out = append(out, high|uint16(c))
			unescaped = true
			continue
		}
		if i++; i == len(b) {
			return nil, xcode.TrailingEscapePresent
		}
		switch c = b[i]; {
		case c == doubleEscape:
			out = append(out, high|escape)
			unescaped = true
		case u1 == 0:
			return nil, xcode.UnneededEscapePresent
		default:
			out = append(out, uint16(c))
		}
	}
	if len(out) == 0 {
		return nil, xcode.Empty
	}
	if u1 != 0 && !unescaped {
		return nil, xcode.UnescapedOctetMissing
	}
	return out, nil
}

// Encode returns the RACE encoding, without prefix, of the label src.
func Encode(src []rune) ([]uint16, error) {
	units, err := utf16x.Contract(src)
	if err != nil {
		return nil, err
	}
	c, err := Compress(units)
	if err != nil {
		return nil, err
	}
	return utf16x.FromString(encoding.EncodeToString(c)), nil
}

// Decode returns the label encoded, without prefix, in src. Decoding is
// case-insensitive.
func Decode(src []uint16) ([]rune, error) {
	if len(src) == 0 {
		return nil, xcode.Empty
	}
	buf := make([]byte, len(src))
	for i, u := range src {
		if u >= 0x80 {
			return nil, xcode.BadBase32
		}
		c := byte(u)
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf[i] = c
	}
	switch len(buf) % 8 {
	case 1, 3, 6:
		return nil, xcode.BadBase32
	}
	b, err := encoding.DecodeString(string(buf))
	if err != nil {
		return nil, xcode.BadBase32
	}
	// Unused trailing bits must be zero.
	if encoding.EncodeToString(b) != string(buf) {
		return nil, xcode.BadBase32
	}
	units, err := Decompress(b)
	if err != nil {
		return nil, err
	}
	if !utf16x.IsSurrogateSafe(units) {
		return nil, xcode.BadSurrogateUse
	}
	return utf16x.Expand(units), nil
}
