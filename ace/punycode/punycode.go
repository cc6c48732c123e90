// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package punycode implements the Bootstring encoding of RFC 3492 with the
// parameters for Punycode.
//
// Encode and Decode work on a single label without ACE prefix. All integer
// arithmetic is done on 32 bits and fails with xcode.Overflow instead of
// wrapping.
package punycode

import (
	"math"

	"github.com/idnxcode/xcode"
	"github.com/idnxcode/xcode/internal/labels"
)

// Bootstring parameters for Punycode, RFC 3492 section 5.
const (
	base        uint32 = 36
	damp        uint32 = 700
	skew        uint32 = 38
	tmax        uint32 = 26
	tmin        uint32 = 1
	initialBias uint32 = 72
	initialN    uint32 = 128
	delimiter          = '-'
	maxInt             = math.MaxUint32
	maxRune            = 0x10FFFF
)

// MaxOutput is the largest number of code units Encode produces.
const MaxOutput = 256

// adapt is the bias adaptation function of RFC 3492 section 6.1.
func adapt(delta, numPoints uint32, firstTime bool) uint32 {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := uint32(0)
	for delta > ((base-tmin)*tmax)/2 {
		delta /= base - tmin
		k += base
	}
	return k + (base-tmin+1)*delta/(delta+skew)
}

func threshold(k, bias uint32) uint32 {
	switch {
	case k <= bias:
		return tmin
	case k >= bias+tmax:
		return tmax
	}
	return k - bias
}

// encodeDigit returns the basic code point of digit d. Digits 0 to 25 are
// letters, uppercase if upper is set.
func encodeDigit(d uint32, upper bool) uint16 {
	if d < 26 {
		if upper {
			return uint16('A' + d)
		}
		return uint16('a' + d)
	}
	return uint16('0' + d - 26)
}

// decodeDigit returns the value of the basic code point c, or base if c is
// not a digit.
func decodeDigit(c uint16) uint32 {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c-'0') + 26
	case 'A' <= c && c <= 'Z':
		return uint32(c - 'A')
	case 'a' <= c && c <= 'z':
		return uint32(c - 'a')
	}
	return base
}

// encodeBasic forces the case of an ASCII letter according to upper.
func encodeBasic(c rune, upper bool) uint16 {
	switch {
	case upper && 'a' <= c && c <= 'z':
		c -= 'a' - 'A'
	case !upper && 'A' <= c && c <= 'Z':
		c += 'a' - 'A'
	}
	return uint16(c)
}

// Encode returns the Punycode encoding of src. If upper is not nil it must
// have the length of src; it carries the case flags of RFC 3492 section 7,
// which select the case of basic code points and of the last digit of each
// encoded delta.
func Encode(src []rune, upper []bool) ([]uint16, error) {
	if len(src) == 0 {
		return nil, xcode.Empty
	}
	if upper != nil && len(upper) != len(src) {
		return nil, xcode.InvalidCodePoint
	}
	out := make([]uint16, 0, len(src)+8)
	for j, r := range src {
		if r < 0 || r > maxRune {
			return nil, xcode.InvalidCodePoint
		}
		if r >= 0x80 {
			continue
		}
		if len(out) >= MaxOutput {
			return nil, xcode.OutputTooLarge
		}
		if upper != nil {
			out = append(out, encodeBasic(r, upper[j]))
		} else {
			out = append(out, uint16(r))
		}
	}
	b := uint32(len(out))
	h := b
	if b > 0 {
		if len(out) >= MaxOutput {
			return nil, xcode.OutputTooLarge
		}
		out = append(out, delimiter)
	}

	n, bias, delta := initialN, initialBias, uint32(0)
	for h < uint32(len(src)) {
		m := uint32(maxInt)
		for _, r := range src {
			if c := uint32(r); c >= n && c < m {
				m = c
			}
		}
		if m-n > (maxInt-delta)/(h+1) {
			return nil, xcode.Overflow
		}
		delta += (m - n) * (h + 1)
		n = m
		for j, r := range src {
			c := uint32(r)
			if c < n {
				if delta++; delta == 0 {
					return nil, xcode.Overflow
				}
			}
			if c != n {
				continue
			}
			q := delta
			for k := base; ; k += base {
				if len(out) >= MaxOutput {
					return nil, xcode.OutputTooLarge
				}
				t := threshold(k, bias)
				if q < t {
					break
				}
				out = append(out, encodeDigit(t+(q-t)%(base-t), false))
				q = (q - t) / (base - t)
			}
			out = append(out, encodeDigit(q, upper != nil && upper[j]))
			bias = adapt(delta, h+1, h == b)
			delta = 0
			h++
		}
		delta++
		n++
	}
	return out, nil
}

// Decode returns the code points encoded by src, together with the case
// flag of each of them: true if the code point was written in uppercase.
func Decode(src []uint16) ([]rune, []bool, error) {
	if len(src) == 0 {
		return nil, nil, xcode.Empty
	}
	b := 0
	for j, c := range src {
		if c == delimiter {
			b = j
		}
	}
	if src[len(src)-1] == delimiter {
		return nil, nil, xcode.TrailingDelimiterInvalid
	}
	if len(src) > MaxOutput {
		return nil, nil, xcode.OutputTooLarge
	}

	out := make([]rune, 0, len(src))
	upper := make([]bool, 0, len(src))
	for _, c := range src[:b] {
		if c >= 0x80 {
			return nil, nil, xcode.BadDigit
		}
		if labels.IsDelimiter(c) {
			return nil, nil, xcode.BootstringDelimiterFound
		}
		out = append(out, rune(c))
		upper = append(upper, 'A' <= c && c <= 'Z')
	}

	in := 0
	if b > 0 {
		in = b + 1
	}
	n, bias, i := initialN, initialBias, uint32(0)
	for in < len(src) {
		oldi, w := i, uint32(1)
		for k := base; ; k += base {
			if in >= len(src) {
				return nil, nil, xcode.BadDigit
			}
			c := src[in]
			in++
			digit := decodeDigit(c)
			if digit >= base {
				return nil, nil, xcode.BadDigit
			}
			if digit > (maxInt-i)/w {
				return nil, nil, xcode.Overflow
			}
			i += digit * w
			t := threshold(k, bias)
			if digit < t {
				upper = append(upper, 'A' <= c && c <= 'Z')
				break
			}
			if w > maxInt/(base-t) {
				return nil, nil, xcode.Overflow
			}
			w *= base - t
		}
		l := uint32(len(out) + 1)
		bias = adapt(i-oldi, l, oldi == 0)
		if i/l > maxInt-n {
			return nil, nil, xcode.Overflow
		}
		n += i / l
		i %= l
		switch {
		case n > maxRune || 0xD800 <= n && n <= 0xDFFF:
			return nil, nil, xcode.InvalidCodePoint
		case labels.IsDelimiter(rune(n)):
			return nil, nil, xcode.BootstringDelimiterFound
		}
		if len(out) >= MaxOutput {
			return nil, nil, xcode.OutputTooLarge
		}
		out = append(out, 0)
		copy(out[i+1:], out[i:])
		out[i] = rune(n)

		flag := upper[len(upper)-1]
		copy(upper[i+1:], upper[i:len(upper)-1])
		upper[i] = flag
		i++
	}
	return out, upper, nil
}
