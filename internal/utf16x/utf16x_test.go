// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package utf16x

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idnxcode/xcode"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in          string
		ascii, std3 bool
	}{
		{"", true, true},
		{"example", true, true},
		{"Ex-4mple", true, true},
		{"-ex", true, false},
		{"ex-", true, false},
		{"ex_ample", true, false},
		{"ex ample", true, false},
		{"bücher", false, true},
		{"bü_cher", false, false},
		{"ü-", false, false},
	}
	for _, tt := range tests {
		s := []rune(tt.in)
		assert.Equal(t, tt.ascii, IsASCII(s), "IsASCII(%+q)", tt.in)
		assert.Equal(t, tt.std3, IsSTD3ASCII(s), "IsSTD3ASCII(%+q)", tt.in)
	}
}

func TestContractExpand(t *testing.T) {
	for _, s := range []string{"", "abc", "bücher", "日本語", "\U0001F600x\U00010400"} {
		u, err := Contract([]rune(s))
		require.NoError(t, err)
		assert.Equal(t, FromString(s), u, "%+q", s)
		assert.True(t, IsSurrogateSafe(u))
		assert.Equal(t, s, string(Expand(u)))
	}

	u, err := Contract([]rune{0x1F600})
	require.NoError(t, err)
	assert.Equal(t, []uint16{0xD83D, 0xDE00}, u)

	for _, r := range []rune{0xD800, 0xDFFF, 0x110000, -1} {
		_, err := Contract([]rune{'a', r})
		assert.True(t, errors.Is(err, xcode.InvalidCodePoint), "%U", r)
	}
}

func TestExpandUnpaired(t *testing.T) {
	for _, tt := range []struct {
		in   []uint16
		want []rune
	}{
		{[]uint16{'a', 0xD800}, []rune{'a', 0xD800}},
		{[]uint16{0xDC00, 'a'}, []rune{0xDC00, 'a'}},
		{[]uint16{0xD800, 0xD800, 0xDC00}, []rune{0xD800, 0x10000}},
	} {
		assert.False(t, IsSurrogateSafe(tt.in), "%X", tt.in)
		assert.Equal(t, tt.want, Expand(tt.in))
	}
}

func TestHasPrefixFold(t *testing.T) {
	assert.True(t, HasPrefixFold(FromString("XN--tda"), "xn--"))
	assert.True(t, HasPrefixFold(FromString("xn--"), "xn--"))
	assert.False(t, HasPrefixFold(FromString("xn-"), "xn--"))
	assert.False(t, HasPrefixFold(FromString("bq--aa"), "xn--"))
	assert.True(t, HasRunePrefixFold([]rune("Bq--ü"), "bq--"))
	assert.False(t, HasRunePrefixFold([]rune("üq--"), "bq--"))
}
