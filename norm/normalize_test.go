// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package norm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xnorm "golang.org/x/text/unicode/norm"

	"github.com/idnxcode/xcode"
)

// smallTables mirrors a handful of UnicodeData entries.
func smallTables() *Tables {
	var b TablesBuilder
	b.Class(0x0300, 230) // grave
	b.Class(0x0301, 230) // acute
	b.Class(0x0307, 230) // dot above
	b.Class(0x0308, 230) // diaeresis
	b.Class(0x0323, 220) // dot below

	b.Canonical(0x00E0, 'a', 0x0300)
	b.Canonical(0x00FC, 'u', 0x0308)
	b.Canonical(0x01DC, 0x00FC, 0x0300)
	b.Canonical(0x1E63, 's', 0x0323)
	b.Canonical(0x1E69, 0x1E63, 0x0307)
	b.Canonical(0x1E9B, 0x017F, 0x0307)
	b.Compat(0x017F, 's')
	b.Compat(0xFB01, 'f', 'i')

	b.Composite('a', 0x0300, 0x00E0)
	b.Composite('u', 0x0308, 0x00FC)
	b.Composite(0x00FC, 0x0300, 0x01DC)
	b.Composite('s', 0x0323, 0x1E63)
	b.Composite(0x1E63, 0x0307, 0x1E69)
	return b.Tables()
}

func TestDecompose(t *testing.T) {
	n := New(smallTables())
	tests := []struct {
		in        string
		canonical bool
		out       string
	}{
		{"abc", false, "abc"},
		{"\u00e0", false, "a\u0300"},
		{"\u01dc", false, "u\u0308\u0300"},
		{"\ufb01", false, "fi"},
		{"\ufb01", true, "\ufb01"},
		{"\u1e9b\u0323", false, "s\u0323\u0307"},
		{"\u1e9b\u0323", true, "\u017f\u0323\u0307"},
		// Equal classes keep their order.
		{"a\u0301\u0300", false, "a\u0301\u0300"},
		// A starter stops reordering.
		{"a\u0307b\u0323", false, "a\u0307b\u0323"},
		{"\u0307\u0323", false, "\u0323\u0307"},
	}
	for _, tt := range tests {
		got, err := n.Decompose([]rune(tt.in), tt.canonical)
		require.NoError(t, err)
		assert.Equal(t, tt.out, string(got), "%+q canonical=%v", tt.in, tt.canonical)
	}
}

func TestCompose(t *testing.T) {
	n := New(smallTables())
	tests := []struct {
		in, out string
	}{
		{"a\u0300", "\u00e0"},
		{"u\u0308\u0300", "\u01dc"},
		{"s\u0323\u0307", "\u1e69"},
		// Blocked by an intervening mark of the same class.
		{"a\u0301\u0300", "a\u0301\u0300"},
		// Blocked by an intervening starter.
		{"ab\u0300", "ab\u0300"},
		{"\u0300a", "\u0300a"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, string(n.Compose([]rune(tt.in))), "%+q", tt.in)
	}
}

func TestNFKCSmall(t *testing.T) {
	n := New(smallTables())
	got, err := n.NFKC([]rune("\u1e9b\u0323"))
	require.NoError(t, err)
	assert.Equal(t, "\u1e69", string(got))

	got, err = n.NFKC([]rune("\ufb01x"))
	require.NoError(t, err)
	assert.Equal(t, "fix", string(got))
}

func TestErrors(t *testing.T) {
	n := New(smallTables())
	_, err := n.NFKC(nil)
	assert.True(t, errors.Is(err, xcode.Empty))

	_, err = n.NFKC([]rune{'a', 0, 'b'})
	assert.True(t, errors.Is(err, xcode.NullCharacterPresent))

	var b TablesBuilder
	b.Canonical('x', 'y').Canonical('y', 'x')
	_, err = New(b.Tables()).NFKC([]rune("x"))
	assert.True(t, errors.Is(err, xcode.CanonicalLookupError))

	var e TablesBuilder
	e.Compat('z')
	_, err = New(e.Tables()).NFKC([]rune("z"))
	assert.True(t, errors.Is(err, xcode.CanonicalLookupError))
}

var nfkcTests = []string{
	"abc",
	"b\u00fccher",
	"\u212b",       // ANGSTROM SIGN
	"A\u030a",      // A + ring
	"\ufb00",       // ff ligature
	"Richard \u2163",
	"\u1e9b\u0323", // long s with dot above, dot below
	"\u0958",       // composition exclusion
	"\u0344",       // non-starter decomposition
	"\u1100\u1161\u11a8",
	"\uac01",
	"\uff21\uff22", // fullwidth
	"\u00bd",
	"a\u0323\u0301\u0300",
	"\u0627\u0644\u0639\u0631\u0628\u064a\u0629",
	"\u3300",
	"\U0001d400",
	"e\u0328\u0301",
}

func TestNFKCMatchesXText(t *testing.T) {
	n := Default()
	for _, s := range nfkcTests {
		got, err := n.NFKC([]rune(s))
		require.NoError(t, err)
		if want := xnorm.NFKC.String(s); string(got) != want {
			t.Errorf("%+q: got %+q; want %+q", s, string(got), want)
		}
	}
}

func TestNFKCIdempotent(t *testing.T) {
	n := Default()
	for _, s := range nfkcTests {
		once, err := n.NFKC([]rune(s))
		require.NoError(t, err)
		twice, err := n.NFKC(once)
		require.NoError(t, err)
		assert.Equal(t, string(once), string(twice), "%+q", s)

		ok, err := n.IsNFKC(once)
		require.NoError(t, err)
		assert.True(t, ok, "%+q", s)
	}
	ok, err := n.IsNFKC([]rune("\u212b"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultTables(t *testing.T) {
	tab := DefaultTables()
	assert.Same(t, tab, DefaultTables())
	assert.Equal(t, uint8(230), tab.CanonicalClass[0x0301])
	assert.Equal(t, uint8(0), tab.CanonicalClass['a'])
	assert.True(t, tab.Compatibility[0xFB01])
	assert.False(t, tab.Compatibility[0x00E9])
	assert.Equal(t, rune(0x00E9), tab.Compose[[2]rune{'e', 0x0301}])
	_, excluded := tab.Compose[[2]rune{0x0915, 0x093C}]
	assert.False(t, excluded)
	assert.Equal(t, []rune{0x1100, 0x1161}, tab.Decompose[0xAC00])
}
