// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/idnxcode/xcode"
	"github.com/idnxcode/xcode/ace"
	"github.com/idnxcode/xcode/ace/punycode"
	"github.com/idnxcode/xcode/props"
)

func newEngine(t *testing.T, c Codec, p Protocol, m ErrorMode, opts ...Option) *Engine {
	t.Helper()
	e, err := New(c, p, m, opts...)
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	c := ace.NewPunycode()
	for _, tt := range []struct {
		codec Codec
		p     Protocol
		m     ErrorMode
	}{
		{c, 0, ReportErrors},
		{c, Register, 0},
		{c, Protocol(7), MaskErrors},
	} {
		_, err := New(tt.codec, tt.p, tt.m)
		assert.True(t, errors.Is(err, xcode.InvalidConfiguration), "%v %v: %v", tt.p, tt.m, err)
	}
	_, err := New(nil, Register, ReportErrors)
	assert.True(t, errors.Is(err, xcode.Null), "%v", err)

	e := newEngine(t, c, Register, MaskErrors)
	assert.Equal(t, Register, e.Protocol())
	assert.Equal(t, MaskErrors, e.ErrorMode())
	assert.Equal(t, "Protocol(0)", Protocol(0).String())
	assert.Equal(t, "mask", MaskErrors.String())
}

var shalom = func() string {
	enc, err := punycode.Encode([]rune("\u05e9\u05dc\u05d5\u05dd"), nil)
	if err != nil {
		panic(err)
	}
	return "xn--" + string(utf16.Decode(enc))
}()

func TestToASCII(t *testing.T) {
	transcode := newEngine(t, ace.NewPunycode(), Transcode, ReportErrors)
	register := newEngine(t, ace.NewPunycode(), Register, ReportErrors)
	race := newEngine(t, ace.NewRace(), Register, ReportErrors)
	tests := []struct {
		e        *Engine
		in, want string
	}{
		{transcode, "\u00fc", "xn--tda"},
		{transcode, "test", "test"},
		{transcode, "b\u00fccher.example", "xn--bcher-kva.example"},
		{transcode, "B\u00fccher\u3002Example\uff0ecom\uff61", "xn--Bcher-kva.Example.com."},
		{transcode, "a_b", "a_b"},
		{register, "\u00fc", "xn--tda"},
		{register, "test", "test"},
		{register, "b\u00fccher.example", "xn--bcher-kva.example"},
		{register, "\uff42\u00fc\uff43\uff48\uff45\uff52", "xn--bcher-kva"},
		{register, "e\u0301", "xn--9ca"},
		{register, "l\u00b7l", "xn--ll-0ea"},
		{register, "\u05e9\u05dc\u05d5\u05dd.com", shalom + ".com"},
		{race, "\u00fc.com", "bq--ad6a.com"},
	}
	for _, tt := range tests {
		got, err := tt.e.ToASCII(tt.in)
		require.NoError(t, err, "%+q", tt.in)
		assert.Equal(t, tt.want, got, "%v %+q", tt.e.Protocol(), tt.in)
	}
}

func TestToASCIIErrors(t *testing.T) {
	register := newEngine(t, ace.NewPunycode(), Register, ReportErrors)
	tests := []struct {
		desc string
		in   string
		err  error
	}{
		{"empty", "", xcode.Empty},
		{"uppercase", "B\u00fccher", xcode.DisallowedOrUnassigned},
		{"symbol", "a\u2603", xcode.DisallowedOrUnassigned},
		{"unassigned", "a\u0378", xcode.DisallowedOrUnassigned},
		{"leading hyphen", "-ab", xcode.HyphenRestriction},
		{"trailing hyphen", "\u00fc-", xcode.HyphenRestriction},
		{"hyphens 3 and 4", "ab--\u00fc", xcode.HyphenRestriction},
		{"leading combining mark", "\u0301abc", xcode.LeadingCombiningMark},
		{"contextual", "a\u00b7", xcode.ContextualRuleViolation},
		{"zwj", "a\u200db", xcode.ContextualRuleViolation},
		{"too long", strings.Repeat("a", 64), xcode.LabelLengthExceeded},
		{"too long encoded", strings.Repeat("\u00fc", 60), xcode.LabelLengthExceeded},
		{"bidi rule 1", "1.\u05e9", xcode.Rule1Violation},
		{"bidi rule 2", "\u05e9a.com", xcode.Rule2Violation},
		{"bidi rule 4", "\u0627\u06611", xcode.Rule4Violation},
		{"NUL", "a\u0000\u00fc", xcode.NullCharacterPresent},
	}
	for _, tt := range tests {
		got, err := register.ToASCII(tt.in)
		assert.True(t, errors.Is(err, tt.err), "%s: got %v; want %v", tt.desc, err, tt.err)
		assert.Empty(t, got, tt.desc)
	}

	// Without registration only the codec applies.
	transcode := newEngine(t, ace.NewPunycode(), Transcode, ReportErrors)
	for _, s := range []string{"B\u00fccher", "-ab", "\u0301abc", strings.Repeat("a", 64), "\u05e9a.com"} {
		_, err := transcode.ToASCII(s)
		assert.NoError(t, err, "%+q", s)
	}
}

func TestToUnicode(t *testing.T) {
	transcode := newEngine(t, ace.NewPunycode(), Transcode, ReportErrors)
	register := newEngine(t, ace.NewPunycode(), Register, ReportErrors)
	race := newEngine(t, ace.NewRace(), Transcode, ReportErrors)
	tests := []struct {
		e        *Engine
		in, want string
	}{
		{transcode, "xn--tda", "\u00fc"},
		{transcode, "xn--bcher-kva.example", "b\u00fccher.example"},
		{transcode, "xn--tda\u3002com", "\u00fc\u3002com"},
		{transcode, "XN--Bcher-kva", "B\u00fccher"},
		{register, "xn--bcher-kva.example", "b\u00fccher.example"},
		{register, shalom + ".com", "\u05e9\u05dc\u05d5\u05dd.com"},
		{register, "\u00fc.com", "\u00fc.com"},
		{race, "bq--ad6a.com", "\u00fc.com"},
	}
	for _, tt := range tests {
		got, err := tt.e.ToUnicode(tt.in)
		require.NoError(t, err, "%+q", tt.in)
		assert.Equal(t, tt.want, got, "%v %+q", tt.e.Protocol(), tt.in)
	}
}

func TestToUnicodeErrors(t *testing.T) {
	decomposed, err := punycode.Encode([]rune("e\u0301"), nil)
	require.NoError(t, err)
	notNFKC := "xn--" + string(utf16.Decode(decomposed))

	register := newEngine(t, ace.NewPunycode(), Register, ReportErrors)
	tests := []struct {
		desc string
		in   string
		err  error
	}{
		{"empty", "", xcode.Empty},
		{"bad digit", "xn--9.com", xcode.BadDigit},
		{"too long", strings.Repeat("a", 64), xcode.LabelLengthExceeded},
		{"uppercase", "xn--Bcher-kva", xcode.DisallowedOrUnassigned},
		{"hyphens", "ab--cd", xcode.HyphenRestriction},
		{"not normalized", notNFKC, xcode.NotNormalized},
		{"bidi", "\u05e9a.com", xcode.Rule2Violation},
	}
	for _, tt := range tests {
		_, err := register.ToUnicode(tt.in)
		assert.True(t, errors.Is(err, tt.err), "%s: got %v; want %v", tt.desc, err, tt.err)
	}

	transcode := newEngine(t, ace.NewPunycode(), Transcode, ReportErrors)
	got, err := transcode.ToUnicode(notNFKC)
	require.NoError(t, err)
	assert.Equal(t, "e\u0301", got)
}

func TestMaskErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	masked := newEngine(t, ace.NewPunycode(), Register, MaskErrors)
	got, err := masked.ToUnicode("xn--9.xn--tda.XN--Bcher-kva")
	require.NoError(t, err)
	assert.Equal(t, "xn--9.\u00fc.XN--Bcher-kva", got)

	entries := logs.FilterMessage("idna: label kept undecoded").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "xn--9", entries[0].ContextMap()["input"])
	assert.Equal(t, int64(0), entries[0].ContextMap()["label"])
	assert.Equal(t, "XN--Bcher-kva", entries[1].ContextMap()["input"])

	// The Bidi Rule is not masked.
	_, err = masked.ToUnicode("\u05e9a.com")
	assert.True(t, errors.Is(err, xcode.Rule2Violation))

	// Unpaired surrogates survive masking.
	raw := []uint16{'x', 'n', '-', '-', 0xD800}
	r, err := masked.DomainToUnicode(raw)
	require.NoError(t, err)
	assert.Equal(t, []rune{'x', 'n', '-', '-', 0xD800}, r)
}

// fakeProperties marks 'x' as a combining mark and 'q' as disallowed.
type fakeProperties struct{}

func (fakeProperties) IsDisallowedOrUnassigned(r rune) bool { return r == 'q' }
func (fakeProperties) IsCombiningMark(r rune) bool          { return r == 'x' }
func (fakeProperties) HasContextual(label []rune) bool      { return false }
func (fakeProperties) CheckContextual(label []rune) error   { return nil }

type fakeBidi struct{ calls int }

func (b *fakeBidi) CheckDomain(domain []rune) error {
	b.calls++
	if strings.ContainsRune(string(domain), 'z') {
		return xcode.Rule1Violation
	}
	return nil
}

type lowerNormalizer struct{}

func (lowerNormalizer) NFKC(label []rune) ([]rune, error) {
	return []rune(strings.ToLower(string(label))), nil
}

func TestCollaborators(t *testing.T) {
	b := &fakeBidi{}
	e := newEngine(t, ace.NewPunycode(), Register, ReportErrors,
		WithProperties(fakeProperties{}),
		WithBidi(b),
		WithNormalizer(lowerNormalizer{}))

	got, err := e.ToASCII("ABC\u00dc")
	require.NoError(t, err)
	assert.Equal(t, "xn--abc-joa", got)

	_, err = e.ToASCII("xab")
	assert.True(t, errors.Is(err, xcode.LeadingCombiningMark))
	_, err = e.ToASCII("aqb")
	assert.True(t, errors.Is(err, xcode.DisallowedOrUnassigned))
	_, err = e.ToASCII("a.z")
	assert.True(t, errors.Is(err, xcode.Rule1Violation))
	assert.Equal(t, 2, b.calls)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []*ace.Codec{ace.NewPunycode(), ace.NewRace()} {
		e := newEngine(t, c, Transcode, ReportErrors)
		for _, s := range []string{
			"b\u00fccher.example",
			"\u043f\u0440\u0438\u043c\u0435\u0440.\u0440\u0444",
			"\u4f8b\u3048.\u30c6\u30b9\u30c8",
			"\u05e9\u05dc\u05d5\u05dd.com",
		} {
			a, err := e.ToASCII(s)
			require.NoError(t, err, "%s %+q", c.Name(), s)
			u, err := e.ToUnicode(a)
			require.NoError(t, err, "%s %+q", c.Name(), s)
			assert.Equal(t, s, u, c.Name())
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	e := newEngine(t, ace.NewPunycode(), Register, ReportErrors, WithProperties(props.Default()))
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			s := fmt.Sprintf("b\u00fccher%d.example", i)
			a, err := e.ToASCII(s)
			if err != nil {
				return err
			}
			u, err := e.ToUnicode(a)
			if err != nil {
				return err
			}
			if u != s {
				return fmt.Errorf("got %q; want %q", u, s)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
