// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ace implements the ASCII Compatible Encoding envelope shared by
// all ACE codecs: STD3 checks, the ASCII short cut, prefix handling and
// splitting of domain names into labels.
//
// The label transformation itself is delegated to a core transcoder, such as
// those of the punycode and race packages.
package ace

import (
	"github.com/pkg/errors"

	"github.com/idnxcode/xcode"
	"github.com/idnxcode/xcode/ace/punycode"
	"github.com/idnxcode/xcode/ace/race"
	"github.com/idnxcode/xcode/internal/labels"
	"github.com/idnxcode/xcode/internal/utf16x"
)

// ACE prefixes of the predefined codecs.
const (
	PunycodePrefix = "xn--"
	RacePrefix     = "bq--"
)

// An EncodeFunc converts a non-ASCII label to the ASCII form that follows the
// prefix.
type EncodeFunc func(label []rune) ([]uint16, error)

// A DecodeFunc converts the part of an ACE label that follows the prefix
// back to code points.
type DecodeFunc func(label []uint16) ([]rune, error)

// An Option configures a Codec.
type Option func(*options)

type options struct {
	useSTD3Rules bool
}

// UseSTD3ASCIIRules sets whether labels must satisfy the STD3 ASCII rules
// before encoding and after decoding.
func UseSTD3ASCIIRules(use bool) Option {
	return func(o *options) {
		o.useSTD3Rules = use
	}
}

// A Codec converts labels and domain names to and from an ACE. A Codec is
// immutable and safe for concurrent use.
type Codec struct {
	options
	name   string
	prefix string
	encode EncodeFunc
	decode DecodeFunc
}

// New returns a Codec named name that marks encoded labels with prefix.
func New(name, prefix string, encode EncodeFunc, decode DecodeFunc, opts ...Option) *Codec {
	c := &Codec{name: name, prefix: prefix, encode: encode, decode: decode}
	for _, f := range opts {
		f(&c.options)
	}
	return c
}

// NewPunycode returns a Codec for Punycode, RFC 3492.
func NewPunycode(opts ...Option) *Codec {
	decode := func(label []uint16) ([]rune, error) {
		r, _, err := punycode.Decode(label)
		return r, err
	}
	encode := func(label []rune) ([]uint16, error) {
		return punycode.Encode(label, nil)
	}
	return New("punycode", PunycodePrefix, encode, decode, opts...)
}

// NewRace returns a Codec for RACE.
func NewRace(opts ...Option) *Codec {
	return New("race", RacePrefix, race.Encode, race.Decode, opts...)
}

// Name returns the name of the codec.
func (c *Codec) Name() string { return c.name }

// Prefix returns the ACE prefix of the codec.
func (c *Codec) Prefix() string { return c.prefix }

// STD3 reports whether the codec applies the STD3 ASCII rules.
func (c *Codec) STD3() bool { return c.useSTD3Rules }

// Encode returns the ACE form of label. ASCII labels are returned unchanged,
// without prefix.
func (c *Codec) Encode(label []rune) ([]uint16, error) {
	if len(label) == 0 {
		return nil, xcode.Empty
	}
	if c.useSTD3Rules && !utf16x.IsSTD3ASCII(label) {
		return nil, xcode.NotSTD3ASCIIEncode
	}
	if utf16x.IsASCII(label) {
		return utf16x.Contract(label)
	}
	if utf16x.HasRunePrefixFold(label, c.prefix) {
		return nil, xcode.PrefixCollision
	}
	enc, err := c.encode(label)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, len(c.prefix)+len(enc))
	for i := 0; i < len(c.prefix); i++ {
		out = append(out, uint16(c.prefix[i]))
	}
	return append(out, enc...), nil
}

// Decode returns the code points of the ACE label. A label without the
// codec's prefix is taken to be UTF-16 already.
func (c *Codec) Decode(label []uint16) ([]rune, error) {
	if len(label) == 0 {
		return nil, xcode.Empty
	}
	var out []rune
	if utf16x.HasPrefixFold(label, c.prefix) {
		rest := label[len(c.prefix):]
		if len(rest) == 0 {
			return nil, xcode.Empty
		}
		var err error
		if out, err = c.decode(rest); err != nil {
			return nil, err
		}
	} else {
		out = utf16x.Expand(label)
	}
	if c.useSTD3Rules && !utf16x.IsSTD3ASCII(out) {
		return nil, xcode.NotSTD3ASCIIDecode
	}
	return out, nil
}

// DomainEncode encodes every label of domain. All label separators are
// written as U+002E.
func (c *Codec) DomainEncode(domain []rune) ([]uint16, error) {
	if len(domain) == 0 {
		return nil, xcode.Empty
	}
	out := make([]uint16, 0, len(domain))
	for i, tok := range labels.Tokenize(domain) {
		if tok.Delimiter {
			out = append(out, labels.FullStop)
			continue
		}
		enc, err := c.Encode(tok.Text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: token %d", c.name, i)
		}
		out = append(out, enc...)
	}
	return out, nil
}

// DomainDecode decodes every label of domain. Label separators are kept as
// they are.
func (c *Codec) DomainDecode(domain []uint16) ([]rune, error) {
	if len(domain) == 0 {
		return nil, xcode.Empty
	}
	out := make([]rune, 0, len(domain))
	for i, tok := range labels.Tokenize(domain) {
		if tok.Delimiter {
			out = append(out, rune(tok.Text[0]))
			continue
		}
		dec, err := c.Decode(tok.Text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: token %d", c.name, i)
		}
		out = append(out, dec...)
	}
	return out, nil
}
