// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package idna implements the IDNA2008 conversion of domain names between
// their Unicode and ASCII forms, RFC 5890 through RFC 5893.
//
// An Engine ties together an ACE codec, normalization, the protocol checks of
// RFC 5891 section 4 and the Bidi Rule. Under the Transcode protocol only
// the codec is applied; under the Register protocol every label is
// normalized to NFKC and validated as well.
package idna

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/idnxcode/xcode"
	"github.com/idnxcode/xcode/bidi"
	"github.com/idnxcode/xcode/internal/labels"
	"github.com/idnxcode/xcode/internal/utf16x"
	"github.com/idnxcode/xcode/norm"
	"github.com/idnxcode/xcode/props"
)

// MaxLabelLength is the largest number of octets in a label.
const MaxLabelLength = 63

// Protocol selects how much of IDNA2008 an Engine applies. The zero value is
// invalid so that callers state their choice.
type Protocol int

const (
	_ Protocol = iota

	// Transcode applies the ACE codec only.
	Transcode

	// Register normalizes and validates every label before encoding and
	// after decoding.
	Register
)

func (p Protocol) String() string {
	switch p {
	case Transcode:
		return "transcode"
	case Register:
		return "register"
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// ErrorMode selects whether DomainToUnicode reports label decoding failures.
// The zero value is invalid.
type ErrorMode int

const (
	_ ErrorMode = iota

	// ReportErrors returns the first label decoding failure.
	ReportErrors

	// MaskErrors replaces a label that fails to decode by its input and
	// logs the failure at debug level. It suits resolvers, which must not
	// fail on names they cannot interpret.
	MaskErrors
)

func (m ErrorMode) String() string {
	switch m {
	case ReportErrors:
		return "report"
	case MaskErrors:
		return "mask"
	}
	return fmt.Sprintf("ErrorMode(%d)", int(m))
}

// A Codec converts single labels to and from an ASCII Compatible Encoding.
// *ace.Codec implements it.
type Codec interface {
	Encode(label []rune) ([]uint16, error)
	Decode(label []uint16) ([]rune, error)
}

// Normalizer converts labels to NFKC. *norm.Normalizer implements it.
type Normalizer interface {
	NFKC(label []rune) ([]rune, error)
}

// BidiChecker applies the Bidi Rule to a domain name. *bidi.Checker
// implements it.
type BidiChecker interface {
	CheckDomain(domain []rune) error
}

// Properties answers the code point questions of the protocol checks.
// props.Provider implements it.
type Properties interface {
	IsDisallowedOrUnassigned(r rune) bool
	IsCombiningMark(r rune) bool
	HasContextual(label []rune) bool
	CheckContextual(label []rune) error
}

// An Option configures an Engine.
type Option func(*Engine)

// WithNormalizer sets the normalizer. The default uses norm.DefaultTables.
func WithNormalizer(n Normalizer) Option {
	return func(e *Engine) { e.norm = n }
}

// WithBidi sets the Bidi Rule checker. The default is bidi.Default.
func WithBidi(b BidiChecker) Option {
	return func(e *Engine) { e.bidi = b }
}

// WithProperties sets the code point properties. The default is
// props.Default.
func WithProperties(p Properties) Option {
	return func(e *Engine) { e.props = p }
}

// An Engine converts domain names. It is immutable and safe for concurrent
// use.
type Engine struct {
	codec    Codec
	protocol Protocol
	errs     ErrorMode
	norm     Normalizer
	bidi     BidiChecker
	props    Properties
}

// New returns an Engine using codec. Both protocol and errs must be given
// explicitly. Collaborators not set by an option use the default tables,
// which are loaded before New returns.
func New(codec Codec, protocol Protocol, errs ErrorMode, opts ...Option) (*Engine, error) {
	if codec == nil {
		return nil, errors.Wrap(xcode.Null, "codec")
	}
	if protocol != Transcode && protocol != Register {
		return nil, errors.Wrapf(xcode.InvalidConfiguration, "%v", protocol)
	}
	if errs != ReportErrors && errs != MaskErrors {
		return nil, errors.Wrapf(xcode.InvalidConfiguration, "%v", errs)
	}
	e := &Engine{codec: codec, protocol: protocol, errs: errs}
	for _, f := range opts {
		f(e)
	}
	if e.norm == nil {
		e.norm = norm.Default()
	}
	if e.bidi == nil {
		e.bidi = bidi.Default()
	}
	if e.props == nil {
		e.props = props.Default()
	}
	return e, nil
}

// Protocol returns the protocol of e.
func (e *Engine) Protocol() Protocol { return e.protocol }

// ErrorMode returns the error mode of e.
func (e *Engine) ErrorMode() ErrorMode { return e.errs }

// DomainToASCII converts domain to its ASCII form. Label separators are
// written as U+002E.
func (e *Engine) DomainToASCII(domain []rune) ([]uint16, error) {
	if len(domain) == 0 {
		return nil, xcode.Empty
	}
	register := e.protocol == Register
	out := make([]uint16, 0, len(domain))
	var normalized []rune
	n := 0
	for _, tok := range labels.Tokenize(domain) {
		if tok.Delimiter {
			out = append(out, labels.FullStop)
			normalized = append(normalized, labels.FullStop)
			continue
		}
		label := tok.Text
		if register {
			var err error
			if label, err = e.prepare(label); err != nil {
				return nil, errors.Wrapf(err, "label %d", n)
			}
		}
		enc, err := e.codec.Encode(label)
		if err != nil {
			return nil, errors.Wrapf(err, "label %d", n)
		}
		if register && len(enc) > MaxLabelLength {
			return nil, errors.Wrapf(xcode.LabelLengthExceeded, "label %d: %d octets", n, len(enc))
		}
		out = append(out, enc...)
		normalized = append(normalized, label...)
		n++
	}
	if register {
		if err := e.bidi.CheckDomain(normalized); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// prepare normalizes a label for registration and validates the result.
func (e *Engine) prepare(label []rune) ([]rune, error) {
	if !utf16x.IsASCII(label) {
		var err error
		if label, err = e.norm.NFKC(label); err != nil {
			return nil, err
		}
	}
	if err := e.checkProtocol(label); err != nil {
		return nil, err
	}
	return label, nil
}

// checkProtocol implements the label checks of RFC 5891, section 4.2.
func (e *Engine) checkProtocol(label []rune) error {
	if len(label) == 0 {
		return xcode.Empty
	}
	for _, r := range label {
		if e.props.IsDisallowedOrUnassigned(r) {
			return errors.Wrapf(xcode.DisallowedOrUnassigned, "%U", r)
		}
	}
	if label[0] == '-' || label[len(label)-1] == '-' ||
		len(label) >= 4 && label[2] == '-' && label[3] == '-' {
		return xcode.HyphenRestriction
	}
	if e.props.IsCombiningMark(label[0]) {
		return errors.Wrapf(xcode.LeadingCombiningMark, "%U", label[0])
	}
	if e.props.HasContextual(label) {
		return e.props.CheckContextual(label)
	}
	return nil
}

// DomainToUnicode converts domain to its Unicode form. Label separators are
// kept as they are.
func (e *Engine) DomainToUnicode(domain []uint16) ([]rune, error) {
	if len(domain) == 0 {
		return nil, xcode.Empty
	}
	out := make([]rune, 0, len(domain))
	n := 0
	for _, tok := range labels.Tokenize(domain) {
		if tok.Delimiter {
			out = append(out, rune(tok.Text[0]))
			continue
		}
		dec, err := e.decodeLabel(tok.Text)
		if err != nil {
			if e.errs != MaskErrors {
				return nil, errors.Wrapf(err, "label %d", n)
			}
			Logger().Debug("idna: label kept undecoded",
				zap.Int("label", n),
				zap.String("input", utf16x.String(tok.Text)),
				zap.Error(err))
			dec = utf16x.Expand(tok.Text)
		}
		out = append(out, dec...)
		n++
	}
	if e.protocol == Register {
		if err := e.bidi.CheckDomain(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Engine) decodeLabel(label []uint16) ([]rune, error) {
	if e.protocol != Register {
		return e.codec.Decode(label)
	}
	if len(label) > MaxLabelLength {
		return nil, errors.Wrapf(xcode.LabelLengthExceeded, "%d octets", len(label))
	}
	dec, err := e.codec.Decode(label)
	if err != nil {
		return nil, err
	}
	if err := e.checkProtocol(dec); err != nil {
		return nil, err
	}
	nfkc, err := e.norm.NFKC(dec)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(nfkc, dec) {
		return nil, xcode.NotNormalized
	}
	return dec, nil
}

// ToASCII is DomainToASCII for strings.
func (e *Engine) ToASCII(s string) (string, error) {
	out, err := e.DomainToASCII([]rune(s))
	if err != nil {
		return "", err
	}
	return utf16x.String(out), nil
}

// ToUnicode is DomainToUnicode for strings.
func (e *Engine) ToUnicode(s string) (string, error) {
	out, err := e.DomainToUnicode(utf16x.FromString(s))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
