// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcode

import "fmt"

// A Category groups the error codes of one component.
type Category int

const (
	InvalidArgument Category = iota + 1
	AceViolation
	Bootstring
	Race
	Normalize
	IdnaProtocol
	Bidi
)

var categoryNames = [...]string{
	InvalidArgument: "invalid argument",
	AceViolation:    "ace",
	Bootstring:      "punycode",
	Race:            "race",
	Normalize:       "normalize",
	IdnaProtocol:    "idna",
	Bidi:            "bidi",
}

func (c Category) String() string {
	if c <= 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// A Code identifies a single failure. Codes are errors themselves; the
// numeric value is stable and the hundreds digit encodes the Category.
type Code int

// Invalid argument.
const (
	Null Code = 100 + iota
	Empty
	InvalidCodePoint
)

// ACE envelope.
const (
	NotSTD3ASCIIEncode Code = 200 + iota
	NotSTD3ASCIIDecode
	PrefixCollision
)

// Bootstring (Punycode).
const (
	BadDigit Code = 300 + iota
	Overflow
	OutputTooLarge
	BootstringDelimiterFound
	TrailingDelimiterInvalid
)

// RACE.
const (
	BadSurrogateUse Code = 400 + iota
	DoubleEscapePresent
	CompressionOverflow
	OddOctetCount
	ImproperNullCompression
	UnescapedOctetMissing
	NoInvalidDNSCharacter
	TrailingEscapePresent
	UnneededEscapePresent
	RaceDelimiterFound
	BadBase32
)

// Normalization.
const (
	NullCharacterPresent Code = 500 + iota
	CanonicalLookupError
)

// IDNA protocol.
const (
	LabelLengthExceeded Code = 600 + iota
	HyphenRestriction
	LeadingCombiningMark
	DisallowedOrUnassigned
	ContextualRuleViolation
	NotNormalized
	InvalidConfiguration
)

// Bidi rule.
const (
	Rule1Violation Code = 700 + iota
	Rule2Violation
	Rule3Violation
	Rule4Violation
	Rule5Violation
	Rule6Violation
)

var messages = map[Code]string{
	Null:             "null argument",
	Empty:            "empty argument",
	InvalidCodePoint: "not a Unicode scalar value",

	NotSTD3ASCIIEncode: "label violates STD3 ASCII rules before encoding",
	NotSTD3ASCIIDecode: "label violates STD3 ASCII rules after decoding",
	PrefixCollision:    "label already begins with the ACE prefix",

	BadDigit:                 "bad input digit",
	Overflow:                 "input needs wider integers to process",
	OutputTooLarge:           "output exceeds 256 code units",
	BootstringDelimiterFound: "decoded code point is a label delimiter",
	TrailingDelimiterInvalid: "trailing delimiter is not a valid encoding",

	BadSurrogateUse:         "compression high byte is a surrogate",
	DoubleEscapePresent:     "double escape octet present",
	CompressionOverflow:     "compressed output too long",
	OddOctetCount:           "odd number of octets in uncompressed input",
	ImproperNullCompression: "input compressible but was not compressed",
	UnescapedOctetMissing:   "no octet written without escape",
	NoInvalidDNSCharacter:   "label contains only DNS compatible characters",
	TrailingEscapePresent:   "trailing escape octet",
	UnneededEscapePresent:   "escape octet used where none is needed",
	RaceDelimiterFound:      "label delimiter present",
	BadBase32:               "invalid base32 input",

	NullCharacterPresent: "NUL character in input",
	CanonicalLookupError: "decomposition table lookup failed",

	LabelLengthExceeded:     "label exceeds 63 octets",
	HyphenRestriction:       "label violates hyphen restrictions",
	LeadingCombiningMark:    "label begins with a combining mark",
	DisallowedOrUnassigned:  "disallowed or unassigned code point",
	ContextualRuleViolation: "contextual rule violated",
	NotNormalized:           "decoded label is not in NFKC",
	InvalidConfiguration:    "engine configuration incomplete",

	Rule1Violation: "rule 1: first character must be L, R or AL",
	Rule2Violation: "rule 2: class not allowed in RTL label",
	Rule3Violation: "rule 3: RTL label must end in R, AL, EN or AN",
	Rule4Violation: "rule 4: EN and AN mixed in RTL label",
	Rule5Violation: "rule 5: class not allowed in LTR label",
	Rule6Violation: "rule 6: LTR label must end in L or EN",
}

// Category reports the component that produces c.
func (c Code) Category() Category {
	return Category(c / 100)
}

func (c Code) Error() string {
	msg, ok := messages[c]
	if !ok {
		msg = fmt.Sprintf("unknown error %d", int(c))
	}
	return fmt.Sprintf("xcode: %s: %s", c.Category(), msg)
}
