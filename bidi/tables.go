// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bidi

import (
	xbidi "golang.org/x/text/unicode/bidi"
)

var fromXText = map[xbidi.Class]Class{
	xbidi.L:   L,
	xbidi.R:   R,
	xbidi.AL:  AL,
	xbidi.AN:  AN,
	xbidi.EN:  EN,
	xbidi.ES:  ES,
	xbidi.CS:  CS,
	xbidi.ET:  ET,
	xbidi.ON:  ON,
	xbidi.BN:  BN,
	xbidi.NSM: NSM,
}

// LookupClass returns the Bidi class of r from the Unicode Character
// Database tables of golang.org/x/text.
func LookupClass(r rune) Class {
	p, sz := xbidi.LookupRune(r)
	if sz == 0 {
		return Other
	}
	return fromXText[p.Class()]
}
