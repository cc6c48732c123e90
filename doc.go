// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcode holds the error taxonomy shared by the IDNA2008 codec and
// validation packages of this module.
//
// The packages, leaves first:
//
//	norm          NFKC normalization driven by injectable tables
//	bidi          the Bidi rule for labels (RFC 5893)
//	props         default code point properties and context rules (RFC 5892)
//	ace           the ACE envelope around the Punycode and RACE codecs
//	idna          the ToASCII/ToUnicode engine (RFC 5891)
//	convert       fan-out of one domain to several engines
//
// Every error returned by these packages has an xcode.Code at the root of
// its chain, so callers can test for a specific failure with errors.Is:
//
//	if errors.Is(err, xcode.LeadingCombiningMark) {
//		...
//	}
package xcode // import "github.com/idnxcode/xcode"
