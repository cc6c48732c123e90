// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bidi implements the Bidi Rule for labels of internationalized
// domain names as defined in RFC 5893, section 2.
package bidi

import (
	"github.com/idnxcode/xcode"
	"github.com/idnxcode/xcode/internal/labels"
)

// Class is the Bidi class of a code point, restricted to the classes the
// Bidi Rule distinguishes.
type Class uint8

const (
	// Other covers B, S, WS and the explicit formatting classes, none of
	// which is allowed in a label.
	Other Class = iota
	L           // Left-to-Right
	R           // Right-to-Left
	AL          // Arabic Letter
	AN          // Arabic Number
	EN          // European Number
	ES          // European Number Separator
	CS          // Common Number Separator
	ET          // European Number Terminator
	ON          // Other Neutrals
	BN          // Boundary Neutral
	NSM         // Nonspacing Mark
)

var classNames = [...]string{
	Other: "Other",
	L:     "L",
	R:     "R",
	AL:    "AL",
	AN:    "AN",
	EN:    "EN",
	ES:    "ES",
	CS:    "CS",
	ET:    "ET",
	ON:    "ON",
	BN:    "BN",
	NSM:   "NSM",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "Other"
}

type classSet uint16

func setOf(cs ...Class) classSet {
	var s classSet
	for _, c := range cs {
		s |= 1 << c
	}
	return s
}

func (s classSet) has(c Class) bool {
	return s&(1<<c) != 0
}

var (
	rtlAllowed = setOf(R, AL, AN, EN, ES, CS, ET, ON, BN, NSM) // rule 2
	rtlEnd     = setOf(R, AL, EN, AN)                          // rule 3
	ltrAllowed = setOf(L, EN, ES, CS, ET, ON, BN, NSM)         // rule 5
	ltrEnd     = setOf(L, EN)                                  // rule 6
	rtlDomain  = setOf(R, AL, AN)
)

// A Checker applies the Bidi Rule using a class lookup function. It is safe
// for concurrent use if the lookup function is.
type Checker struct {
	lookup func(rune) Class
}

// New returns a Checker that classifies code points with lookup.
func New(lookup func(rune) Class) *Checker {
	return &Checker{lookup: lookup}
}

// Default returns a Checker using LookupClass.
func Default() *Checker {
	return New(LookupClass)
}

// AssertCompliance checks a single label against rules 1 through 6.
func (c *Checker) AssertCompliance(label []rune) error {
	if len(label) == 0 {
		return xcode.Empty
	}
	switch c.lookup(label[0]) {
	case L:
		return c.checkLTR(label)
	case R, AL:
		return c.checkRTL(label)
	}
	return xcode.Rule1Violation
}

func (c *Checker) checkRTL(label []rune) error {
	var sawAN, sawEN bool
	for _, r := range label {
		cls := c.lookup(r)
		if !rtlAllowed.has(cls) {
			return xcode.Rule2Violation
		}
		switch cls {
		case AN:
			sawAN = true
		case EN:
			sawEN = true
		}
		if sawAN && sawEN {
			return xcode.Rule4Violation
		}
	}
	if !rtlEnd.has(c.last(label)) {
		return xcode.Rule3Violation
	}
	return nil
}

func (c *Checker) checkLTR(label []rune) error {
	for _, r := range label {
		if !ltrAllowed.has(c.lookup(r)) {
			return xcode.Rule5Violation
		}
	}
	if !ltrEnd.has(c.last(label)) {
		return xcode.Rule6Violation
	}
	return nil
}

// last returns the class of the last code point that is not a NSM.
func (c *Checker) last(label []rune) Class {
	for i := len(label) - 1; i >= 0; i-- {
		if cls := c.lookup(label[i]); cls != NSM {
			return cls
		}
	}
	return NSM
}

// IsBidiDomain reports whether domain contains any code point of class R,
// AL or AN.
func (c *Checker) IsBidiDomain(domain []rune) bool {
	for _, r := range domain {
		if rtlDomain.has(c.lookup(r)) {
			return true
		}
	}
	return false
}

// CheckDomain applies the Bidi Rule to every label of domain if domain is a
// Bidi domain name, and does nothing otherwise.
func (c *Checker) CheckDomain(domain []rune) error {
	if !c.IsBidiDomain(domain) {
		return nil
	}
	for _, l := range labels.Split(domain) {
		if err := c.AssertCompliance(l); err != nil {
			return err
		}
	}
	return nil
}
