// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import "unicode"

type joiningType uint8

const (
	joiningU joiningType = iota // non-joining
	joiningL
	joiningR
	joiningD
	joiningT
)

// Joining types from ArabicShaping.txt for Arabic, Syriac, NKo, Mongolian,
// Phags-pa and Manichaean. Join-causing tatweels are listed as dual joining.
var (
	dualJoining = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x0620, Hi: 0x0620, Stride: 1},
			{Lo: 0x0626, Hi: 0x0628, Stride: 2},
			{Lo: 0x062A, Hi: 0x062E, Stride: 1},
			{Lo: 0x0633, Hi: 0x0647, Stride: 1},
			{Lo: 0x0649, Hi: 0x064A, Stride: 1},
			{Lo: 0x066E, Hi: 0x066F, Stride: 1},
			{Lo: 0x0678, Hi: 0x0687, Stride: 1},
			{Lo: 0x069A, Hi: 0x06BF, Stride: 1},
			{Lo: 0x06C1, Hi: 0x06C2, Stride: 1},
			{Lo: 0x06CC, Hi: 0x06CE, Stride: 2},
			{Lo: 0x06D0, Hi: 0x06D1, Stride: 1},
			{Lo: 0x06FA, Hi: 0x06FC, Stride: 1},
			{Lo: 0x06FF, Hi: 0x06FF, Stride: 1},
			{Lo: 0x0712, Hi: 0x0714, Stride: 1},
			{Lo: 0x071A, Hi: 0x071D, Stride: 1},
			{Lo: 0x071F, Hi: 0x0727, Stride: 1},
			{Lo: 0x0729, Hi: 0x072B, Stride: 2},
			{Lo: 0x072D, Hi: 0x072E, Stride: 1},
			{Lo: 0x0750, Hi: 0x0758, Stride: 1},
			{Lo: 0x075C, Hi: 0x076A, Stride: 1},
			{Lo: 0x076D, Hi: 0x0770, Stride: 1},
			{Lo: 0x0772, Hi: 0x0772, Stride: 1},
			{Lo: 0x0775, Hi: 0x0777, Stride: 1},
			{Lo: 0x077A, Hi: 0x077F, Stride: 1},
			{Lo: 0x07CA, Hi: 0x07EA, Stride: 1},
			{Lo: 0x07FA, Hi: 0x07FA, Stride: 1},
			{Lo: 0x1807, Hi: 0x1807, Stride: 1},
			{Lo: 0x1820, Hi: 0x1878, Stride: 1},
			{Lo: 0x1887, Hi: 0x18A8, Stride: 1},
			{Lo: 0x18AA, Hi: 0x18AA, Stride: 1},
			{Lo: 0xA840, Hi: 0xA871, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10AC0, Hi: 0x10AC4, Stride: 1},
			{Lo: 0x10AD3, Hi: 0x10AD6, Stride: 1},
			{Lo: 0x10AD8, Hi: 0x10ADC, Stride: 1},
			{Lo: 0x10ADE, Hi: 0x10AE0, Stride: 1},
			{Lo: 0x10AEB, Hi: 0x10AEE, Stride: 1},
		},
	}
	rightJoining = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x0622, Hi: 0x0625, Stride: 1},
			{Lo: 0x0627, Hi: 0x0629, Stride: 2},
			{Lo: 0x062F, Hi: 0x0632, Stride: 1},
			{Lo: 0x0648, Hi: 0x0648, Stride: 1},
			{Lo: 0x0671, Hi: 0x0673, Stride: 1},
			{Lo: 0x0675, Hi: 0x0677, Stride: 1},
			{Lo: 0x0688, Hi: 0x0699, Stride: 1},
			{Lo: 0x06C0, Hi: 0x06C0, Stride: 1},
			{Lo: 0x06C3, Hi: 0x06CB, Stride: 1},
			{Lo: 0x06CD, Hi: 0x06CF, Stride: 2},
			{Lo: 0x06D2, Hi: 0x06D3, Stride: 1},
			{Lo: 0x06D5, Hi: 0x06D5, Stride: 1},
			{Lo: 0x06EE, Hi: 0x06EF, Stride: 1},
			{Lo: 0x0710, Hi: 0x0710, Stride: 1},
			{Lo: 0x0715, Hi: 0x0719, Stride: 1},
			{Lo: 0x071E, Hi: 0x0728, Stride: 10},
			{Lo: 0x072A, Hi: 0x072C, Stride: 2},
			{Lo: 0x072F, Hi: 0x072F, Stride: 1},
			{Lo: 0x0759, Hi: 0x075B, Stride: 1},
			{Lo: 0x076B, Hi: 0x076C, Stride: 1},
			{Lo: 0x0771, Hi: 0x0771, Stride: 1},
			{Lo: 0x0773, Hi: 0x0774, Stride: 1},
			{Lo: 0x0778, Hi: 0x0779, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10AC5, Hi: 0x10AC7, Stride: 2},
			{Lo: 0x10AC9, Hi: 0x10ACA, Stride: 1},
			{Lo: 0x10ACE, Hi: 0x10AD2, Stride: 1},
			{Lo: 0x10ADD, Hi: 0x10AE1, Stride: 4},
			{Lo: 0x10AE4, Hi: 0x10AEF, Stride: 11},
		},
	}
	leftJoining = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0xA872, Hi: 0xA872, Stride: 1},
		},
		R32: []unicode.Range32{
			{Lo: 0x10ACD, Hi: 0x10AD7, Stride: 10},
		},
	}
)

// joiningTypeOf returns the joining type of r. Marks and format characters
// other than the join controls are transparent.
func joiningTypeOf(r rune) joiningType {
	switch {
	case r == 0x200C || r == 0x200D:
		return joiningU
	case unicode.Is(dualJoining, r):
		return joiningD
	case unicode.Is(rightJoining, r):
		return joiningR
	case unicode.Is(leftJoining, r):
		return joiningL
	case unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf):
		return joiningT
	}
	return joiningU
}
