// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package norm

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Transformer returns a transform.Transformer that converts UTF-8 text to
// NFKC. It holds back all input until atEOF, as composition may join code
// points across any boundary a table cannot rule out. It suits short texts
// such as domain names; invalid UTF-8 is replaced by U+FFFD.
func (n *Normalizer) Transformer() transform.Transformer {
	return nfkcTransformer{n: n}
}

type nfkcTransformer struct {
	transform.NopResetter
	n *Normalizer
}

// Transform implements the transform.Transformer interface.
func (t nfkcTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if !atEOF {
		return 0, 0, transform.ErrShortSrc
	}
	if len(src) == 0 {
		return 0, 0, nil
	}
	out, err := t.n.NFKC([]rune(string(src)))
	if err != nil {
		return 0, 0, err
	}
	size := 0
	for _, r := range out {
		size += utf8.RuneLen(r)
	}
	if len(dst) < size {
		return 0, 0, transform.ErrShortDst
	}
	for _, r := range out {
		nDst += utf8.EncodeRune(dst[nDst:], r)
	}
	return nDst, len(src), nil
}
