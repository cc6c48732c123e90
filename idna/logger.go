// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	nop      = zap.NewNop()
	loggerMu sync.RWMutex
)

// Logger returns the logger of the package. It is a no-op logger unless
// SetLogger was called.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if logger == nil {
		return nop
	}
	return logger
}

// SetLogger sets the logger used to report masked decoding failures. A nil
// l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}
