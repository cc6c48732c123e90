// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert converts a domain name with several engines at once, for
// instance to show its Punycode and RACE forms side by side.
//
// A target that fails is left out of the result and logged; it never fails
// the whole conversion.
package convert

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/idnxcode/xcode/ace"
	"github.com/idnxcode/xcode/idna"
)

// An Engine converts domain names. *idna.Engine implements it.
type Engine interface {
	ToASCII(s string) (string, error)
	ToUnicode(s string) (string, error)
}

// An Option configures a Converter.
type Option func(*Converter)

// WithLimit bounds the number of targets converted concurrently. A limit of
// zero or less means no limit.
func WithLimit(n int) Option {
	return func(c *Converter) { c.limit = n }
}

// WithLogger sets the logger for failed targets. The default is
// idna.Logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// A Converter holds named engines. It is safe for concurrent use.
type Converter struct {
	names   []string
	engines map[string]Engine
	limit   int
	log     *zap.Logger
}

// New returns a Converter for engines, keyed by target name.
func New(engines map[string]Engine, opts ...Option) *Converter {
	c := &Converter{engines: make(map[string]Engine, len(engines))}
	for name, e := range engines {
		c.names = append(c.names, name)
		c.engines[name] = e
	}
	sort.Strings(c.names)
	for _, f := range opts {
		f(c)
	}
	return c
}

// NewDefault returns a Converter with a Punycode and a RACE target, both
// using protocol and reporting errors.
func NewDefault(protocol idna.Protocol, opts ...Option) (*Converter, error) {
	engines := map[string]Engine{}
	for _, codec := range []*ace.Codec{ace.NewPunycode(), ace.NewRace()} {
		e, err := idna.New(codec, protocol, idna.ReportErrors)
		if err != nil {
			return nil, err
		}
		engines[codec.Name()] = e
	}
	return New(engines, opts...), nil
}

// Targets returns the sorted target names.
func (c *Converter) Targets() []string {
	return append([]string(nil), c.names...)
}

// ToASCII converts domain with every target. The result maps the name of
// each target that succeeded to its output. The error is non-nil only if
// ctx is done.
func (c *Converter) ToASCII(ctx context.Context, domain string) (map[string]string, error) {
	return c.fanOut(ctx, "to-ascii", domain, Engine.ToASCII)
}

// ToUnicode is like ToASCII for the conversion to Unicode.
func (c *Converter) ToUnicode(ctx context.Context, domain string) (map[string]string, error) {
	return c.fanOut(ctx, "to-unicode", domain, Engine.ToUnicode)
}

func (c *Converter) logger() *zap.Logger {
	if c.log != nil {
		return c.log
	}
	return idna.Logger()
}

func (c *Converter) fanOut(ctx context.Context, op, domain string, f func(Engine, string) (string, error)) (map[string]string, error) {
	var (
		mu      sync.Mutex
		results = make(map[string]string, len(c.names))
		log     = c.logger()
	)
	g, ctx := errgroup.WithContext(ctx)
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for _, name := range c.names {
		e := c.engines[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := f(e, domain)
			if err != nil {
				log.Debug("convert: target failed",
					zap.String("target", name),
					zap.String("op", op),
					zap.String("domain", domain),
					zap.Error(err))
				return nil
			}
			mu.Lock()
			results[name] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
