// Package api provides the public surface for using the word generator
// as a library.
//
// A Generator enumerates, in a fixed total order, every string of the
// regular language denoted by a pattern. It supports forward
// iteration, a length query, random access by index and unit-step
// slicing.
//
// Basic usage example:
//
//	g, err := api.New(`[ab]{2}`, api.Options{})
//	if err != nil {
//	    log.Fatalf("Failed to compile pattern: %v", err)
//	}
//	for w, ok := g.Next(); ok; w, ok = g.Next() {
//	    fmt.Println(w) // aa ab ba bb
//	}
package api

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/whit3rabbit/relang/internal/arith"
	"github.com/whit3rabbit/relang/internal/enumerate"
	"github.com/whit3rabbit/relang/internal/syntax"
)

// Unlimited is returned by Len and FullLength when the language is
// infinite (or its cardinality overflows a signed 64-bit count).
const Unlimited int64 = arith.Unlimited

var (
	// ErrUnseekable rejects random access into a pattern whose offset
	// arithmetic is undefined: one carrying a quantified
	// backreference.
	ErrUnseekable = errors.New("pattern with quantified backreference does not support random access")
	// ErrRange rejects an index outside the generator's window.
	ErrRange = errors.New("index out of range")
)

// Options configures a new Generator.
type Options struct {
	// Offset skips this many words from the beginning of the
	// language.
	Offset int64

	// Count limits how many words the generator yields; zero or
	// negative means no limit.
	Count int64

	// BufferSize is the initial word buffer in bytes, grown by
	// doubling as needed. Zero or negative means 1024.
	BufferSize int

	// Fs is the filesystem `(?F path)` dictionaries are read from;
	// nil means the host filesystem.
	Fs afero.Fs
}

// Generator enumerates the words of one compiled pattern. It is not
// safe for concurrent use; independent Generators over the same
// pattern are.
type Generator struct {
	pattern string
	fs      afero.Fs

	ast  *syntax.Regexpr
	root *enumerate.Alteration

	buf []byte

	offset int64
	count  int64 // Unlimited means no limit
	pos    int64 // words yielded so far

	fast *enumerate.Alteration
	done bool
}

// New compiles pattern and returns a Generator positioned at
// Options.Offset. A malformed pattern, an unreadable word file, or a
// nonzero offset into a pattern with a quantified backreference is
// rejected.
func New(pattern string, opts Options) (*Generator, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	parser := &syntax.Parser{FS: fs}
	ast, err := parser.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	count := opts.Count
	if count <= 0 {
		count = Unlimited
	}
	bufsize := opts.BufferSize
	if bufsize <= 0 {
		bufsize = 1024
	}

	g := &Generator{
		pattern: pattern,
		fs:      fs,
		ast:     ast,
		buf:     make([]byte, bufsize),
		offset:  offset,
		count:   count,
	}
	if err := g.seek(); err != nil {
		return nil, err
	}
	return g, nil
}

// seek builds a fresh iterator tree and applies the configured offset.
func (g *Generator) seek() error {
	if g.offset > 0 && syntax.HasQuantifiedBackref(g.ast) {
		return ErrUnseekable
	}
	g.root = enumerate.New(g.ast)
	if g.offset > 0 {
		g.root.SetOffset(g.offset)
	}
	g.pos = 0
	g.fast = nil
	g.done = false
	return nil
}

// Pattern returns the source pattern.
func (g *Generator) Pattern() string { return g.pattern }

// FullLength returns the cardinality of the whole language, ignoring
// the offset/count window; Unlimited when infinite.
func (g *Generator) FullLength() int64 { return g.ast.FullLength }

// Len returns how many words the generator yields in total:
// min(FullLength − Offset, Count), or Unlimited.
func (g *Generator) Len() int64 {
	fl := g.ast.FullLength
	if fl == Unlimited {
		return g.count
	}
	rest := fl - g.offset
	if rest < 0 {
		rest = 0
	}
	if g.count != Unlimited && g.count < rest {
		return g.count
	}
	return rest
}

// Next returns the next word of the language, and false once the
// window is exhausted.
func (g *Generator) Next() (string, bool) {
	if g.done {
		return "", false
	}
	if n := g.Len(); n != Unlimited && g.pos >= n {
		g.done = true
		return "", false
	}

	word := g.value()

	// Prefer the in-place fast path; fall back to a full advance and
	// remember the returned leaf for the next round.
	if g.fast != nil && !g.fast.IncInPlace() {
		g.fast = nil
	}
	if g.fast == nil {
		g.fast = g.root.Inc()
		if g.fast == nil {
			// Wrapped around: the language is exhausted after this
			// word.
			g.done = true
		}
	}
	g.pos++
	return word, true
}

// value materialises the current word, growing the buffer until it
// fits.
func (g *Generator) value() string {
	n := g.root.Value(g.buf)
	for n == len(g.buf) {
		g.buf = make([]byte, 2*len(g.buf))
		n = g.root.Value(g.buf)
	}
	return string(g.buf[:n])
}

// At returns the i-th word of the generator's window without
// disturbing the iteration sequence: it repositions, reads, and seeks
// back to the current position.
func (g *Generator) At(i int64) (string, error) {
	if syntax.HasQuantifiedBackref(g.ast) {
		return "", ErrUnseekable
	}
	if i < 0 {
		return "", fmt.Errorf("%w: %d", ErrRange, i)
	}
	if n := g.Len(); n != Unlimited && i >= n {
		return "", fmt.Errorf("%w: %d of %d", ErrRange, i, n)
	}

	g.root.SetOffset(g.offset + i)
	word := g.value()

	g.root.SetOffset(g.offset + g.pos)
	g.fast = nil
	return word, nil
}

// Slice returns a new Generator over the window [a, b) of this one,
// sharing the compiled pattern. A negative b means "to the end". Only
// unit steps are supported.
func (g *Generator) Slice(a, b int64) (*Generator, error) {
	if syntax.HasQuantifiedBackref(g.ast) {
		return nil, ErrUnseekable
	}
	if a < 0 {
		return nil, fmt.Errorf("%w: %d", ErrRange, a)
	}
	count := Unlimited
	if b >= 0 {
		if b < a {
			return nil, fmt.Errorf("%w: [%d:%d]", ErrRange, a, b)
		}
		count = b - a
	}
	if n := g.Len(); n != Unlimited {
		if a > n {
			a = n
		}
		if count == Unlimited || count > n-a {
			count = n - a
		}
	}

	ng := &Generator{
		pattern: g.pattern,
		fs:      g.fs,
		ast:     g.ast,
		buf:     make([]byte, len(g.buf)),
		offset:  g.offset + a,
		count:   count,
	}
	if err := ng.seek(); err != nil {
		return nil, err
	}
	return ng, nil
}

// FprintTree writes the parsed pattern tree to w.
func (g *Generator) FprintTree(w io.Writer) {
	syntax.Fprint(w, g.ast)
}

// FprintState writes the current iterator state to w, as dumped by the
// driver's debug mode before each word.
func (g *Generator) FprintState(w io.Writer) {
	g.root.Fprint(w)
}

// Reset rewinds the generator to the beginning of its window.
func (g *Generator) Reset() {
	g.root.Reset()
	if g.offset > 0 {
		g.root.SetOffset(g.offset)
	}
	g.pos = 0
	g.fast = nil
	g.done = false
}
