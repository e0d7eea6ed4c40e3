package enumerate

import (
	"github.com/sirupsen/logrus"

	"github.com/whit3rabbit/relang/internal/arith"
	"github.com/whit3rabbit/relang/internal/syntax"
)

// Alteration iterates the choice set of a non-Concat expression node:
// one byte of a charset, one word of a dictionary, one alternative of
// an Alter, or (for a backreference) whatever its target currently
// holds. ptr is the current choice index.
type Alteration struct {
	src *syntax.Regexpr
	env bindings

	// concats holds one child iterator per alternative when src is an
	// Alter.
	concats []*Concatenation

	ptr int

	// lastDst and lastLength remember where the previous Value call
	// wrote, for the in-place fast path.
	lastDst    []byte
	lastLength int
}

// New builds the iterator tree for a parsed pattern, positioned at
// word zero. Each call owns a fresh set of capture bindings, so trees
// built from the same expression never share mutable state.
func New(re *syntax.Regexpr) *Alteration {
	return newAlteration(make(bindings), re)
}

func newAlteration(env bindings, re *syntax.Regexpr) *Alteration {
	if re.Kind == syntax.KindConcat {
		panic("enumerate: Concat node requires a Concatenation iterator")
	}
	a := &Alteration{src: re, env: env}
	if re.Kind == syntax.KindAlter {
		for _, sub := range re.Subs {
			if sub.Kind != syntax.KindConcat {
				logrus.Warnf("enumerate: alternative is %s, Concat expected", sub.Kind)
				continue
			}
			a.concats = append(a.concats, newConcatenation(env, sub))
		}
	}
	a.Reset()
	return a
}

// Source returns the expression node this iterator enumerates.
func (a *Alteration) Source() *syntax.Regexpr { return a.src }

// Reset repositions at word zero.
func (a *Alteration) Reset() {
	a.ptr = 0
	if a.src.Kind == syntax.KindAlter {
		for _, c := range a.concats {
			c.Reset()
		}
	}
}

// Value writes the current word into dst, truncating at len(dst), and
// returns the byte count. A caller that receives exactly len(dst)
// should grow the buffer and retry.
func (a *Alteration) Value(dst []byte) int {
	length := 0
	a.lastDst = dst
	switch a.src.Kind {
	case syntax.KindBackref:
		if target := a.env[a.src.Ref.Expr]; target != nil {
			length = target.Value(dst)
		} else {
			logrus.Warnf("enumerate: dangling backreference \\%d", a.src.Ref.Num)
		}
	case syntax.KindCharset:
		if len(a.src.Set) == 0 {
			break
		}
		if len(dst) > 0 {
			dst[0] = a.src.Set[a.ptr]
			length = 1
		} else {
			logrus.Warnf("enumerate: no space left for charset byte")
		}
	case syntax.KindWords:
		if len(a.src.Words) > 0 {
			length = copy(dst, a.src.Words[a.ptr])
		}
	case syntax.KindAlter:
		if len(a.concats) > 0 {
			length = a.concats[a.ptr].Value(dst)
		}
	}
	a.lastLength = length
	return length
}

// Inc advances to the next word. It returns the deepest Alteration
// whose own ptr changed (a candidate for IncInPlace on the following
// step), or nil when the iterator wrapped back to its first word and
// the caller must carry.
func (a *Alteration) Inc() *Alteration {
	var incremented *Alteration

	a.ptr++

	switch a.src.Kind {
	case syntax.KindBackref:
		// Driven entirely by its target; nothing of its own to
		// advance.
	case syntax.KindCharset:
		if a.ptr >= len(a.src.Set) {
			a.ptr = 0
		} else {
			incremented = a
		}
	case syntax.KindWords:
		if a.ptr >= len(a.src.Words) {
			a.ptr = 0
		} else {
			incremented = a
		}
	case syntax.KindAlter:
		// Move right to the next alternative that still has words.
		for a.ptr < len(a.concats) {
			if !a.concats[a.ptr].overflowed {
				return a
			}
			a.ptr++
		}
		// A full round is complete: rotate every live alternative one
		// step; the first that advances becomes current.
		for i, c := range a.concats {
			if c.overflowed {
				continue
			}
			if inced := c.Inc(); inced != nil {
				if incremented == nil {
					a.ptr = i
					incremented = inced
				}
			}
		}
		if incremented == nil {
			a.ptr = 0
			for _, c := range a.concats {
				c.Reset()
			}
		}
	}
	return incremented
}

// IncInPlace advances to the next word by rewriting only the bytes of
// the previous Value call, when the advance is confined to this leaf.
// It reports false when a structural change is needed and the caller
// must fall back to a full Inc.
func (a *Alteration) IncInPlace() bool {
	if len(a.lastDst) == 0 {
		return false
	}
	switch a.src.Kind {
	case syntax.KindBackref:
		target := a.env[a.src.Ref.Expr]
		if target == nil {
			return false
		}
		if !target.IncInPlace() {
			return false
		}
		n := a.lastLength
		if n > len(target.lastDst) {
			n = len(target.lastDst)
		}
		copy(a.lastDst, target.lastDst[:n])
		return true
	case syntax.KindCharset:
		if a.ptr+1 >= len(a.src.Set) {
			return false
		}
		a.ptr++
		a.lastDst[0] = a.src.Set[a.ptr]
		return true
	case syntax.KindWords:
		if a.ptr+1 >= len(a.src.Words) {
			return false
		}
		if len(a.src.Words[a.ptr+1]) != a.lastLength {
			return false
		}
		a.ptr++
		copy(a.lastDst, a.src.Words[a.ptr])
		return true
	}
	return false
}

// SetOffset repositions so the next Value call produces the word at
// the given index of this node's language (modulo its cardinality when
// finite).
func (a *Alteration) SetOffset(offset int64) {
	fl := a.src.FullLength
	if fl == 0 {
		logrus.Debugf("enumerate: offset %d requested for empty node", offset)
		return
	}
	if fl != arith.Unlimited {
		offset %= fl
	}

	switch a.src.Kind {
	case syntax.KindBackref:
		// Unreachable: a backreference has cardinality zero.
	case syntax.KindCharset, syntax.KindWords:
		a.ptr = int(offset)
	case syntax.KindAlter:
		a.setOffsetAlter(offset)
	}
}

// setOffsetAlter distributes an offset across alternatives the same
// way enumeration interleaves them: words are consumed round-robin
// from every alternative that still has some, so each round skips
// equally from all live alternatives until the smallest runs dry.
func (a *Alteration) setOffsetAlter(offset int64) {
	offsets := make([]int64, len(a.concats))

	// Drop stale state from earlier repositioning: offset 0 maps to
	// the first alternative, and the skip loop below re-marks the
	// alternatives this offset runs dry.
	a.ptr = 0
	for _, c := range a.concats {
		c.overflowed = false
	}

	for offset > 0 {
		var minRest int64 = arith.Unlimited
		var skipable int64
		minI := -1
		for i, c := range a.concats {
			rest := c.src.FullLength
			if rest != arith.Unlimited {
				rest -= offsets[i]
			}
			if rest == 0 {
				continue
			}
			skipable++
			if rest != arith.Unlimited && (minI == -1 || minRest == arith.Unlimited || rest < minRest) {
				minI = i
				minRest = rest
			} else if minI == -1 {
				minI = i
			}
		}
		if skipable == 0 {
			logrus.Debugf("enumerate: nothing to skip, offset %d remains", offset)
			break
		}

		toSkip := arith.Mul(skipable, minRest)
		if toSkip == arith.Unlimited || toSkip > offset {
			toSkip = offset
		}
		skipEach := toSkip / skipable
		skipRemainder := toSkip % skipable

		var nSkip int64
		for i, c := range a.concats {
			rest := c.src.FullLength
			if rest != arith.Unlimited {
				rest -= offsets[i]
			}
			if rest == 0 {
				continue
			}
			offsets[i] += skipEach
			offset -= skipEach
			if rest == skipEach {
				c.overflowed = true
			}
			if nSkip == skipRemainder {
				a.ptr = i
				offset -= skipRemainder
			}
			nSkip++
		}
	}

	for i, c := range a.concats {
		c.SetOffset(offsets[i])
	}
	if a.concats[a.ptr].overflowed {
		logrus.Debugf("enumerate: current alternative exhausted after skip, stepping past")
		a.Inc()
	}
}
