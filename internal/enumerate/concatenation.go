package enumerate

import (
	"github.com/sirupsen/logrus"

	"github.com/whit3rabbit/relang/internal/arith"
	"github.com/whit3rabbit/relang/internal/syntax"
)

// Concatenation iterates a Concat node over the lattice of repetition
// compositions. For the current total it keeps a flattened list of
// child Alterations, one per repetition instance; maxs and added are
// the parallel arrays of the composition enumerator, where
// added[i] = repetitions of child i beyond its minimum.
type Concatenation struct {
	src *syntax.Regexpr
	env bindings

	alters []*Alteration

	minLength  int
	maxs       []int
	added      []int
	overflowed bool
}

func newConcatenation(env bindings, re *syntax.Regexpr) *Concatenation {
	if re.Kind != syntax.KindConcat {
		panic("enumerate: Concatenation iterator requires a Concat node")
	}
	c := &Concatenation{
		src:   re,
		env:   env,
		maxs:  make([]int, len(re.Subs)),
		added: make([]int, len(re.Subs)),
	}
	for _, sub := range re.Subs {
		c.minLength += sub.MinCount
	}
	c.Reset()
	return c
}

// Reset repositions at the shortest composition, word zero.
func (c *Concatenation) Reset() {
	c.overflowed = false
	c.setLength(c.minLength)
}

// computeMaxs fills maxs for a target total: each child may add up to
// its quantifier headroom, and an unbounded child up to the whole
// surplus over the minimum total.
func (c *Concatenation) computeMaxs(length int) {
	globalMax := length - c.minLength
	for i, sub := range c.src.Subs {
		max := sub.MaxCount
		if max == arith.Unlimited {
			max = globalMax
		} else {
			max -= sub.MinCount
		}
		c.maxs[i] = max
	}
}

// setLength repositions at the first composition whose total is
// length. It reports false when no composition reaches that total.
func (c *Concatenation) setLength(length int) bool {
	c.computeMaxs(length)
	if !fillSeq(length-c.minLength, c.maxs, c.added) {
		return false
	}
	c.initAlters()
	return len(c.alters) == length
}

// initAlters rebuilds the flattened child list for the current
// composition and publishes each child's last instance as the capture
// binding backreferences read through.
func (c *Concatenation) initAlters() {
	c.alters = c.alters[:0]
	for i, sub := range c.src.Subs {
		count := sub.MinCount + c.added[i]
		for j := 0; j < count; j++ {
			c.alters = append(c.alters, newAlteration(c.env, sub))
		}
		if count > 0 {
			c.env[sub] = c.alters[len(c.alters)-1]
		} else {
			delete(c.env, sub)
		}
	}
}

// seqCapacity is the word count of the current composition: the
// product over children of full_length^repetitions, saturating.
func (c *Concatenation) seqCapacity() int64 {
	ret := int64(1)
	for i, sub := range c.src.Subs {
		fl := sub.FullLength
		count := sub.MinCount + c.added[i]
		if fl == arith.Unlimited && count != 0 {
			return arith.Unlimited
		}
		if fl != 0 {
			opt := int64(1)
			for k := 0; k < count; k++ {
				opt = arith.Mul(opt, fl)
			}
			ret = arith.Mul(ret, opt)
		}
	}
	return ret
}

// Value concatenates the children's current words into dst and
// returns the byte count, truncating at len(dst).
func (c *Concatenation) Value(dst []byte) int {
	written := 0
	for _, a := range c.alters {
		written += a.Value(dst[written:])
	}
	return written
}

// Inc advances to the next word: odometer over the children rightmost
// first, then the next composition of the same total, then the next
// total. It returns the rightmost child (the natural target for the
// in-place fast path on the following step), or nil when the
// composition lattice is exhausted; the iterator is then flagged
// overflowed until Reset.
func (c *Concatenation) Inc() *Alteration {
	for i := len(c.alters) - 1; i >= 0; i-- {
		if c.alters[i].Inc() != nil {
			return c.alters[len(c.alters)-1]
		}
	}
	// Every child wrapped: rearrange the current total.
	if incSeq(c.maxs, c.added) {
		c.initAlters()
		return c.alters[len(c.alters)-1]
	}
	if c.setLength(len(c.alters) + 1) {
		return c.alters[len(c.alters)-1]
	}
	c.overflowed = true
	return nil
}

// SetOffset repositions so the next Value call produces the word at
// the given index of this sequence's language. It walks totals upward,
// consuming whole compositions while their capacity fits, then
// distributes the remainder across the children right to left in
// mixed radix.
func (c *Concatenation) SetOffset(offset int64) {
	fl := c.src.FullLength
	if fl == 0 {
		return
	}
	if fl != arith.Unlimited {
		offset %= fl
	}
	logrus.Debugf("enumerate: concatenation offset %d of %s", offset, syntax.LengthString(fl))

	for length := c.minLength; ; length++ {
		c.computeMaxs(length)
		if !fillSeq(length-c.minLength, c.maxs, c.added) {
			logrus.Debugf("enumerate: no composition with total %d", length)
			return
		}

		var capacity int64
		for {
			capacity = c.seqCapacity()
			if capacity == arith.Unlimited || capacity > offset {
				break
			}
			offset -= capacity
			capacity = 0
			if !incSeq(c.maxs, c.added) {
				break
			}
		}
		if capacity == arith.Unlimited || capacity > offset {
			break
		}
	}

	c.initAlters()

	for i := len(c.alters) - 1; i >= 0; i-- {
		node := c.alters[i]
		if node.src.FullLength == 0 {
			continue
		}
		if node.src.FullLength == arith.Unlimited {
			node.SetOffset(offset)
			break
		}
		node.SetOffset(offset)
		offset /= node.src.FullLength
	}
}
