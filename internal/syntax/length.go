package syntax

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/whit3rabbit/relang/internal/arith"
)

// linkBackrefs resolves every `\1`..`\9` to the capturing group with
// the same ordinal. An unresolved reference rejects the pattern.
func linkBackrefs(root *Regexpr) error {
	var groups [10]*Regexpr
	findGroups(root, &groups)
	return resolveBackrefs(root, &groups)
}

func findGroups(p *Regexpr, groups *[10]*Regexpr) {
	if g := p.NGroup; 1 <= g && g <= 9 {
		if groups[g] != nil && groups[g] != p {
			logrus.Warnf("syntax: duplicate group ordinal #%d, last declaration wins", g)
		}
		groups[g] = p
	}
	for _, sub := range p.Subs {
		findGroups(sub, groups)
	}
}

func resolveBackrefs(p *Regexpr, groups *[10]*Regexpr) error {
	if p.Kind == KindBackref {
		target := groups[p.Ref.Num]
		if target == nil {
			return fmt.Errorf("%w: undefined backreference \\%d", ErrParse, p.Ref.Num)
		}
		p.Ref.Expr = target
	}
	for _, sub := range p.Subs {
		if err := resolveBackrefs(sub, groups); err != nil {
			return err
		}
	}
	return nil
}

// calcFullLength fills FullLength post-order.
//
// A backreference counts as zero: it adds no choices of its own. A
// Concat multiplies, over its children, the sum of child^k for every
// admissible repetition count k; an Alter sums its alternatives. All
// arithmetic saturates to arith.Unlimited.
func calcFullLength(p *Regexpr) {
	switch p.Kind {
	case KindBackref:
		p.FullLength = 0
	case KindCharset:
		p.FullLength = int64(len(p.Set))
	case KindWords:
		p.FullLength = int64(len(p.Words))
	case KindConcat:
		for _, sub := range p.Subs {
			calcFullLength(sub)
		}
		p.FullLength = 1
		for _, sub := range p.Subs {
			switch {
			case sub.FullLength == arith.Unlimited && sub.MaxCount != 0:
				p.FullLength = arith.Unlimited
			case sub.FullLength != 0 && sub.MaxCount == arith.Unlimited:
				p.FullLength = arith.Unlimited
			case sub.FullLength != 0:
				var allCounts int64
				for j := sub.MinCount; j <= sub.MaxCount; j++ {
					fixed := int64(1)
					for k := 0; k < j; k++ {
						fixed = arith.Mul(fixed, sub.FullLength)
					}
					allCounts = arith.Add(allCounts, fixed)
				}
				p.FullLength = arith.Mul(p.FullLength, allCounts)
			}
			if p.FullLength == arith.Unlimited {
				break
			}
		}
	case KindAlter:
		for _, sub := range p.Subs {
			calcFullLength(sub)
		}
		p.FullLength = 0
		for _, sub := range p.Subs {
			p.FullLength = arith.Add(p.FullLength, sub.FullLength)
			if p.FullLength == arith.Unlimited {
				break
			}
		}
	}
}
