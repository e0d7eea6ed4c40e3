// Package syntax parses generator patterns into an immutable expression
// tree and computes the cardinality of the language each node denotes.
//
// The tree is a five-kind tagged sum. The root is always an Alter whose
// children are Concats; a Concat never contains another Concat directly
// (nested sequences are flattened into the enclosing Alter→Concat
// structure at parse time). After Parse returns, the tree is never
// mutated again, so any number of iterators may walk it concurrently.
package syntax

// Kind discriminates the variants of a Regexpr node.
type Kind int

const (
	// KindBackref is a reference to an earlier capturing group. It
	// contributes no choices of its own; its value is whatever the
	// target group last produced.
	KindBackref Kind = iota
	// KindCharset is an ordered set of single bytes.
	KindCharset
	// KindWords is an ordered list of words loaded from a file.
	KindWords
	// KindConcat is an ordered sequence of sub-expressions.
	KindConcat
	// KindAlter is an ordered choice between Concat alternatives.
	KindAlter
)

func (k Kind) String() string {
	switch k {
	case KindBackref:
		return "Backref"
	case KindCharset:
		return "Charset"
	case KindWords:
		return "Words"
	case KindConcat:
		return "Concat"
	case KindAlter:
		return "Alter"
	}
	return "Unknown"
}

// Backref holds the payload of a KindBackref node.
type Backref struct {
	// Num is the referenced group ordinal, 1..9.
	Num int
	// Expr is the target group, resolved after parsing. Resolution
	// failure is a parse error, so a parsed tree never carries a nil
	// target.
	Expr *Regexpr
}

// Regexpr is one node of the parsed pattern.
//
// MinCount and MaxCount hold the repetition quantifier applied to the
// node; MaxCount == arith.Unlimited means unbounded. NGroup is the
// capturing-group ordinal (0 for anything that is not a capturing
// group). FullLength caches the cardinality of the language the node
// denotes, arith.Unlimited when infinite or beyond arith.BigNum.
type Regexpr struct {
	Kind               Kind
	MinCount, MaxCount int
	NGroup             int
	FullLength         int64

	// Ref is set for KindBackref.
	Ref Backref
	// Set holds the member bytes of a KindCharset in ascending order.
	Set []byte
	// File and Words are set for KindWords.
	File  string
	Words []string
	// Subs holds the children of KindConcat and KindAlter.
	Subs []*Regexpr
}

// HasQuantifiedBackref reports whether the tree contains a
// backreference carrying a repetition quantifier other than {1}. Such
// patterns enumerate fine sequentially but have no well-defined
// offset arithmetic, so random access refuses them.
func HasQuantifiedBackref(p *Regexpr) bool {
	if p.Kind == KindBackref && (p.MinCount != 1 || p.MaxCount != 1) {
		return true
	}
	for _, sub := range p.Subs {
		if HasQuantifiedBackref(sub) {
			return true
		}
	}
	return false
}

// newNode returns a node with the default {1,1} quantifier.
func newNode(kind Kind) *Regexpr {
	return &Regexpr{Kind: kind, MinCount: 1, MaxCount: 1}
}
