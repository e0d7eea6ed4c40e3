// Package enumerate walks the words of a parsed pattern in a total,
// deterministic order: shortest repetition total first, then by
// composition, then odometer over the flattened children, rightmost
// fastest. It supports constant-ish random access by offset and an
// in-place fast path for leaf-only advances.
//
// The iterator tree mirrors the expression tree: an Alteration wraps
// every non-Concat node, a Concatenation wraps every Concat. All
// mutable state lives here; the expression tree is shared and
// read-only.
package enumerate

import "github.com/whit3rabbit/relang/internal/syntax"

// bindings records, per iterator tree, the Alteration that most
// recently materialised each expression node. Backreference evaluation
// reads its target's current value through this map. Keeping it on the
// tree rather than the shared expression nodes lets any number of
// trees enumerate one pattern independently.
type bindings map[*syntax.Regexpr]*Alteration
