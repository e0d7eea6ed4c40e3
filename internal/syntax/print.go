package syntax

import (
	"fmt"
	"io"

	"github.com/whit3rabbit/relang/internal/arith"
)

// Fprint writes an indented rendering of the tree, one node per line,
// for the inspect command and the driver's tree dump.
func Fprint(w io.Writer, p *Regexpr) {
	fprint(w, p, 0)
}

func fprint(w io.Writer, p *Regexpr, indent int) {
	fmt.Fprintf(w, "%*s%s := {%s, %s}", indent, "", p.Kind, countString(p.MinCount), countString(p.MaxCount))
	if p.NGroup != 0 {
		fmt.Fprintf(w, " #%d", p.NGroup)
	}
	fmt.Fprintf(w, " <%s>", LengthString(p.FullLength))
	switch p.Kind {
	case KindBackref:
		fmt.Fprintf(w, " --> \\%d\n", p.Ref.Num)
	case KindCharset:
		fmt.Fprintf(w, " %q\n", p.Set)
	case KindWords:
		fmt.Fprintf(w, " dict[%d] <%s>\n", len(p.Words), p.File)
	case KindConcat, KindAlter:
		fmt.Fprintf(w, " {%d}\n", len(p.Subs))
		for _, sub := range p.Subs {
			fprint(w, sub, indent+2)
		}
	}
}

// LengthString renders a cardinality, "*" for Unlimited.
func LengthString(n int64) string {
	if n == arith.Unlimited {
		return "*"
	}
	return fmt.Sprintf("%d", n)
}

func countString(n int) string {
	if n == arith.Unlimited {
		return "*"
	}
	return fmt.Sprintf("%d", n)
}
