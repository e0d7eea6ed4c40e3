package enumerate

import (
	"fmt"
	"io"

	"github.com/whit3rabbit/relang/internal/syntax"
)

// Fprint dumps the iterator state, one node per line, mirroring the
// tree shape. The driver prints this before each word in debug mode.
func (a *Alteration) Fprint(w io.Writer) {
	a.fprint(w, 0)
}

func (a *Alteration) fprint(w io.Writer, indent int) {
	fmt.Fprintf(w, "%*sAlteration[%s] := ", indent, "", syntax.LengthString(a.src.FullLength))
	switch a.src.Kind {
	case syntax.KindBackref:
		fmt.Fprintf(w, "--> \\%d\n", a.src.Ref.Num)
	case syntax.KindCharset:
		fmt.Fprintf(w, "%q [%d]\n", a.src.Set, a.ptr)
	case syntax.KindWords:
		fmt.Fprintf(w, "dict[%d] [%d]\n", len(a.src.Words), a.ptr)
	case syntax.KindAlter:
		fmt.Fprintf(w, "{%d} [%d]\n", len(a.concats), a.ptr)
		for _, c := range a.concats {
			c.fprint(w, indent+2)
		}
	}
}

func (c *Concatenation) fprint(w io.Writer, indent int) {
	fmt.Fprintf(w, "%*sConcatenation[%s] := {%d} [%d+]",
		indent, "", syntax.LengthString(c.src.FullLength), len(c.alters), c.minLength)
	if c.overflowed {
		fmt.Fprintf(w, " [OVR]")
	}
	for i := range c.added {
		fmt.Fprintf(w, " (+%d / %d)", c.added[i], c.maxs[i])
	}
	fmt.Fprintln(w)
	for _, a := range c.alters {
		a.fprint(w, indent+2)
	}
}
