package syntax

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/whit3rabbit/relang/internal/arith"
)

// Byte range enumerated by the dot class and by charset negation.
const (
	MinChar = 32
	MaxChar = 128
)

// Parser turns pattern source into an expression tree. The zero value
// is ready to use; FS overrides where `(?F path)` dictionaries are
// read from, which tests point at an in-memory filesystem.
type Parser struct {
	FS afero.Fs
}

// Parse is shorthand for parsing with the host filesystem.
func Parse(pattern string) (*Regexpr, error) {
	return (&Parser{}).Parse(pattern)
}

// Parse builds the tree for pattern, resolves backreferences and
// computes every node's cardinality. The returned root is always an
// Alter of Concats and is immutable from here on.
func (p *Parser) Parse(pattern string) (*Regexpr, error) {
	if p.FS == nil {
		p.FS = afero.NewOsFs()
	}
	totalGroups := 0
	root, _, err := p.parseExpr(pattern, 0, &totalGroups)
	if err != nil {
		return nil, err
	}
	if err := linkBackrefs(root); err != nil {
		return nil, err
	}
	calcFullLength(root)
	return root, nil
}

// parseExpr consumes alternatives until the end of input or an
// unmatched ')'. It returns the Alter node and the index of the
// terminator (len(src) or the position of the ')').
func (p *Parser) parseExpr(src string, start int, totalGroups *int) (*Regexpr, int, error) {
	expr := newNode(KindAlter)
	sub := newNode(KindConcat)

	i := start
loop:
	for ; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == '.':
			re := newNode(KindCharset)
			re.Set = fullSet()
			sub.Subs = append(sub.Subs, re)

		case ch == '[':
			set, end, err := parseSet(src, i)
			if err != nil {
				return nil, 0, err
			}
			re := newNode(KindCharset)
			re.Set = set
			sub.Subs = append(sub.Subs, re)
			i = end
			logrus.Debugf("syntax: charset %q", re.Set)

		case ch == '\\':
			re := newNode(KindCharset)
			if i+1 < len(src) && '1' <= src[i+1] && src[i+1] <= '9' {
				re.Kind = KindBackref
				re.Ref.Num = int(src[i+1] - '0')
				i++
				logrus.Debugf("syntax: backreference \\%d", re.Ref.Num)
			} else {
				set, end, err := parseEscaped(src, i)
				if err != nil {
					return nil, 0, err
				}
				re.Set = set
				i = end
			}
			sub.Subs = append(sub.Subs, re)

		case ch == '*' && len(sub.Subs) > 0:
			last := sub.Subs[len(sub.Subs)-1]
			last.MinCount, last.MaxCount = 0, arith.Unlimited

		case ch == '+' && len(sub.Subs) > 0:
			last := sub.Subs[len(sub.Subs)-1]
			last.MinCount, last.MaxCount = 1, arith.Unlimited

		case ch == '?' && len(sub.Subs) > 0:
			last := sub.Subs[len(sub.Subs)-1]
			last.MinCount, last.MaxCount = 0, 1

		case ch == '{' && len(sub.Subs) > 0:
			last := sub.Subs[len(sub.Subs)-1]
			min, max, end, err := parseRange(src, i)
			if err != nil {
				return nil, 0, err
			}
			last.MinCount, last.MaxCount = min, max
			i = end

		case ch == '|':
			// An empty branch is a valid alternative matching the
			// empty word.
			expr.Subs = append(expr.Subs, sub)
			sub = newNode(KindConcat)

		case ch == '(':
			re, end, err := p.parseGroup(src, i, totalGroups)
			if err != nil {
				return nil, 0, err
			}
			sub.Subs = append(sub.Subs, re)
			i = end

		case ch == ')':
			break loop

		default:
			re := newNode(KindCharset)
			re.Set = []byte{ch}
			sub.Subs = append(sub.Subs, re)
		}
	}

	if len(sub.Subs) > 0 {
		expr.Subs = append(expr.Subs, sub)
	}
	return expr, i, nil
}

// parseGroup consumes a parenthesised group starting at the '('. It
// handles capturing groups, the `(?:` non-capturing form, the
// `(?F path)` dictionary form, and assigns group ordinals in source
// order.
func (p *Parser) parseGroup(src string, start int, totalGroups *int) (*Regexpr, int, error) {
	re := newNode(KindAlter)
	ngroup := *totalGroups + 1

	i := start
	if i+1 < len(src) && src[i+1] == '?' {
		i++
		var next byte
		if i+1 < len(src) {
			next = src[i+1]
		}
		switch next {
		case 'F':
			re.Kind = KindWords
			end, err := p.parseWords(src, i+2, re)
			if err != nil {
				return nil, 0, err
			}
			re.NGroup = 0
			return re, end, nil
		case ':':
			i++
			ngroup = 0
		default:
			ngroup = 0
		}
	}
	if ngroup != 0 {
		*totalGroups++
	}

	inner, end, err := p.parseExpr(src, i+1, totalGroups)
	if err != nil {
		return nil, 0, err
	}
	re.Subs = inner.Subs
	re.NGroup = ngroup
	return re, end, nil
}

// parseRange consumes a `{n}`, `{n,}` or `{n,m}` quantifier starting
// at the '{'. Counts are read leniently the way the classic scanners
// do: leading digits only, anything else reads as zero.
func parseRange(src string, start int) (min, max, end int, err error) {
	rel := strings.IndexByte(src[start:], '}')
	if rel < 0 {
		return 0, 0, 0, fmt.Errorf("%w: missing '}' in repetition", ErrParse)
	}
	end = start + rel

	min = scanInt(src[start+1 : end])
	comma := strings.IndexByte(src[start:end], ',')
	if comma < 0 {
		max = min
	} else if start+comma+1 == end {
		max = arith.Unlimited
	} else {
		max = scanInt(src[start+comma+1 : end])
	}
	logrus.Debugf("syntax: repetition {%d,%d}", min, max)
	return min, max, end, nil
}

// scanInt reads a leading run of decimal digits, ignoring leading
// spaces; an empty run is zero.
func scanInt(s string) int {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	n := 0
	for ; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// parseSet consumes a bracketed class starting at the '['. Members are
// collected into a table so ranges and escapes can overlap freely;
// negation flips only the printable range MinChar..MaxChar.
func parseSet(src string, start int) ([]byte, int, error) {
	var all [256]bool
	i := start + 1
	negate := false
	if i < len(src) && src[i] == '^' {
		negate = true
		i++
	}

	prev := -1
	for ; i < len(src); i++ {
		ch := int(src[i])
		if ch == '\\' {
			subset, end, err := parseEscaped(src, i)
			if err != nil {
				return nil, 0, err
			}
			for _, b := range subset {
				all[b] = true
			}
			i = end
		} else if ch == '-' && prev >= 0 {
			i++
			if i >= len(src) {
				break
			}
			ch = int(src[i])
			for c := prev; c <= ch; c++ {
				all[c] = true
			}
		} else if ch == ']' {
			break
		} else {
			all[ch] = true
		}
		prev = ch
	}
	if i >= len(src) || src[i] != ']' {
		return nil, 0, fmt.Errorf("%w: missing ']' in character class", ErrParse)
	}

	if negate {
		for c := MinChar; c < MaxChar; c++ {
			all[c] = !all[c]
		}
		for c := 0; c < MinChar; c++ {
			all[c] = false
		}
		for c := MaxChar; c < 256; c++ {
			all[c] = false
		}
	}
	return setFromTable(&all), i, nil
}

// parseEscaped consumes a backslash escape starting at the '\\' and
// returns the bytes it denotes. Class escapes expand to preset
// charsets; unknown escapes denote the escaped byte itself.
func parseEscaped(src string, start int) ([]byte, int, error) {
	i := start + 1
	if i >= len(src) {
		return nil, 0, fmt.Errorf("%w: trailing backslash", ErrParse)
	}
	ch := src[i]
	switch ch {
	case 'd':
		return presetSet("[0-9]"), i, nil
	case 'D':
		return presetSet("[^0-9]"), i, nil
	case 's':
		return presetSet("[ \t\n\r\f\v]"), i, nil
	case 'S':
		return presetSet("[^ \t\n\r\f\v]"), i, nil
	case 'w':
		return presetSet("[a-zA-Z0-9_]"), i, nil
	case 'W':
		return presetSet("[^a-zA-Z0-9_]"), i, nil
	case 'x':
		// \x with fewer than two chars left denotes a literal 'x'.
		if i+2 < len(src) {
			hi, ok1 := hexVal(src[i+1])
			lo, ok2 := hexVal(src[i+2])
			if !ok1 || !ok2 {
				return nil, 0, fmt.Errorf("%w: bad hex escape %q", ErrParse, src[start:i+3])
			}
			return []byte{hi<<4 | lo}, i + 2, nil
		}
	case 't':
		ch = '\t'
	case 'r':
		ch = '\r'
	case 'n':
		ch = '\n'
	case 'f':
		ch = '\f'
	case 'v':
		ch = '\v'
	}
	return []byte{ch}, i, nil
}

// presetSet expands one of the fixed class literals. The literals are
// known-good, so the error path is unreachable.
func presetSet(class string) []byte {
	set, _, err := parseSet(class, 0)
	if err != nil {
		panic("syntax: bad preset class " + class)
	}
	return set
}

func hexVal(ch byte) (byte, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	}
	return 0, false
}

// fullSet is the dot class: every byte in MinChar..MaxChar.
func fullSet() []byte {
	set := make([]byte, 0, MaxChar-MinChar)
	for c := MinChar; c < MaxChar; c++ {
		set = append(set, byte(c))
	}
	return set
}

// setFromTable flattens a member table into the ascending byte order
// that fixes the enumeration order of the class.
func setFromTable(all *[256]bool) []byte {
	var set []byte
	for c := 0; c < 256; c++ {
		if all[c] {
			set = append(set, byte(c))
		}
	}
	return set
}
