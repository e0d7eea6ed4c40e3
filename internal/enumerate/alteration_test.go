package enumerate

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whit3rabbit/relang/internal/syntax"
)

func compile(t *testing.T, pattern string) *syntax.Regexpr {
	t.Helper()
	re, err := syntax.Parse(pattern)
	require.NoError(t, err, "pattern %q", pattern)
	return re
}

// collect enumerates from the start until wrap-around or max words.
func collect(t *testing.T, pattern string, max int) []string {
	t.Helper()
	root := New(compile(t, pattern))
	return drain(root, max)
}

func drain(root *Alteration, max int) []string {
	buf := make([]byte, 1024)
	var words []string
	for len(words) < max {
		n := root.Value(buf)
		words = append(words, string(buf[:n]))
		if root.Inc() == nil {
			break
		}
	}
	return words
}

func TestSeedEnumerations(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{`a|b|c`, []string{"a", "b", "c"}},
		{`x{2,3}`, []string{"xx", "xxx"}},
		{`(ab|cd)\1`, []string{"abab", "cdcd"}},
		{`[01]{3}`, []string{"000", "001", "010", "011", "100", "101", "110", "111"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, tt.pattern, 100))
		})
	}
}

func TestInfinitePrefix(t *testing.T) {
	assert.Equal(t,
		[]string{"", "a", "aa", "aaa", "aaaa"},
		collect(t, `a*`, 5))
}

func TestShortestTotalFirst(t *testing.T) {
	words := collect(t, `[1-9][0-9]{0,2}`, 1000)
	require.Len(t, words, 999)

	assert.Equal(t, "1", words[0])
	assert.Equal(t, "9", words[8])
	assert.Equal(t, "10", words[9])
	assert.Equal(t, "99", words[98])
	assert.Equal(t, "100", words[99])
	assert.Equal(t, "999", words[998])
}

// Exhaustive enumeration of a finite language yields exactly
// FullLength words, all distinct.
func TestFiniteExhaustive(t *testing.T) {
	patterns := []string{
		`a|b|c`,
		`[01]{3}`,
		`x{2,3}`,
		`(a|bc)d?`,
		`(a|b)(c|d)e{0,1}`,
		`[1-9][0-9]{0,2}`,
		`a{0}`,
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re := compile(t, pattern)
			words := collect(t, pattern, 2000)

			require.EqualValues(t, re.FullLength, len(words))
			seen := make(map[string]bool, len(words))
			for _, w := range words {
				require.False(t, seen[w], "duplicate word %q", w)
				seen[w] = true
			}
		})
	}
}

// After the sequence wraps, the iterator is back at word zero.
func TestWrapAround(t *testing.T) {
	root := New(compile(t, `a|b`))
	buf := make([]byte, 8)

	first := string(buf[:root.Value(buf)])
	require.NotNil(t, root.Inc())
	require.Nil(t, root.Inc())
	assert.Equal(t, first, string(buf[:root.Value(buf)]))
}

func TestSetOffsetMatchesNaiveAdvance(t *testing.T) {
	patterns := []string{
		`a|b|c`,
		`[01]{3}`,
		`x{2,3}`,
		`(a|bc)d?`,
		`[1-9][0-9]{0,2}`,
		`(ab|cd)(x|y)`,
		`(ab|cd)\1`,
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re := compile(t, pattern)
			naive := collect(t, pattern, 2000)
			require.EqualValues(t, re.FullLength, len(naive))

			buf := make([]byte, 64)
			for k := range naive {
				root := New(re)
				root.SetOffset(int64(k))
				n := root.Value(buf)
				require.Equal(t, naive[k], string(buf[:n]), "offset %d", k)

				// Continuing from the offset must follow the same
				// sequence, wrapping at the end.
				if root.Inc() != nil {
					n = root.Value(buf)
					assert.Equal(t, naive[(k+1)%len(naive)], string(buf[:n]),
						"offset %d + inc", k)
				}
			}
		})
	}
}

func TestSetOffsetInfinite(t *testing.T) {
	patterns := []string{`a*`, `a|b*`, `[ab]+c?`, `x?(yy)*`}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re := compile(t, pattern)
			naive := collect(t, pattern, 60)

			for k := 0; k < 40; k++ {
				root := New(re)
				root.SetOffset(int64(k))
				got := drain(root, 10)
				assert.Equal(t, naive[k:k+10], got, "offset %d", k)
			}
		})
	}
}

// Offsets reduce modulo the cardinality of a finite language.
func TestSetOffsetModulo(t *testing.T) {
	re := compile(t, `a|b|c`)
	buf := make([]byte, 8)

	root := New(re)
	root.SetOffset(4)
	assert.Equal(t, "b", string(buf[:root.Value(buf)]))
}

func TestSetOffsetIdempotent(t *testing.T) {
	re := compile(t, `[1-9][0-9]{0,2}`)
	buf := make([]byte, 8)
	for _, k := range []int64{0, 9, 99, 500, 998} {
		once := New(re)
		once.SetOffset(k)
		want := string(buf[:once.Value(buf)])

		twice := New(re)
		twice.SetOffset(k)
		twice.SetOffset(k)
		assert.Equal(t, want, string(buf[:twice.Value(buf)]), "offset %d", k)
	}
}

// Repositioning a single persistent tree must behave like seeking a
// fresh one, including back to offset zero across alternatives.
func TestSetOffsetReusedTree(t *testing.T) {
	re := compile(t, `a|bb|ccc`)
	naive := collect(t, `a|bb|ccc`, 10)
	require.Equal(t, []string{"a", "bb", "ccc"}, naive)

	root := New(re)
	buf := make([]byte, 8)
	for _, k := range []int64{2, 0, 1, 0, 2, 1} {
		root.SetOffset(k)
		n := root.Value(buf)
		assert.Equal(t, naive[k], string(buf[:n]), "offset %d", k)
	}
}

// Driving the iterator with the in-place fast path must reproduce the
// plain Inc sequence byte for byte.
func TestIncInPlaceRoundTrip(t *testing.T) {
	patterns := []string{
		`[0-2]{3}`,
		`(a|bc)[xy]`,
		`(ab|cd)\1`,
		`[1-9][0-9]{0,2}`,
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re := compile(t, pattern)
			naive := collect(t, pattern, 2000)

			root := New(re)
			buf := make([]byte, 64)
			var fast *Alteration
			var got []string
			for len(got) <= len(naive) {
				n := root.Value(buf)
				got = append(got, string(buf[:n]))
				if fast != nil && !fast.IncInPlace() {
					fast = nil
				}
				if fast == nil {
					fast = root.Inc()
					if fast == nil {
						break
					}
				}
			}
			assert.Equal(t, naive, got)
		})
	}
}

// Two iterator trees over one parsed pattern advance independently.
func TestIndependentIterators(t *testing.T) {
	re := compile(t, `(a|b)\1x?`)
	one := New(re)
	two := New(re)
	buf := make([]byte, 16)

	require.NotNil(t, one.Inc())
	require.NotNil(t, one.Inc())

	n := two.Value(buf)
	assert.Equal(t, "aa", string(buf[:n]), "second tree must still be at word zero")
}

func TestWordsEnumeration(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "animals.txt", []byte("cat\ndog\nemu\n"), 0644))
	re, err := (&syntax.Parser{FS: fs}).Parse(`(?Fanimals.txt)-[01]`)
	require.NoError(t, err)

	root := New(re)
	assert.Equal(t, []string{"cat-0", "cat-1", "dog-0", "dog-1", "emu-0", "emu-1"},
		drain(root, 100))
}

func TestValueTruncates(t *testing.T) {
	root := New(compile(t, `abcdef`))
	buf := make([]byte, 3)
	n := root.Value(buf)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(buf[:n]))
}

func TestFprintState(t *testing.T) {
	root := New(compile(t, `(a|b)c*`))
	var sb strings.Builder
	root.Fprint(&sb)
	out := sb.String()
	assert.Contains(t, out, "Alteration")
	assert.Contains(t, out, "Concatenation")
	assert.Contains(t, out, "(+0 / ")
}
