package syntax

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// parseWords consumes the path of a `(?F path)` group, loads the file
// and fills re with one word per newline-terminated line. A trailing
// partial line is ignored; bytes on a line are taken verbatim. It
// returns the index of the closing ')' (or the end of input).
func (p *Parser) parseWords(src string, start int, re *Regexpr) (int, error) {
	end := strings.IndexByte(src[start:], ')')
	if end < 0 {
		end = len(src)
	} else {
		end += start
	}
	fname := src[start:end]

	data, err := afero.ReadFile(p.FS, fname)
	if err != nil {
		return 0, fmt.Errorf("%w: word file %s: %v", ErrParse, fname, err)
	}

	lines := strings.Split(string(data), "\n")
	re.File = fname
	re.Words = lines[:len(lines)-1]
	logrus.Debugf("syntax: dictionary %s, %d word(s)", fname, len(re.Words))
	return end, nil
}
