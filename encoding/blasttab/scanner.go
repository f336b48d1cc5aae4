package blasttab

import (
	"bufio"
	"bytes"
	"io"

	"github.com/grailbio/abundance/alignment"
	"github.com/grailbio/base/log"
)

// maxLineSize bounds a single alignment line.  DIAMOND's qseq column makes
// lines longer than bufio's default.
const maxLineSize = 64 * 1024 * 1024

// Scanner reads tabular alignment output one hit at a time.  Comment lines
// (starting with '@' or '#') and blank lines are skipped silently.  Malformed
// lines and lines describing unaligned queries are skipped and counted.
//
// Scanner implements alignment.Scanner.
type Scanner struct {
	sc     *bufio.Scanner
	layout Layout
	fields [][]byte
	lineNo int
	counts alignment.Counts
}

// NewScanner creates a Scanner reading lines in the given layout from r.
func NewScanner(r io.Reader, layout Layout) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineSize)
	return &Scanner{sc: sc, layout: layout}
}

// Scan implements alignment.Scanner.
func (s *Scanner) Scan(h *alignment.Hit) bool {
	for s.sc.Scan() {
		s.lineNo++
		line := bytes.TrimRight(s.sc.Bytes(), "\r")
		if len(line) == 0 || line[0] == '@' || line[0] == '#' {
			continue
		}
		s.counts.Lines++
		s.fields = getFields(s.fields, line)
		hit, err := parseFields(s.fields, s.layout)
		if err != nil {
			s.counts.Malformed++
			log.Debug.Printf("line %d: %v", s.lineNo, err)
			continue
		}
		if hit.Reference == Unaligned {
			s.counts.Unaligned++
			continue
		}
		s.counts.Hits++
		*h = hit
		return true
	}
	return false
}

// Err implements alignment.Scanner.
func (s *Scanner) Err() error {
	return s.sc.Err()
}

// Counts implements alignment.Scanner.
func (s *Scanner) Counts() alignment.Counts {
	return s.counts
}
