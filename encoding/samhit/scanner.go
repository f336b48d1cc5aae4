// Package samhit adapts SAM alignment output (e.g. DIAMOND --outfmt 101 or
// any short-read aligner) into alignment hits.  Reference lengths come from
// the @SQ header lines and are reported in-band through Hit.SubjectLen.
package samhit

import (
	"io"

	"github.com/grailbio/abundance/alignment"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
)

// Scanner reads SAM records one hit at a time.  Unmapped records are counted
// as unaligned.  Secondary and supplementary alignments are returned like
// primary ones: every reported alignment is a hit.
//
// Scanner implements alignment.Scanner.
type Scanner struct {
	in     *ioErrReader
	r      *sam.Reader
	err    error
	counts alignment.Counts
}

// ioErrReader remembers the first non-EOF error returned by the underlying
// reader, so that I/O failures can be told apart from unparsable records.
type ioErrReader struct {
	r   io.Reader
	err error
}

func (e *ioErrReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && err != io.EOF && e.err == nil {
		e.err = err
	}
	return n, err
}

// NewScanner reads the SAM header from r and returns a Scanner positioned at
// the first record.
func NewScanner(r io.Reader) (*Scanner, error) {
	in := &ioErrReader{r: r}
	sr, err := sam.NewReader(in)
	if err != nil {
		return nil, errors.E(err, "read SAM header")
	}
	return &Scanner{in: in, r: sr}, nil
}

// Header returns the SAM header.
func (s *Scanner) Header() *sam.Header { return s.r.Header() }

// Scan implements alignment.Scanner.
func (s *Scanner) Scan(h *alignment.Hit) bool {
	if s.err != nil {
		return false
	}
	for {
		rec, err := s.r.Read()
		if err == io.EOF {
			return false
		}
		if s.in.err != nil {
			s.err = errors.E(s.in.err, "read SAM record")
			return false
		}
		s.counts.Lines++
		if err != nil {
			// A bad line is consumed whole, so reading can continue.
			s.counts.Malformed++
			log.Debug.Printf("record %d: %v", s.counts.Lines, err)
			continue
		}
		if rec.Flags&sam.Unmapped != 0 || rec.Ref == nil || rec.Pos < 0 {
			s.counts.Unaligned++
			continue
		}
		end := rec.End()
		if end <= rec.Pos {
			s.counts.Malformed++
			log.Debug.Printf("%s: alignment spans no reference bases", rec.Name)
			continue
		}
		*h = alignment.Hit{
			Query:      rec.Name,
			Reference:  rec.Ref.Name(),
			Start:      int64(rec.Pos) + 1,
			End:        int64(end),
			SubjectLen: int64(rec.Ref.Len()),
		}
		s.counts.Hits++
		return true
	}
}

// Err implements alignment.Scanner.
func (s *Scanner) Err() error { return s.err }

// Counts implements alignment.Scanner.
func (s *Scanner) Counts() alignment.Counts { return s.counts }
