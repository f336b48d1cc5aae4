package blasttab

import (
	"fmt"
	"strconv"

	"github.com/grailbio/abundance/alignment"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

// Unaligned is the reference id aligners report for a query that did not
// align anywhere.
const Unaligned = "*"

// getFields splits curLine on tabs into fields, reusing its storage, and
// returns the result.  Unlike strings.Split it does not allocate per call
// once fields has grown to the line's width.
func getFields(fields [][]byte, curLine []byte) [][]byte {
	fields = fields[:0]
	start := 0
	for pos, c := range curLine {
		if c == '\t' {
			fields = append(fields, curLine[start:pos])
			start = pos + 1
		}
	}
	return append(fields, curLine[start:])
}

// IsMalformed reports whether err is a MalformedRecord error returned by
// ParseLine.
func IsMalformed(err error) bool {
	return errors.Is(errors.Invalid, err)
}

func malformed(format string, args ...interface{}) error {
	return errors.E(errors.Invalid, "malformed alignment record:", fmt.Sprintf(format, args...))
}

func parsePos(field []byte, name string) (int64, error) {
	v, err := strconv.ParseInt(gunsafe.BytesToString(field), 10, 64)
	if err != nil {
		return 0, malformed("%s is not an integer: %q", name, field)
	}
	if v < 1 {
		return 0, malformed("%s must be positive: %d", name, v)
	}
	return v, nil
}

func parseFloat(field []byte, name string) (float64, error) {
	v, err := strconv.ParseFloat(gunsafe.BytesToString(field), 64)
	if err != nil {
		return 0, malformed("%s is not a number: %q", name, field)
	}
	return v, nil
}

// ParseLine parses one line of tabular alignment output (without the
// trailing newline) into a Hit.  It returns a MalformedRecord error when the
// line lacks the query, reference, start or end column, or when start or end
// is not a positive integer.  The optional slen and evalue columns are left
// unset when missing or unparsable.  Reverse-strand hits (start > end) are
// reoriented so that Start <= End.
//
// A line whose reference column is "*" describes an unaligned query; ParseLine
// returns it with Reference == Unaligned and zero coordinates without
// inspecting the coordinate columns.
func ParseLine(line []byte, layout Layout) (alignment.Hit, error) {
	return parseFields(getFields(nil, line), layout)
}

func parseFields(fields [][]byte, layout Layout) (h alignment.Hit, err error) {
	if n := layout.minColumns(); len(fields) < n {
		return h, malformed("expected at least %d columns, found %d", n, len(fields))
	}
	if len(fields[layout.Query]) == 0 {
		return h, malformed("empty query id")
	}
	if len(fields[layout.Reference]) == 0 {
		return h, malformed("empty reference id")
	}
	h.Query = string(fields[layout.Query])
	h.Reference = string(fields[layout.Reference])
	if h.Reference == Unaligned {
		return h, nil
	}
	if h.Start, err = parsePos(fields[layout.Start], "start"); err != nil {
		return alignment.Hit{}, err
	}
	if h.End, err = parsePos(fields[layout.End], "end"); err != nil {
		return alignment.Hit{}, err
	}
	if h.Start > h.End {
		h.Start, h.End = h.End, h.Start
	}
	// Optional columns never reject a hit; a missing or unparsable value is
	// treated as absent.
	if f := optionalField(fields, layout.SubjectLen); f != nil {
		if n, err := parsePos(f, "slen"); err == nil {
			h.SubjectLen = n
		} else {
			log.Debug.Printf("%s: ignoring slen: %v", h.Query, err)
		}
	}
	if f := optionalField(fields, layout.Evalue); f != nil {
		if v, err := parseFloat(f, "evalue"); err == nil {
			h.Evalue, h.HasEvalue = v, true
		} else {
			log.Debug.Printf("%s: ignoring evalue: %v", h.Query, err)
		}
	}
	return h, nil
}

// optionalField returns column idx of fields, or nil if the column is
// disabled (idx < 0) or absent from the line.
func optionalField(fields [][]byte, idx int) []byte {
	if idx < 0 || idx >= len(fields) {
		return nil
	}
	return fields[idx]
}
