package blasttab

import (
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// Layout gives the 0-based column index of each field in a tabular alignment
// line.  The optional fields SubjectLen and Evalue are disabled with -1.
type Layout struct {
	Query      int
	Reference  int
	SubjectLen int
	Start      int
	End        int
	Evalue     int
}

var (
	// DiamondLayout matches DIAMOND invoked with
	// "--outfmt 6 qseqid sseqid slen sstart send qseq".
	DiamondLayout = Layout{Query: 0, Reference: 1, SubjectLen: 2, Start: 3, End: 4, Evalue: -1}
	// Blast6Layout matches the standard 12-column BLAST tabular format:
	// qseqid sseqid pident length mismatch gapopen qstart qend sstart send
	// evalue bitscore.  The bitscore is not used.
	Blast6Layout = Layout{Query: 0, Reference: 1, SubjectLen: -1, Start: 8, End: 9, Evalue: 10}
)

// layoutFields maps the column names accepted by ParseLayout to Layout
// fields.  The names follow BLAST's outfmt keywords.
var layoutFields = map[string]func(l *Layout) *int{
	"qseqid": func(l *Layout) *int { return &l.Query },
	"sseqid": func(l *Layout) *int { return &l.Reference },
	"slen":   func(l *Layout) *int { return &l.SubjectLen },
	"sstart": func(l *Layout) *int { return &l.Start },
	"send":   func(l *Layout) *int { return &l.End },
	"evalue": func(l *Layout) *int { return &l.Evalue },
}

// ParseLayout parses a layout descriptor.  It accepts the preset names
// "diamond" and "blast6", or a comma-separated list of name=index pairs
// such as "qseqid=0,sseqid=1,sstart=3,send=4".  In the latter form
// unmentioned optional columns are disabled; qseqid, sseqid, sstart and send
// are required.
func ParseLayout(desc string) (Layout, error) {
	switch desc {
	case "", "diamond":
		return DiamondLayout, nil
	case "blast6":
		return Blast6Layout, nil
	}
	l := Layout{Query: -1, Reference: -1, SubjectLen: -1, Start: -1, End: -1, Evalue: -1}
	for _, part := range strings.Split(desc, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return Layout{}, errors.E(errors.Invalid, "layout: expected name=index, got", part)
		}
		field, ok := layoutFields[kv[0]]
		if !ok {
			return Layout{}, errors.E(errors.Invalid, "layout: unknown column", kv[0])
		}
		idx, err := strconv.Atoi(kv[1])
		if err != nil || idx < 0 {
			return Layout{}, errors.E(errors.Invalid, "layout: bad column index for", kv[0], kv[1])
		}
		*field(&l) = idx
	}
	if l.Query < 0 || l.Reference < 0 || l.Start < 0 || l.End < 0 {
		return Layout{}, errors.E(errors.Invalid, "layout: qseqid, sseqid, sstart and send are required:", desc)
	}
	return l, nil
}

// minColumns returns the number of columns a line needs for the required
// fields to be present.  Optional columns may be missing.
func (l Layout) minColumns() int {
	n := 0
	for _, idx := range []int{l.Query, l.Reference, l.Start, l.End} {
		if idx+1 > n {
			n = idx + 1
		}
	}
	return n
}
