// Package alignment defines the alignment-hit record shared by the hit
// readers and the abundance engine.
package alignment

// Hit is one reported alignment between a query read and a reference
// sequence.  Coordinates are 1-based and closed: the hit covers reference
// positions [Start, End], and Start <= End always holds for a parsed hit.
type Hit struct {
	Query     string
	Reference string
	Start     int64
	End       int64
	// SubjectLen is the reference length reported in-band by the aligner, or 0
	// if the input carries no such column.
	SubjectLen int64
	// Evalue is only meaningful when HasEvalue is set.
	Evalue    float64
	HasEvalue bool
}

// Len returns the number of reference bases spanned by the hit.
func (h *Hit) Len() int64 { return h.End - h.Start + 1 }

// Counts summarizes what a Scanner saw while reading its input.
type Counts struct {
	// Lines is the number of non-comment, non-blank input records.
	Lines int
	// Hits is the number of records returned by Scan.
	Hits int
	// Malformed is the number of records that could not be parsed.  They are
	// skipped.
	Malformed int
	// Unaligned is the number of records that report a query with no reference
	// ('*' in tabular output, the unmapped flag in SAM).
	Unaligned int
}

// Scanner is a source of alignment hits.  The usage mirrors
// bufio.Scanner:
//
//   var h alignment.Hit
//   for sc.Scan(&h) {
//     ...
//   }
//   if err := sc.Err(); err != nil {
//     ...
//   }
type Scanner interface {
	// Scan reads the next hit into h.  It returns false at the end of the input
	// or on an I/O error.
	Scan(h *Hit) bool
	// Err returns the first I/O error encountered.  Malformed records are not
	// errors; they are reported through Counts.
	Err() error
	// Counts returns the running record counts.
	Counts() Counts
}
