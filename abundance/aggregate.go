package abundance

import (
	"github.com/grailbio/abundance/alignment"
	"github.com/grailbio/abundance/interval"
	"github.com/grailbio/base/log"
)

// LengthSource resolves reference lengths from the reference database.
// *refdb.Lengths implements it.
type LengthSource interface {
	Len(id string) (int64, bool)
}

// ReferenceRecord accumulates the hits against one reference sequence.  The
// unique lane sees a subset of the hits the total lane sees, so every unique
// quantity is bounded by its total counterpart.
type ReferenceRecord struct {
	// ID is the reference id.
	ID string
	// Length is the externally supplied reference length, or 0 if the
	// reference database doesn't know the id.
	Length int64
	// InBandLength is the first length reported by the aligner for the
	// reference (e.g. DIAMOND's slen column), or 0.
	InBandLength int64
	// TotalBases and UniqueBases are the sums of hit lengths.  Overlapping
	// hits are counted in full.
	TotalBases  int64
	UniqueBases int64

	covered       interval.Union
	uniqueCovered interval.Union
	totalReads    map[string]struct{}
	uniqueReads   map[string]struct{}
	// inBandConflict is set once hits disagree on InBandLength.
	inBandConflict bool
}

// ResolvedLength returns the length used to finalize the record: the
// external length if known, else the in-band one.  It returns 0 if neither is
// known.
func (r *ReferenceRecord) ResolvedLength() int64 {
	if r.Length > 0 {
		return r.Length
	}
	return r.InBandLength
}

// TotalReads returns the number of distinct reads with a hit against the
// reference.
func (r *ReferenceRecord) TotalReads() int { return len(r.totalReads) }

// UniqueReads returns the number of distinct unique reads with a hit against
// the reference.
func (r *ReferenceRecord) UniqueReads() int { return len(r.uniqueReads) }

// Covered returns the number of distinct reference positions in [1, limit]
// touched by any hit.
func (r *ReferenceRecord) Covered(limit int64) int64 {
	return int64(r.covered.LenBelow(interval.PosType(limit)))
}

// UniqueCovered returns the number of distinct reference positions in [1,
// limit] touched by a hit from a unique read.
func (r *ReferenceRecord) UniqueCovered(limit int64) int64 {
	return int64(r.uniqueCovered.LenBelow(interval.PosType(limit)))
}

// Aggregator owns one ReferenceRecord per reference seen in a run.  Records
// are kept in the order their reference was first hit.
type Aggregator struct {
	lengths LengthSource
	records []*ReferenceRecord
	byID    map[string]*ReferenceRecord
	mapped  map[string]struct{}
}

// NewAggregator creates an empty aggregator.  lengths may be nil, in which
// case only in-band lengths are available.
func NewAggregator(lengths LengthSource) *Aggregator {
	return &Aggregator{
		lengths: lengths,
		byID:    map[string]*ReferenceRecord{},
		mapped:  map[string]struct{}{},
	}
}

func (a *Aggregator) record(h *alignment.Hit) *ReferenceRecord {
	if r, ok := a.byID[h.Reference]; ok {
		return r
	}
	r := &ReferenceRecord{
		ID:          h.Reference,
		totalReads:  map[string]struct{}{},
		uniqueReads: map[string]struct{}{},
	}
	if a.lengths != nil {
		if n, ok := a.lengths.Len(h.Reference); ok {
			r.Length = n
		}
	}
	a.records = append(a.records, r)
	a.byID[h.Reference] = r
	return r
}

// observeInBand records a length reported by the aligner.  The first
// reported length is kept; disagreements are logged once per reference.
func (r *ReferenceRecord) observeInBand(n int64) {
	switch {
	case n <= 0 || n == r.InBandLength:
	case r.InBandLength == 0:
		r.InBandLength = n
		if r.Length > 0 && r.Length != n {
			log.Printf("reference %s: aligner reports length %d, reference database %d; using %d",
				r.ID, n, r.Length, r.Length)
		}
	case !r.inBandConflict:
		r.inBandConflict = true
		log.Printf("reference %s: aligner reports lengths %d and %d; using %d",
			r.ID, r.InBandLength, n, r.ResolvedLength())
	}
}

// Accumulate adds one hit to its reference's record, creating the record on
// the first hit.  Every hit must be accumulated exactly once.  If unique is
// set, the hit also counts towards the unique statistics.
func (a *Aggregator) Accumulate(h alignment.Hit, unique bool) {
	r := a.record(&h)
	r.observeInBand(h.SubjectLen)
	// Hits are 1-based closed, the union is 0-based half-open.
	start, end := interval.PosType(h.Start-1), interval.PosType(h.End)
	n := h.Len()

	r.covered.Insert(start, end)
	r.TotalBases += n
	r.totalReads[h.Query] = struct{}{}
	a.mapped[h.Query] = struct{}{}
	if unique {
		r.uniqueCovered.Insert(start, end)
		r.UniqueBases += n
		r.uniqueReads[h.Query] = struct{}{}
	}
}

// Records returns the records in first-seen order.
func (a *Aggregator) Records() []*ReferenceRecord { return a.records }

// Record returns the record for the given reference id, or nil.
func (a *Aggregator) Record(id string) *ReferenceRecord { return a.byID[id] }

// MappedReads returns the number of distinct reads with at least one
// accumulated hit.
func (a *Aggregator) MappedReads() int { return len(a.mapped) }
