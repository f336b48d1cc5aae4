package abundance

import (
	"math"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// decimalPlaces is the precision of every fractional value in a report.
const decimalPlaces = 4

// Decimal is a float rendered with exactly four decimal places, so that
// reports are byte-for-byte reproducible.
type Decimal float64

// round rounds x half away from zero to four decimal places.
func round(x float64) Decimal {
	const scale = 1e4
	return Decimal(math.Round(x*scale) / scale)
}

// String implements fmt.Stringer.
func (d Decimal) String() string {
	return strconv.FormatFloat(float64(d), 'f', decimalPlaces, 64)
}

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(d), 'f', decimalPlaces, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return errors.E(errors.Invalid, err, "decimal")
	}
	*d = Decimal(v)
	return nil
}

// Result is the finalized statistics of one reference.
type Result struct {
	ID             string  `json:"id"`
	Length         int64   `json:"length"`
	TotalDepth     Decimal `json:"total_depth"`
	TotalCoverage  Decimal `json:"total_coverage"`
	TotalRPKM      Decimal `json:"total_rpkm"`
	UniqueDepth    Decimal `json:"unique_depth"`
	UniqueCoverage Decimal `json:"unique_coverage"`
	UniqueRPKM     Decimal `json:"unique_rpkm"`
	TotalReads     int     `json:"total_reads"`
	UniqueReads    int     `json:"unique_reads"`
}

// rpkm computes reads per kilobase of reference per million mapped reads.
func rpkm(reads int, length int64, mappedReads int) float64 {
	return float64(reads) / (float64(length) / 1000) / (float64(mappedReads) / 1e6)
}

// unresolvedLength returns the error reported for a reference whose length
// can't be determined.
func unresolvedLength(id string) error {
	return errors.E(errors.NotExist, "unresolved reference length:", id)
}

// Finalize converts accumulated records into results, in record order.
// mappedReads is the run-wide number of distinct mapped reads; it is the
// RPKM denominator for both the total and the unique statistics.  If
// aminoAcidRef is set, reference lengths are in residues and are scaled to
// nucleotides (x3) for RPKM only.
//
// A record without a resolvable length is left out of the results, an
// UnresolvedReferenceLength error is logged for it, and its id is returned in
// unresolved.
func Finalize(records []*ReferenceRecord, mappedReads int, aminoAcidRef bool) (results []Result, unresolved []string) {
	results = make([]Result, 0, len(records))
	unresolved = []string{}
	for _, r := range records {
		length := r.ResolvedLength()
		if length <= 0 {
			log.Error.Print(unresolvedLength(r.ID))
			unresolved = append(unresolved, r.ID)
			continue
		}
		covered, uniqueCovered := r.Covered(length), r.UniqueCovered(length)
		if covered < int64(r.covered.Len()) {
			log.Printf("reference %s: hits extend past its length %d; coverage counts positions 1-%d only",
				r.ID, length, length)
		}
		nt := length
		if aminoAcidRef {
			nt *= 3
		}
		l := float64(length)
		results = append(results, Result{
			ID:             r.ID,
			Length:         length,
			TotalDepth:     round(float64(r.TotalBases) / l),
			TotalCoverage:  round(float64(covered) / l),
			TotalRPKM:      round(rpkm(r.TotalReads(), nt, mappedReads)),
			UniqueDepth:    round(float64(r.UniqueBases) / l),
			UniqueCoverage: round(float64(uniqueCovered) / l),
			UniqueRPKM:     round(rpkm(r.UniqueReads(), nt, mappedReads)),
			TotalReads:     r.TotalReads(),
			UniqueReads:    r.UniqueReads(),
		})
	}
	return results, unresolved
}
