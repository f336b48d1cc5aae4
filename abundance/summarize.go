package abundance

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/abundance/alignment"
	"github.com/grailbio/abundance/encoding/blasttab"
	"github.com/grailbio/abundance/encoding/samhit"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Opts controls a run.
type Opts struct {
	// Layout describes the columns of tabular input; see
	// blasttab.ParseLayout.  It is ignored for SAM input.
	Layout string
	// MaxEvalue, if positive, rejects hits whose e-value column exceeds it.
	// Hits without an e-value column are always accepted.
	MaxEvalue float64
	// AminoAcidRef states that reference lengths are in amino acids, so RPKM
	// scales them by three to nucleotides.
	AminoAcidRef bool
}

// DefaultOpts is the default value of Opts.  It reads DIAMOND's
// "qseqid sseqid slen sstart send qseq" output.
var DefaultOpts = Opts{
	Layout: "diamond",
}

// Summarize reads every hit from sc and computes the per-reference
// statistics of the run.  lengths may be nil if the input carries reference
// lengths in-band.  The returned error is non-nil only if sc fails to read
// its input; malformed records, unresolved references and an empty input are
// reported in the Report.
func Summarize(sc alignment.Scanner, lengths LengthSource, opts *Opts) (*Report, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	// Pass 1: buffer the run and classify every query.
	var (
		classifier = NewClassifier()
		hits       []alignment.Hit
		filtered   int
		h          alignment.Hit
	)
	for sc.Scan(&h) {
		if opts.MaxEvalue > 0 && h.HasEvalue && h.Evalue > opts.MaxEvalue {
			filtered++
			continue
		}
		classifier.Observe(h.Query, h.Reference)
		hits = append(hits, h)
		if len(hits)%(1024*1024) == 0 {
			log.Printf("read %dMi hits", len(hits)/(1024*1024))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	counts := sc.Counts()
	log.Debug.Printf("read %d hits, %d queries (%d unique)",
		len(hits), classifier.NumQueries(), classifier.NumUnique())

	// Pass 2: accumulate with the final classification.
	agg := NewAggregator(lengths)
	for _, h := range hits {
		agg.Accumulate(h, classifier.Unique(h.Query))
	}

	results, unresolved := Finalize(agg.Records(), agg.MappedReads(), opts.AminoAcidRef)
	report := &Report{
		Results:              results,
		MappedReads:          agg.MappedReads(),
		MalformedRecords:     counts.Malformed,
		UnalignedRecords:     counts.Unaligned,
		FilteredRecords:      filtered,
		UnresolvedReferences: unresolved,
	}
	if counts.Malformed > 0 {
		log.Printf("skipped %d malformed records", counts.Malformed)
	}
	if report.Empty() {
		log.Printf("warning: no reads were aligned")
	}
	return report, nil
}

// isSAM reports whether path names SAM data, possibly compressed.
func isSAM(path string) bool {
	for _, ext := range []string{".gz", ".bz2", ".zst"} {
		path = strings.TrimSuffix(path, ext)
	}
	return strings.HasSuffix(path, ".sam")
}

// SummarizePath runs Summarize over the alignment file at path.  Paths ending
// in ".sam" are read as SAM, anything else as tabular output in
// opts.Layout.  Compressed input is decompressed transparently.
func SummarizePath(ctx context.Context, path string, lengths LengthSource, opts *Opts) (report *Report, err error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open alignments", path)
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = errors.E(e, "close", path)
		}
	}()
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	var sc alignment.Scanner
	if isSAM(path) {
		if sc, err = samhit.NewScanner(r); err != nil {
			return nil, errors.E(err, path)
		}
	} else {
		layout, err := blasttab.ParseLayout(opts.Layout)
		if err != nil {
			return nil, err
		}
		sc = blasttab.NewScanner(r, layout)
	}
	if report, err = Summarize(sc, lengths, opts); err != nil {
		return nil, errors.E(err, "read alignments", path)
	}
	return report, nil
}
