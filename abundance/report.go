package abundance

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// Report is the outcome of one run.  InputPath, Input, OutputFolder, Logs
// and RefDB are passed through from the caller unchanged.
type Report struct {
	InputPath    string   `json:"input_path"`
	Input        string   `json:"input"`
	OutputFolder string   `json:"output_folder"`
	Logs         []string `json:"logs"`
	RefDB        string   `json:"ref_db"`
	// Results has one entry per reference with at least one hit and a known
	// length, in the order the references first appear in the input.
	Results []Result `json:"results"`

	// MappedReads is the number of distinct reads with at least one accepted
	// hit.
	MappedReads int `json:"mapped_reads"`
	// MalformedRecords is the number of input records that could not be
	// parsed.
	MalformedRecords int `json:"malformed_records"`
	// UnalignedRecords is the number of input records for reads that did not
	// align.
	UnalignedRecords int `json:"unaligned_records"`
	// FilteredRecords is the number of hits rejected by the e-value cutoff.
	FilteredRecords int `json:"filtered_records"`
	// UnresolvedReferences lists, in first-seen order, the references that
	// were hit but whose length is unknown.
	UnresolvedReferences []string `json:"unresolved_references"`
}

// Empty reports whether the run accepted no hits at all.
func (r *Report) Empty() bool { return r.MappedReads == 0 }

// Report formats.
const (
	FormatJSON = "json"
	FormatTSV  = "tsv"
)

// WriteJSON writes the report as a single JSON object followed by a newline.
func (r *Report) WriteJSON(w io.Writer) error {
	c := *r
	// Lists are always rendered as [], never null.
	if c.Logs == nil {
		c.Logs = []string{}
	}
	if c.Results == nil {
		c.Results = []Result{}
	}
	if c.UnresolvedReferences == nil {
		c.UnresolvedReferences = []string{}
	}
	return json.NewEncoder(w).Encode(&c)
}

// tsvHeader lists the WriteTSV columns.
var tsvHeader = []string{
	"id", "length",
	"total_depth", "total_coverage", "total_rpkm",
	"unique_depth", "unique_coverage", "unique_rpkm",
	"total_reads", "unique_reads",
}

// WriteTSV writes the per-reference results as a tab-separated table with a
// header line.  Pass-through fields and run counts are not included.
func (r *Report) WriteTSV(w io.Writer) error {
	tw := tsv.NewWriter(w)
	for _, col := range tsvHeader {
		tw.WriteString(col)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, res := range r.Results {
		tw.WriteString(res.ID)
		tw.WriteInt64(res.Length)
		for _, d := range []Decimal{
			res.TotalDepth, res.TotalCoverage, res.TotalRPKM,
			res.UniqueDepth, res.UniqueCoverage, res.UniqueRPKM,
		} {
			tw.WriteString(d.String())
		}
		tw.WriteInt64(int64(res.TotalReads))
		tw.WriteInt64(int64(res.UniqueReads))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteFormat writes the report to w in the given format (FormatJSON or
// FormatTSV).
func (r *Report) WriteFormat(w io.Writer, format string) error {
	switch format {
	case FormatJSON, "":
		return r.WriteJSON(w)
	case FormatTSV:
		return r.WriteTSV(w)
	}
	return errors.E(errors.NotSupported, "report format", format)
}

// Write creates path and writes the report to it in the given format.  The
// output is gzip-compressed if path ends in ".gz".  path may name any file
// implementation registered with grailbio/base/file, e.g. s3://.
func (r *Report) Write(ctx context.Context, path, format string) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	e := errors.Once{}
	w := out.Writer(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(w)
		e.Set(r.WriteFormat(gz, format))
		e.Set(gz.Close())
	} else {
		e.Set(r.WriteFormat(w, format))
	}
	e.Set(out.Close(ctx))
	if err := e.Err(); err != nil {
		return errors.E(err, "write report", path)
	}
	return nil
}
