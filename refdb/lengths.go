// Package refdb resolves reference sequence lengths from the files that ship
// with a reference database: a samtools FASTA index, the FASTA itself, or a
// plain two-column "id<TAB>length" table.
package refdb

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/abundance/encoding/fasta"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
)

// Lengths maps reference ids to their lengths and remembers the order in
// which ids were first set.
type Lengths struct {
	ids  []string
	lens map[string]int64
}

// New creates an empty Lengths.
func New() *Lengths {
	return &Lengths{lens: map[string]int64{}}
}

// Set records the length of id.  Setting an id twice keeps its original
// position in IDs().
func (l *Lengths) Set(id string, n int64) {
	if _, ok := l.lens[id]; !ok {
		l.ids = append(l.ids, id)
	}
	l.lens[id] = n
}

// Len returns the length of id, and whether it is known.
func (l *Lengths) Len(id string) (int64, bool) {
	n, ok := l.lens[id]
	return n, ok
}

// IDs returns the known ids in the order they were first set.
func (l *Lengths) IDs() []string { return l.ids }

// fastaSuffixes lists the extensions Load treats as FASTA.
var fastaSuffixes = []string{".fa", ".fasta", ".fna", ".faa", ".ffn"}

// Load reads reference lengths from path.  The format is picked from the
// extension, ignoring a trailing ".gz" or other compression suffix: ".fai" is
// a FASTA index, FASTA extensions are scanned for sequence lengths, and
// anything else is read as a two-column table.  path may name any file
// implementation registered with grailbio/base/file, e.g. s3://.
func Load(ctx context.Context, path string) (l *Lengths, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open reference lengths", path)
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
	base := path
	for _, ext := range []string{".gz", ".bz2", ".zst"} {
		base = strings.TrimSuffix(base, ext)
	}
	var seqs []fasta.SeqLen
	switch {
	case strings.HasSuffix(base, ".fai"):
		seqs, err = fasta.ReadIndex(r)
	case hasAnySuffix(base, fastaSuffixes):
		seqs, err = fasta.Lengths(r)
	default:
		return ReadTSV(r)
	}
	if err != nil {
		return nil, errors.E(err, path)
	}
	l = New()
	for _, s := range seqs {
		if s.Length <= 0 {
			log.Printf("%s: skipping empty sequence %s", path, s.Name)
			continue
		}
		l.Set(s.Name, s.Length)
	}
	log.Debug.Printf("%s: %d reference lengths", path, len(l.ids))
	return l, nil
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// ReadTSV reads "id<TAB>length" lines.  Lines starting with '#' are
// comments.
func ReadTSV(in io.Reader) (*Lengths, error) {
	r := tsv.NewReader(in)
	r.Comment = '#'
	row := struct {
		ID     string
		Length int64
	}{}
	l := New()
	for {
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "read reference lengths")
		}
		if row.Length <= 0 {
			return nil, errors.E(errors.Invalid, "reference lengths: non-positive length for", row.ID)
		}
		l.Set(row.ID, row.Length)
	}
	return l, nil
}
