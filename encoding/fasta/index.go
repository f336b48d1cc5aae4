package fasta

import (
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// Index files consist of one tab-separated line per sequence in the associated
// FASTA file.  The format is: "<sequence name>\t<length>\t<byte
// offset>\t<bases per line>\t<bytes per line>".
// For example: "chr3\t12345\t9000\t80\t81".
type indexRow struct {
	Name      string
	Length    int64
	Offset    int64
	LineBases int64
	LineWidth int64
}

// ReadIndex reads a FASTA index (*.fai) and returns the sequence lengths it
// lists, in file order.
func ReadIndex(in io.Reader) ([]SeqLen, error) {
	r := tsv.NewReader(in)
	var (
		row  indexRow
		seqs []SeqLen
	)
	for {
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(err, "read FASTA index")
		}
		if row.Length <= 0 {
			return nil, errors.E(errors.Invalid, "FASTA index: non-positive length for", row.Name)
		}
		seqs = append(seqs, SeqLen{Name: row.Name, Length: row.Length})
	}
	return seqs, nil
}
