// Package fasta reads reference sequence lengths from FASTA files and from
// samtools faidx indexes (http://www.htslib.org/doc/faidx.html).  Briefly,
// FASTA files consist of a number of named sequences that may be interrupted
// by newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const (
	maxLineSize = 1024 * 1024 * 300 // 300 MB
)

// SeqLen is the name and length (in residues) of one sequence.
type SeqLen struct {
	Name   string
	Length int64
}

// Lengths reads FASTA data from r and returns the length of every sequence,
// in the order of appearance.  Sequence data is counted, not stored, so
// memory use does not depend on the size of the input.
func Lengths(r io.Reader) ([]SeqLen, error) {
	var (
		seqs []SeqLen
		cur  *SeqLen
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			name := line[1:]
			if i := bytes.IndexByte(name, ' '); i >= 0 {
				name = name[:i]
			}
			if len(name) == 0 {
				return nil, errors.Errorf("malformed FASTA file: unnamed sequence after %d sequences", len(seqs))
			}
			seqs = append(seqs, SeqLen{Name: string(name)})
			cur = &seqs[len(seqs)-1]
			continue
		}
		if cur == nil {
			return nil, errors.Errorf("malformed FASTA file: sequence data before the first header")
		}
		cur.Length += int64(len(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read FASTA data")
	}
	return seqs, nil
}
