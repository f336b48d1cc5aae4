package samhit_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/grailbio/abundance/alignment"
	"github.com/grailbio/abundance/encoding/samhit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samData = "@HD\tVN:1.5\n" +
	"@SQ\tSN:EcoRI\tLN:1000\n" +
	"@SQ\tSN:BamHI\tLN:500\n" +
	"r1\t0\tEcoRI\t1\t60\t100M\t*\t0\t0\t*\t*\n" +
	"r2\t4\t*\t0\t0\t*\t*\t0\t0\t*\t*\n" +
	"r3\t256\tBamHI\t51\t0\t10M5D10M\t*\t0\t0\t*\t*\n"

func TestScanner(t *testing.T) {
	sc, err := samhit.NewScanner(strings.NewReader(samData))
	require.NoError(t, err)
	require.Len(t, sc.Header().Refs(), 2)

	var (
		h    alignment.Hit
		hits []alignment.Hit
	)
	for sc.Scan(&h) {
		hits = append(hits, h)
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []alignment.Hit{
		{Query: "r1", Reference: "EcoRI", Start: 1, End: 100, SubjectLen: 1000},
		{Query: "r3", Reference: "BamHI", Start: 51, End: 75, SubjectLen: 500},
	}, hits)
	assert.Equal(t, alignment.Counts{Lines: 3, Hits: 2, Unaligned: 1}, sc.Counts())
}

func scanAll(sc *samhit.Scanner) []alignment.Hit {
	var (
		h    alignment.Hit
		hits []alignment.Hit
	)
	for sc.Scan(&h) {
		hits = append(hits, h)
	}
	return hits
}

func TestScannerSkipsBadRecord(t *testing.T) {
	data := "@HD\tVN:1.5\n" +
		"@SQ\tSN:EcoRI\tLN:1000\n" +
		"r1\t0\tEcoRI\t1\t60\t100M\t*\t0\t0\t*\t*\n" +
		"r2\t0\tEcoRI\tpos\t60\t100M\t*\t0\t0\t*\t*\n" +
		"r3\t0\tEcoRI\t201\t60\t50M\t*\t0\t0\t*\t*\n"
	sc, err := samhit.NewScanner(strings.NewReader(data))
	require.NoError(t, err)
	hits := scanAll(sc)
	require.NoError(t, sc.Err())
	assert.Equal(t, []alignment.Hit{
		{Query: "r1", Reference: "EcoRI", Start: 1, End: 100, SubjectLen: 1000},
		{Query: "r3", Reference: "EcoRI", Start: 201, End: 250, SubjectLen: 1000},
	}, hits)
	assert.Equal(t, alignment.Counts{Lines: 3, Hits: 2, Malformed: 1}, sc.Counts())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestScannerReadError(t *testing.T) {
	data := "@HD\tVN:1.5\n" +
		"@SQ\tSN:EcoRI\tLN:1000\n" +
		"r1\t0\tEcoRI\t1\t60\t100M\t*\t0\t0\t*\t*\n"
	sc, err := samhit.NewScanner(io.MultiReader(strings.NewReader(data), failingReader{}))
	require.NoError(t, err)
	hits := scanAll(sc)
	require.Error(t, sc.Err())
	assert.Contains(t, sc.Err().Error(), "connection reset")
	// The record before the failure is still delivered.
	assert.Len(t, hits, 1)
	var h alignment.Hit
	assert.False(t, sc.Scan(&h))
}
