package refdb_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/abundance/refdb"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

func TestLengthsOrder(t *testing.T) {
	l := refdb.New()
	l.Set("b", 10)
	l.Set("a", 20)
	l.Set("b", 30)
	expect.EQ(t, l.IDs(), []string{"b", "a"})
	n, ok := l.Len("b")
	expect.True(t, ok)
	expect.EQ(t, n, int64(30))
	_, ok = l.Len("c")
	expect.False(t, ok)
}

func TestReadTSV(t *testing.T) {
	l, err := refdb.ReadTSV(strings.NewReader("# id\tlength\nEcoRI\t10000\nBamHI\t500\n"))
	assert.NoError(t, err)
	expect.EQ(t, l.IDs(), []string{"EcoRI", "BamHI"})

	_, err = refdb.ReadTSV(strings.NewReader("EcoRI\t0\n"))
	assert.Regexp(t, err, "non-positive")
}

func TestLoad(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	gz := func(s string) []byte {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write([]byte(s))
		assert.NoError(t, err)
		assert.NoError(t, w.Close())
		return buf.Bytes()
	}
	files := map[string][]byte{
		"db.fa":      []byte(">EcoRI desc\nACGTACGT\nAC\n>BamHI\nAAA\n"),
		"db.fa.gz":   gz(">EcoRI desc\nACGTACGT\nAC\n>BamHI\nAAA\n"),
		"db.fa.fai":  []byte("EcoRI\t10\t11\t8\t9\nBamHI\t3\t31\t3\t4\n"),
		"db.lengths": []byte("EcoRI\t10\nBamHI\t3\n"),
	}
	for name, data := range files {
		path := filepath.Join(tempDir, name)
		assert.NoError(t, ioutil.WriteFile(path, data, 0644))
		l, err := refdb.Load(ctx, path)
		assert.NoError(t, err, name)
		expect.EQ(t, l.IDs(), []string{"EcoRI", "BamHI"}, name)
		n, _ := l.Len("EcoRI")
		expect.EQ(t, n, int64(10), name)
		n, _ = l.Len("BamHI")
		expect.EQ(t, n, int64(3), name)
	}

	_, err := refdb.Load(ctx, filepath.Join(tempDir, "missing.fai"))
	expect.NotNil(t, err)
}
