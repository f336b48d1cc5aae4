package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/abundance/abundance"
	"github.com/grailbio/abundance/refdb"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	alnPath      = flag.String("aln", "", "Alignment file (tabular or .sam, optionally compressed); required")
	lengthsPath  = flag.String("ref-lengths", "", "Reference lengths: a .fai index, a FASTA file, or a two-column id/length TSV. If empty, lengths are taken from the alignment input")
	layout       = flag.String("layout", abundance.DefaultOpts.Layout, "Column layout of tabular input: 'diamond', 'blast6', or a list such as 'qseqid=0,sseqid=1,slen=2,sstart=3,send=4'")
	format       = flag.String("format", abundance.FormatJSON, "Report format; 'json' or 'tsv'")
	outPath      = flag.String("output", "", "Report path; a .gz suffix compresses it. Defaults to stdout")
	maxEvalue    = flag.Float64("max-evalue", abundance.DefaultOpts.MaxEvalue, "If positive, drop hits whose e-value exceeds this")
	aminoAcidRef = flag.Bool("amino-acid", abundance.DefaultOpts.AminoAcidRef, "Reference lengths are in amino acids; scale them by 3 for RPKM")

	inputPath    = flag.String("input-path", "", "Copied to the report's input_path field")
	input        = flag.String("input", "", "Copied to the report's input field")
	outputFolder = flag.String("output-folder", "", "Copied to the report's output_folder field")
	refDB        = flag.String("ref-db", "", "Copied to the report's ref_db field")
	logsPath     = flag.String("logs", "", "File whose lines are copied to the report's logs field")
)

func bioAbundanceUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -aln path [OPTIONS]\n", os.Args[0])
	flag.PrintDefaults()
}

// readLines returns the lines of the file at path.
func readLines(ctx context.Context, path string) (lines []string, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	sc := bufio.NewScanner(in.Reader(ctx))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.E(err, "read", path)
	}
	return lines, nil
}

func main() {
	flag.Usage = bioAbundanceUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() > 0 {
		log.Fatalf("unexpected arguments: %v", flag.Args())
	}
	if *alnPath == "" {
		bioAbundanceUsage()
		log.Fatalf("-aln is required")
	}
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
	ctx := vcontext.Background()

	lengths := refdb.New()
	if *lengthsPath != "" {
		var err error
		if lengths, err = refdb.Load(ctx, *lengthsPath); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("loaded %d reference lengths from %s", len(lengths.IDs()), *lengthsPath)
	}

	opts := abundance.Opts{
		Layout:       *layout,
		MaxEvalue:    *maxEvalue,
		AminoAcidRef: *aminoAcidRef,
	}
	report, err := abundance.SummarizePath(ctx, *alnPath, lengths, &opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	report.InputPath = *inputPath
	report.Input = *input
	report.OutputFolder = *outputFolder
	report.RefDB = *refDB
	if *logsPath != "" {
		if report.Logs, err = readLines(ctx, *logsPath); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if *outPath == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := report.WriteFormat(w, *format); err != nil {
			log.Fatalf("%v", err)
		}
		if err := w.Flush(); err != nil {
			log.Fatalf("write report: %v", err)
		}
	} else if err := report.Write(ctx, *outPath, *format); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("%d references, %d mapped reads", len(report.Results), report.MappedReads)
}
