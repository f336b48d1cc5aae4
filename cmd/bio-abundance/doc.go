/*
bio-abundance summarizes the alignments of sequencing reads against a
reference database into per-reference abundance statistics: depth, breadth of
coverage, RPKM and read counts, each computed over all reads and over the
reads that align to only one reference.

Usage:

  bio-abundance -aln reads.tsv.gz -ref-lengths db.fa.fai -output SRR000001.json.gz

The alignment file is DIAMOND tabular output ("--outfmt 6 qseqid sseqid slen
sstart send qseq") by default; -layout selects another column layout, and
files ending in .sam are read as SAM.  Reference lengths come from
-ref-lengths (a .fai index, a FASTA file, or a two-column id/length TSV) and
fall back to the length column of the alignment input.

-input-path, -input, -output-folder, -ref-db and -logs are copied into the
JSON report verbatim, so that the report describes the run that produced it.

All paths may be local or s3://.
*/
package main
