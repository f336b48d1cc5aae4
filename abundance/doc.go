/*Package abundance turns the hits reported by a sequence aligner into
  per-reference abundance statistics.

  For every reference sequence that at least one read aligns to, it reports
  the number of distinct reads, the fraction of the reference covered, the
  average read depth and the RPKM.  Each statistic is computed twice: over
  all aligning reads ("total"), and over the reads that align to exactly one
  reference in the whole run ("unique").  A read that hits two references is
  counted in the total statistics of both and in the unique statistics of
  neither.

  Uniqueness can't be decided from a prefix of the input, so Summarize
  buffers the hits of a run: the first pass records which references each
  read hits (Classifier), the second accumulates every hit into its
  reference (Aggregator) with the final classification, and Finalize turns
  the accumulated state into a Report.

  Malformed input lines are skipped and counted; references whose length is
  unknown are left out of the results and listed as unresolved; an input with
  no hits yields a report with an empty result list.  None of these
  conditions stop the run.
*/
package abundance
