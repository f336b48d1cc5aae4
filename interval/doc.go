/*Package interval implements an interval-union optimized for accumulating
  alignment spans against a reference sequence.
  (Note the 'union'.  Overlapping and abutting intervals are merged, not
  tracked separately, so Len() is the number of distinct positions covered.)
  Coordinates are 0-based and half-open, i.e. [start, end), as in BED files.
  Memory use is proportional to the number of disjoint runs, not to the
  length of the reference.
*/
package interval
