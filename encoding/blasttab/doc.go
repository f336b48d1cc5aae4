// Package blasttab reads the tabular ("outfmt 6") alignment output written by
// BLAST and DIAMOND.  Each line describes one hit of a query read against a
// reference (subject) sequence; the column order is configurable through
// Layout.
//
// Example:
//
//   sc := blasttab.NewScanner(r, blasttab.DiamondLayout)
//   var h alignment.Hit
//   for sc.Scan(&h) {
//     ...
//   }
//   if err := sc.Err(); err != nil {
//     ...
//   }
//   log.Printf("%d malformed lines", sc.Counts().Malformed)
package blasttab
