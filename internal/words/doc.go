// Package words holds the word-of-the-day collection.
//
// A Collection is an immutable, date-ordered sequence of Word records
// loaded once from a data file. It exposes lookups by date, by name
// (case-insensitive), by sequential id and by slug, where a slug is either
// an 8-digit YYYYMMDD date or a word name.
//
// # Invariants
//
//   - ids form the contiguous run 1..N
//   - dates are unique and strictly increase in id order
//   - word names are unique ignoring case
//
// Violations are data-quality bugs reported by the dataset package; the
// Collection still builds and lookups stay total. Duplicates resolve to
// the first record in stored order.
//
// Not-found is never an error. Every lookup returns (Word, bool) and
// callers check the bool.
package words
