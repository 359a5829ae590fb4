// Package aggregate accumulates per-document extraction results into the
// corpus-wide indexes written at the end of a run.
//
// Flat maps a document path to its parsed payload. TagIndex is bidirectional:
// tag to the documents carrying it, and document path to its tags. Neither
// de-duplicates; a tag repeated inside one marker is recorded twice.
package aggregate
