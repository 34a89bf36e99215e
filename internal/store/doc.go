// Package store implements the flat-file user store.
//
// All user records live in a single JSON file with read-all/write-all
// semantics: every mutation reads the whole file, modifies the slice in
// memory, and rewrites the file. There are no transactions and no
// indexing; a mutex serializes read-modify-write cycles within this
// process. Concurrent writers from other processes are last-write-wins.
package store
