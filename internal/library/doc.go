// Package library implements the in-memory playlist data model.
//
// A [Library] is an explicit session context owning one user's playlist
// collection plus the "current playlist" selection. All mutations happen
// here first; persistence is the caller's concern (see internal/tasks).
//
// There is a single writer per Library (the user-driven event path), so no
// locking is performed.
package library
