// Package models defines domain entities and persistence interfaces for the Mixtape playlist manager.
//
// The package contains two categories of types:
//
// 1. Flat-file records, serialized wholesale to the JSON backing store:
//   - [User] : Account record owning an ordered playlist collection
//   - [Playlist] : Named, ordered collection of songs, unique per user
//   - [Song] : Tagged union of a remote video and a locally uploaded audio file
//
// 2. Persistent entities backed by the sqlite metadata cache:
//   - [Video] : Video metadata DTO returned by the search service
//   - [PersistedVideo] : Cached video metadata with lifecycle management
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
