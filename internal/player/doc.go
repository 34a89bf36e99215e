// Package player sequences playback of a song queue across two media
// backends. The queue is an ephemeral snapshot of whatever filtered and
// sorted view the caller was looking at when playback started; it is never
// persisted.
package player
