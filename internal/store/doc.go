// Package store persists processed videos in SQLite: metadata, raw cues,
// block boundaries, and embedded chunks. Saving a session replaces any
// prior data for the same video inside one transaction, and the chunk
// table doubles as a brute-force vector index for transcript search.
package store
