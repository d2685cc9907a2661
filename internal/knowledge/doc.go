// Package knowledge provides the per-course vector index and semantic
// search for uploaded course material.
//
// # Overview
//
// Each course owns one collection in an embedded, persistent vector
// database (chromem-go). Collections are created lazily on first write
// or first query and survive process restarts. Records are keyed by an
// id derived from (course, source file, chunk id), so re-uploading the
// same file with the same chunk boundaries replaces records in place
// instead of duplicating them.
//
// # Flow
//
//	Chunk records (text + source + chunk id)
//	     |
//	     v
//	Batch embedding (shared ai.Embedder)
//	     |
//	     v
//	Course collection (chromem-go, persisted on disk)
//	     |
//	     | (when searching)
//	     v
//	Query embedding -> nearest-neighbor query -> ranked passages
//
// # Namespaces
//
// ResolveCollection normalizes a human-entered course name into a valid
// collection identifier. The mapping is deliberately lossy: "CS 101"
// and "cs-101" share a collection. Callers depend on these collision
// groupings, so the normalization rules must not change.
//
// # Known behavior
//
// Re-indexing a document after changing the chunk size leaves old
// records whose chunk id exceeds the new chunk count. They keep being
// returned by searches until the collection is rebuilt.
package knowledge
