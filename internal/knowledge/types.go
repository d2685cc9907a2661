package knowledge

// Record is one unit of course material to index: a chunk of extracted
// text together with its provenance.
type Record struct {
	// Source is the file name the text was extracted from.
	Source string

	// ChunkID is the 0-based position of the chunk within its
	// document's chunk sequence.
	ChunkID int

	// Text is the chunk content. Must be non-empty.
	Text string
}

// RetrievedChunk is a query-time result. It is never persisted.
type RetrievedChunk struct {
	// Text is the stored chunk content.
	Text string `json:"text"`

	// Source is the file the chunk came from.
	Source string `json:"source"`

	// Distance is the cosine distance (1 - similarity) between the
	// query and the chunk. Lower means more similar.
	Distance float32 `json:"distance"`
}
