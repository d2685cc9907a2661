// Package rag wires the document pipeline together: PDF extraction,
// chunking, embedding and per-course vector search.
//
// Write path:
//
//	PDF -> extract.Extractor -> chunk.Splitter -> knowledge.Store
//
// Read path:
//
//	query -> knowledge.Store.Search -> ranked passages with sources
//
// System is the single entry point consumed by the HTTP handlers and
// the CLI. It holds no per-request state; one System serves the whole
// process and is safe for concurrent use.
package rag
