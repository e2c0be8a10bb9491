// Package cache stores segmentation results so a document only pays the
// LLM round trip once. An in-memory LRU fronts a zstd-compressed JSON
// store on disk; entries are keyed by the SHA-256 of the document text.
package cache
