// Package cache provides an LRU cache for small immutable blobs.
//
// The table store keeps recently read metadata records here so that listing
// and inspecting tables does not go back to the blob store every time.
package cache
