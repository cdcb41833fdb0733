// Package archive expands and builds file bundles.
//
// A bundle is a zip or tar archive (optionally gzip or zstd compressed) holding
// zero or more named entries. Expansion is lazy: each entry is decompressed
// only when the consumer of the returned sequence reaches it. Directory entries
// are never yielded.
//
// Two failure levels exist:
//   - FormatError: the bundle itself cannot be parsed; nothing useful follows.
//   - EntryError: one entry cannot be decompressed; the consumer decides
//     whether to stop or skip it.
//
// Compression is handled by github.com/klauspost/compress.
package archive
