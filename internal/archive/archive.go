package archive

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Entry is one file inside a bundle.
type Entry struct {
	Name string
	Data []byte
}

// Format identifies a bundle encoding.
type Format int

const (
	FormatZip Format = iota
	FormatTar
	FormatTarGzip
	FormatTarZstd
)

// String returns the conventional extension-style name of the format.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGzip:
		return "tar.gz"
	case FormatTarZstd:
		return "tar.zst"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// suffixes maps filename suffixes to formats, longest first.
var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGzip},
	{".tar.zst", FormatTarZstd},
	{".tgz", FormatTarGzip},
	{".tzst", FormatTarZstd},
	{".tar", FormatTar},
	{".zip", FormatZip},
}

// DetectFormat infers the bundle format from a filename extension,
// case-insensitively.
func DetectFormat(name string) (Format, bool) {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format, true
		}
	}
	return 0, false
}

// IsArchive reports whether name looks like a bundle this package can expand.
func IsArchive(name string) bool {
	_, ok := DetectFormat(name)
	return ok
}

// Expand parses a zip bundle and returns its file entries.
func Expand(bundle []byte) (iter.Seq2[Entry, error], error) {
	return ExpandFormat(FormatZip, bundle)
}

// ExpandFormat parses bundle in the given format and returns a lazy sequence
// of its file entries in the bundle's own order.
//
// A bundle that cannot be parsed returns a *FormatError. For tar streams a
// corrupt header may only be found part way through; it is then yielded as a
// *FormatError and the sequence ends. A single unreadable entry is yielded as
// an *EntryError and the sequence continues with the next entry.
func ExpandFormat(format Format, bundle []byte) (iter.Seq2[Entry, error], error) {
	switch format {
	case FormatZip:
		return expandZip(bundle)
	case FormatTar, FormatTarGzip, FormatTarZstd:
		return expandTar(format, bundle)
	default:
		return nil, &FormatError{Format: format, Err: errors.New("unsupported format")}
	}
}

func expandZip(bundle []byte) (iter.Seq2[Entry, error], error) {
	reader, err := zip.NewReader(bytes.NewReader(bundle), int64(len(bundle)))
	if err != nil {
		return nil, &FormatError{Format: FormatZip, Err: err}
	}

	return func(yield func(Entry, error) bool) {
		for _, file := range reader.File {
			if file.FileInfo().IsDir() || strings.HasSuffix(file.Name, "/") {
				continue
			}

			data, err := readZipFile(file)
			if err != nil {
				if !yield(Entry{Name: file.Name}, &EntryError{Name: file.Name, Err: err}) {
					return
				}
				continue
			}

			if !yield(Entry{Name: file.Name, Data: data}, nil) {
				return
			}
		}
	}, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func expandTar(format Format, bundle []byte) (iter.Seq2[Entry, error], error) {
	var (
		stream  io.Reader = bytes.NewReader(bundle)
		closeFn           = func() {}
	)

	switch format {
	case FormatTarGzip:
		gz, err := gzip.NewReader(stream)
		if err != nil {
			return nil, &FormatError{Format: format, Err: err}
		}
		stream = gz
		closeFn = func() { gz.Close() }
	case FormatTarZstd:
		zr, err := zstd.NewReader(stream)
		if err != nil {
			return nil, &FormatError{Format: format, Err: err}
		}
		stream = zr
		closeFn = zr.Close
	}

	return func(yield func(Entry, error) bool) {
		defer closeFn()

		tr := tar.NewReader(stream)
		for {
			header, err := tr.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Entry{}, &FormatError{Format: format, Err: err})
				return
			}

			if header.Typeflag != tar.TypeReg {
				continue
			}

			data, err := io.ReadAll(tr)
			if err != nil {
				// The stream position is undefined after a short read, so the
				// remaining entries cannot be trusted either.
				yield(Entry{Name: header.Name}, &EntryError{Name: header.Name, Err: err})
				return
			}

			if !yield(Entry{Name: header.Name, Data: data}, nil) {
				return
			}
		}
	}, nil
}

// Collect drains a sequence into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Entry, error]) ([]Entry, error) {
	entries := []Entry{}
	for entry, err := range seq {
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Encode writes entries into a deflate-compressed zip bundle in the given
// order. Duplicate names are kept as separate entries.
func Encode(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   entry.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("encode %q: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("encode: finish bundle: %w", err)
	}
	return buf.Bytes(), nil
}
