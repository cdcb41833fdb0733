package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// BundleFile describes one member of a test bundle. Names ending in "/" are
// written as directory entries.
type BundleFile struct {
	Name string
	Data []byte
}

// File is shorthand for a regular BundleFile with string content.
func File(name, content string) BundleFile {
	return BundleFile{Name: name, Data: []byte(content)}
}

// Dir is shorthand for a directory BundleFile.
func Dir(name string) BundleFile {
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}
	return BundleFile{Name: name}
}

// ZipBundle builds an in-memory zip archive.
func ZipBundle(t testing.TB, files ...BundleFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		if strings.HasSuffix(f.Name, "/") {
			if _, err := zw.Create(f.Name); err != nil {
				t.Fatalf("zip dir %q: %v", f.Name, err)
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("zip create %q: %v", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			t.Fatalf("zip write %q: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// TarBundle builds an uncompressed tar archive.
func TarBundle(t testing.TB, files ...BundleFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	writeTar(t, &buf, files)
	return buf.Bytes()
}

// TarGzipBundle builds a gzip-compressed tar archive.
func TarGzipBundle(t testing.TB, files ...BundleFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	writeTar(t, gz, files)
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

// TarZstdBundle builds a zstd-compressed tar archive.
func TarZstdBundle(t testing.TB, files ...BundleFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	writeTar(t, zw, files)
	if err := zw.Close(); err != nil {
		t.Fatalf("zstd close: %v", err)
	}
	return buf.Bytes()
}

func writeTar(t testing.TB, w io.Writer, files []BundleFile) {
	t.Helper()

	tw := tar.NewWriter(w)
	for _, f := range files {
		header := &tar.Header{Name: f.Name, Mode: 0o644, Size: int64(len(f.Data)), Typeflag: tar.TypeReg}
		if strings.HasSuffix(f.Name, "/") {
			header = &tar.Header{Name: f.Name, Mode: 0o755, Typeflag: tar.TypeDir}
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("tar header %q: %v", f.Name, err)
		}
		if len(f.Data) > 0 {
			if _, err := tw.Write(f.Data); err != nil {
				t.Fatalf("tar write %q: %v", f.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
}
