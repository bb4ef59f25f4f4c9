package source

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	lsio "github.com/TimelordUK/logsift/internal/io"
)

// ErrEmptyArchive is returned when an archive holds no readable log member
var ErrEmptyArchive = errors.New("archive contains no regular file")

// DetectFormat picks the container format from the file extension
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(name, ".gz"):
		return FormatGzip
	case strings.HasSuffix(name, ".zst"):
		return FormatZstd
	case strings.HasSuffix(name, ".zip"):
		return FormatZip
	case strings.HasSuffix(name, ".tar"):
		return FormatTar
	default:
		return FormatPlain
	}
}

// extractedNotice is the synthetic first line for archive members
func extractedNotice(member, archive string) string {
	return fmt.Sprintf("[logsift] extracted %q from %q", member, filepath.Base(archive))
}

// readRaw returns the undecoded bytes of the log and the archive member used
func readRaw(path string, format Format) ([]byte, string, error) {
	switch format {
	case FormatGzip:
		data, err := readGzip(path)
		return data, "", err
	case FormatZstd:
		data, err := readZstd(path)
		return data, "", err
	case FormatZip:
		return readZip(path)
	case FormatTar:
		f, err := os.Open(path)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		return readTar(f)
	case FormatTarGz:
		f, err := os.Open(path)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, "", errors.Wrap(err, "open gzip stream")
		}
		defer zr.Close()
		return readTar(zr)
	default:
		data, err := readPlain(path)
		return data, "", err
	}
}

func readPlain(path string) ([]byte, error) {
	file, err := lsio.OpenMapped(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.ReadAll()
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "open gzip stream")
	}
	defer zr.Close()
	zr.Multistream(false)

	data, err := io.ReadAll(zr)
	return data, errors.Wrap(err, "decompress gzip")
}

func readZstd(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "open zstd stream")
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	return data, errors.Wrap(err, "decompress zstd")
}

// readZip takes the first entry in listing order
func readZip(path string) ([]byte, string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "open zip archive")
	}
	defer zr.Close()

	if len(zr.File) == 0 {
		return nil, "", ErrEmptyArchive
	}
	first := zr.File[0]

	rc, err := first.Open()
	if err != nil {
		return nil, "", errors.Wrapf(err, "open member %s", first.Name)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read member %s", first.Name)
	}
	return data, first.Name, nil
}

// readTar takes the first regular file, skipping directories and links
func readTar(r io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, "", ErrEmptyArchive
		}
		if err != nil {
			return nil, "", errors.Wrap(err, "read tar archive")
		}
		if !hdr.FileInfo().Mode().IsRegular() {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, "", errors.Wrapf(err, "read member %s", hdr.Name)
		}
		return data, hdr.Name, nil
	}
}
