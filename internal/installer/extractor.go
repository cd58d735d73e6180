package installer

import (
	"archive/tar"    // .tar archives
	"archive/zip"    // .zip archives
	"compress/bzip2" // .bz2 compressed data
	"compress/gzip"  // .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // .7z archives
	"github.com/xi2/xz"          // .xz compressed data

	"termsetup/internal/logger"
)

// ExtractArchive extracts the archive at src into dest and returns the
// paths of every regular file written. Format is chosen by extension;
// Nerd Font bundles ship as .zip and .tar.xz, the rest is kept for parity
// with other release assets.
func ExtractArchive(src, dest string) ([]string, error) {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] Extracting zip archive %s\n", src)
		return extractZip(src, dest)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] Extracting 7z archive %s\n", src)
		return extract7z(src, dest)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] Extracting tar archive %s\n", src)
		return extractTarArchive(src, dest)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", src)
	}
}

// extractTarArchive handles tar and its compressed variants.
func extractTarArchive(src, dest string) ([]string, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		reader = xzr
	}

	var files []string
	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		target := filepath.Join(dest, hdr.Name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, err
			}
		case tar.TypeReg:
			if err := writeExtracted(target, tr); err != nil {
				return nil, err
			}
			files = append(files, target)
		}
	}
	return files, nil
}

// extractZip extracts a .zip archive.
func extractZip(src, dest string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var files []string
	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = writeExtracted(target, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, target)
	}
	return files, nil
}

// extract7z handles .7z extraction using the sevenzip library.
func extract7z(src, dest string) ([]string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	var files []string
	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode()); err != nil {
				return nil, err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = writeExtracted(target, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, target)
	}
	return files, nil
}

// writeExtracted writes one archive entry to target, creating parents.
func writeExtracted(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
