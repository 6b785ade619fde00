package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// artifactWriteParams bundles the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string // output file (single format) or base path (multiple)
	base      string // fallback base name when output is empty
	cacheHit  bool
}

// writeArtifacts writes every rendered format to disk and prints a
// summary. A single format goes to the output path directly; multiple
// formats get the format appended as extension.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.base)

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		var path string
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		} else {
			path = fmt.Sprintf("%s.%s", base, format)
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path, p.cacheHit)
	}
	return nil
}

// basePath derives the base output path. If output is empty, base is
// used. If output carries a format extension, it is stripped.
func basePath(output, base string) string {
	if output == "" {
		return base
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if ext != "" {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
