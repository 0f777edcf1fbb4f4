package vcf

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Open opens a sequential byte stream for the VCF at path.
// A ".gz" suffix selects gzip decompression; multi-member streams such as
// BGZF are read through to the end. The path "-" reads standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}

	gz, err := gzip.NewReader(bufio.NewReader(file))
	if err != nil {
		file.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	return &gzipFile{Reader: gz, file: file}, nil
}

// gzipFile closes both the decompressor and the file beneath it.
type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	gzErr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return gzErr
}
