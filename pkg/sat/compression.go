package sat

import (
	"compress/bzip2"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

type decompressor func(io.Reader) (io.Reader, error)

var decompressors = map[string]decompressor{
	".gz": func(reader io.Reader) (io.Reader, error) {
		return gzip.NewReader(reader)
	},
	".bz2": func(reader io.Reader) (io.Reader, error) {
		return bzip2.NewReader(reader), nil
	},
	".xz": func(reader io.Reader) (io.Reader, error) {
		return xz.NewReader(reader)
	},
	".lzma": func(reader io.Reader) (io.Reader, error) {
		return lzma.NewReader(reader)
	},
}

// compressedFile closes both the decoder (when it is closable) and the underlying file
type compressedFile struct {
	io.Reader
	file *os.File
}

// Close returns the decoder's error first, the file is closed either way
func (f *compressedFile) Close() error {
	var err error
	if closer, ok := f.Reader.(io.Closer); ok {
		err = closer.Close()
	}
	if fileErr := f.file.Close(); err == nil {
		err = fileErr
	}
	return err
}

func openCompressed(fileName string) (io.ReadCloser, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "could not open file")
	}

	for suffix, decompress := range decompressors {
		if !strings.HasSuffix(fileName, suffix) {
			continue
		}
		reader, err := decompress(file)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "cannot decompress %q", fileName)
		}
		return &compressedFile{Reader: reader, file: file}, nil
	}
	return file, nil
}
