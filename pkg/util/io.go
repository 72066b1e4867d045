package util

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// ReadLine reads one line without the trailing newline. The last line of a file may come without one.
func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// OpenFile opens filename for reading, decompressing it when the name ends in .bz2.
func OpenFile(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(filename, ".bz2") {
		return f, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &compressedFile{Reader: bz, file: f}, nil
}

type compressedFile struct {
	*bzip2.Reader
	file *os.File
}

func (c *compressedFile) Close() error {
	err := c.Reader.Close()
	if ferr := c.file.Close(); err == nil {
		err = ferr
	}
	return err
}
