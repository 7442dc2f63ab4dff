package files

import (
	"fmt"
	"io"
	"os"

	"github.com/teichholz/go-rope/rope"
	"github.com/tidwall/mmap"
)

// Read maps the file at path and cuts its contents into a rope with leaves of
// at most maxLeaf runes. An empty file yields the empty rope.
func Read(path string, maxLeaf int) (*rope.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	data, err := mmap.Open(path, false)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	defer mmap.Close(data)

	writer := rope.Writer(maxLeaf)
	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	return writer.Rope(), nil
}

// Write replaces the file at path with everything read from buffer.
func Write(path string, buffer io.Reader) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = io.Copy(file, buffer); err != nil {
		return err
	}
	return file.Sync()
}
