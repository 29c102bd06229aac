package source

import (
	"fmt"
	"os"
	"slices"

	"fortio.org/safecast"
)

// FileFlags encodes metadata about a source file.
type FileFlags uint8

const (
	// FileVirtual indicates the file was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is the content of one source file after input normalization.
type File struct {
	Path    string
	Content []byte
	Flags   FileFlags
}

// Load reads a source file from disk, stripping a UTF-8 BOM and
// normalizing CRLF line endings so positions count logical lines.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return newFile(path, content), nil
}

// NewVirtual wraps in-memory content (tests, stdin) as a File.
func NewVirtual(path string, content []byte) *File {
	f := newFile(path, content)
	f.Flags |= FileVirtual
	return f
}

func newFile(path string, content []byte) *File {
	f := &File{Path: path}
	content, hadBOM := removeBOM(content)
	if hadBOM {
		f.Flags |= FileHadBOM
	}
	content, changed := normalizeCRLF(content)
	if changed {
		f.Flags |= FileNormalizedCRLF
	}
	f.Content = content
	return f
}

// Len returns the content length as uint32.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	return n
}

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}
