package contracts

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// File is a binary attachment. Its presence in a request switches the
// encoding to multipart/form-data.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Attachments is implemented by requests that may carry files, keyed by
// form field name. Nil entries mean the file is absent.
type Attachments interface {
	Files() map[string]*File
}

// HasFiles reports whether v carries at least one attachment.
func HasFiles(v any) bool {
	a, ok := v.(Attachments)
	if !ok {
		return false
	}
	for _, f := range a.Files() {
		if f != nil {
			return true
		}
	}
	return false
}

func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// LoadFile reads path into a File, deriving the content type from the
// extension and falling back to content sniffing.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
