package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"eventgallery/internal/contracts"

	"github.com/gin-gonic/gin"
)

// IsMultipart reports whether the body is a multipart form.
func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// FormFile reads an uploaded file into memory. A missing field yields nil
// without error.
func FormFile(c *gin.Context, field string) (*contracts.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read form file %q: %w", field, err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file %q: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read form file %q: %w", field, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &contracts.File{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// FormString returns a pointer to the field value, or nil when absent.
func FormString(c *gin.Context, field string) *string {
	if v, ok := c.GetPostForm(field); ok {
		return &v
	}
	return nil
}

// FormBool parses an optional boolean field.
func FormBool(c *gin.Context, field string) (*bool, error) {
	v, ok := c.GetPostForm(field)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	return &b, nil
}

// FormInt parses an optional integer field.
func FormInt(c *gin.Context, field string) (*int, error) {
	v, ok := c.GetPostForm(field)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	return &n, nil
}
