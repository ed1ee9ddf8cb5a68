package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"eventgallery/internal/contracts"
	"eventgallery/internal/shared/constants"
)

// request describes one call. Body is encoded as JSON unless it carries a
// non-nil attachment, in which case it is sent as multipart/form-data.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	header http.Header
}

// rawEnvelope keeps Success optional so a JSON body that is not an envelope
// can be told apart from one that declares failure.
type rawEnvelope struct {
	Success *bool               `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *contracts.APIError `json:"error"`
}

// do is the request primitive behind every typed method. It never returns
// a Go error: transport, parse and HTTP failures are folded into the
// envelope.
func do[T any](ctx context.Context, c *Client, r request) contracts.Envelope[T] {
	start := time.Now()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return networkFailure[T](err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.LogTransportFailure(ctx, r.method, r.path, err)
		return networkFailure[T](err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate(ctx, r.path)
	}

	body, err := io.ReadAll(resp.Body)
	c.log.LogOutboundRequest(ctx, r.method, r.path, resp.StatusCode, time.Since(start))
	if err != nil {
		c.log.LogTransportFailure(ctx, r.method, r.path, err)
		return networkFailure[T](err)
	}

	return normalize[T](resp.StatusCode, statusText(resp), body)
}

// normalize turns any status and body into a coherent envelope.
func normalize[T any](status int, text string, body []byte) contracts.Envelope[T] {
	ok := status >= 200 && status < 300

	if !json.Valid(body) {
		return failure[T](contracts.ErrorKindParse, constants.MsgInvalidJSONReply, status)
	}
	// Valid JSON that is not an object is treated as a non-envelope.
	var raw rawEnvelope
	_ = json.Unmarshal(body, &raw)

	declaredFailure := raw.Success != nil && !*raw.Success
	if !ok && !declaredFailure {
		return failure[T](contracts.ErrorKindHTTP, fmt.Sprintf("HTTP %d: %s", status, text), status)
	}

	if raw.Success == nil {
		return failure[T](contracts.ErrorKindParse, "Malformed response envelope from server", status)
	}

	if declaredFailure {
		apiErr := raw.Error
		if apiErr == nil {
			kind := contracts.ErrorKindParse
			if !ok {
				kind = contracts.ErrorKindHTTP
			}
			apiErr = &contracts.APIError{Kind: kind, Message: fmt.Sprintf("HTTP %d: %s", status, text)}
		}
		if apiErr.StatusCode == 0 {
			apiErr.StatusCode = status
		}
		return contracts.Fail[T](apiErr)
	}

	env := contracts.Envelope[T]{Success: true}
	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		var data T
		if err := json.Unmarshal(raw.Data, &data); err != nil {
			return failure[T](contracts.ErrorKindParse, constants.MsgInvalidJSONReply, status)
		}
		env.Data = &data
	}
	return env
}

func failure[T any](kind, message string, status int) contracts.Envelope[T] {
	return contracts.Fail[T](&contracts.APIError{Kind: kind, Message: message, StatusCode: status})
}

func networkFailure[T any](err error) contracts.Envelope[T] {
	message := "Network request failed"
	if err != nil {
		message = err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		message = "Request timed out: " + message
	}
	return failure[T](contracts.ErrorKindNetwork, message, 0)
}

// statusText prefers the reason phrase the server sent.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var (
		body        io.Reader
		contentType = "application/json"
	)
	if r.body != nil {
		if contracts.HasFiles(r.body) {
			buf, ct, err := encodeMultipart(r.body)
			if err != nil {
				return nil, err
			}
			body, contentType = buf, ct
		} else {
			data, err := json.Marshal(r.body)
			if err != nil {
				return nil, fmt.Errorf("encode request body: %w", err)
			}
			body = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for _, h := range []http.Header{c.headers, r.header} {
		for key, values := range h {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// encodeMultipart writes the JSON fields of payload as form values and its
// attachments as file parts. The returned content type carries the
// boundary; no caller-supplied Content-Type is kept.
func encodeMultipart(payload any) (*bytes.Buffer, string, error) {
	fields, err := formFields(payload)
	if err != nil {
		return nil, "", err
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", f.name, err)
		}
	}

	files := payload.(contracts.Attachments).Files()
	for _, name := range slices.Sorted(maps.Keys(files)) {
		file := files[name]
		if file == nil {
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(name), escapeQuotes(file.Name)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(file.Data)
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", name, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

type formField struct {
	name  string
	value string
}

// formFields flattens the JSON form of payload. Nulls are skipped, strings
// are sent verbatim and everything else in its JSON text form.
func formFields(payload any) ([]formField, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode form fields: %w", err)
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("form payload must be an object: %w", err)
	}

	fields := make([]formField, 0, len(values))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		raw := values[name]
		if bytes.Equal(raw, []byte("null")) {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			fields = append(fields, formField{name: name, value: s})
			continue
		}
		fields = append(fields, formField{name: name, value: string(raw)})
	}
	return fields, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
