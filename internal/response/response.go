package response

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nhdewitt/rig/internal/headers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func WriteStatusLine(w io.Writer, statusCode StatusCode) error {
	reason := statusCode.Reason()
	if reason == "" {
		return fmt.Errorf("unsupported status code: %d", statusCode)
	}
	_, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", statusCode, reason)
	return err
}

func GetDefaultHeaders(contentLen int) *headers.Headers {
	h := headers.NewHeaders()
	h.Set("Content-Length", strconv.Itoa(contentLen))
	h.Set("Connection", "close")
	h.Set("Content-Type", "text/plain")
	h.Set("Date", time.Now().UTC().Format(time.RFC1123))

	return h
}

// WriteHeaders writes h in insertion order followed by the blank line. A nil
// h writes only the blank line.
func WriteHeaders(w io.Writer, h *headers.Headers) error {
	caser := cases.Title(language.English)
	for k, v := range h.All() {
		line := caser.String(k) + ": " + v
		_, err := w.Write([]byte(line + "\r\n"))
		if err != nil {
			return fmt.Errorf("error writing header: %v", err)
		}
	}
	_, err := w.Write([]byte("\r\n"))
	return err
}

// Build assembles a complete response. Nothing is added beyond what the
// caller passes in, so a nil h gives "HTTP/1.1 <code> <reason>\r\n\r\n<body>".
func Build(statusCode StatusCode, h *headers.Headers, body []byte) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteStatusLine(statusCode); err != nil {
		panic(err)
	}
	// Writes into a bytes.Buffer cannot fail.
	_ = w.WriteHeaders(h)
	_, _ = w.WriteBody(body)
	return buf.Bytes()
}

func OK(body []byte) []byte {
	return Build(StatusOK, nil, body)
}

func BadRequest() []byte {
	return Build(StatusBadRequest, nil, []byte("Bad Request"))
}

func Forbidden() []byte {
	return Build(StatusForbidden, nil, []byte("Forbidden"))
}

func NotFound() []byte {
	return Build(StatusNotFound, nil, []byte("Page not found"))
}

func MethodNotAllowed() []byte {
	return Build(StatusMethodNotAllowed, nil, []byte("Method not allowed"))
}

func InternalServerError() []byte {
	return Build(StatusInternalServerError, nil, []byte("Internal Server Error"))
}

func ServiceUnavailable() []byte {
	return Build(StatusServiceUnavailable, nil, []byte("Service Unavailable"))
}
