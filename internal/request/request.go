package request

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhdewitt/rig/internal/headers"
)

type requestState int

const (
	stateRequestLine requestState = iota
	stateHeaders
	stateBody
	stateDone
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrInvalidContentLength = errors.New("invalid Content-Length")
)

type Request struct {
	RequestLine RequestLine
	Headers     *headers.Headers
	// Body is the form-decoded body. It is empty unless Content-Length was sent.
	Body    url.Values
	RawBody []byte
	state   requestState
}

type RequestLine struct {
	Method  string
	Target  string
	Version string
}

func (r *Request) Method() string { return r.RequestLine.Method }
func (r *Request) Path() string   { return r.RequestLine.Target }

// Parse builds a Request from the bytes of a single read. Data past the
// declared Content-Length is ignored, and a short body is taken as is.
func Parse(data []byte) (*Request, error) {
	r := &Request{
		Headers: headers.NewHeaders(),
		Body:    url.Values{},
		state:   stateRequestLine,
	}

	for r.state != stateDone {
		n, err := r.parse(data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}

	return r, nil
}

func (r *Request) parse(data []byte) (int, error) {
	switch r.state {
	case stateRequestLine:
		n, rl, err := parseRequestLine(data)
		if err != nil {
			return 0, err
		}
		r.RequestLine = rl
		r.state = stateHeaders
		return n, nil
	case stateHeaders:
		n, done := r.Headers.Parse(data)
		if done {
			r.state = stateBody
			return n, nil
		}
		if n == 0 {
			// Truncated read: whatever is left is a final header line.
			r.Headers.ParseLine(bytes.TrimSuffix(data, []byte("\r")))
			r.state = stateBody
			return len(data), nil
		}
		return n, nil
	case stateBody:
		if err := r.parseBody(data); err != nil {
			return 0, err
		}
		r.state = stateDone
		return len(data), nil
	case stateDone:
		return 0, fmt.Errorf("error: trying to read data in a done state")
	default:
		return 0, fmt.Errorf("error: unknown state")
	}
}

func (r *Request) parseBody(data []byte) error {
	v, ok := r.Headers.Lookup("Content-Length")
	if !ok {
		return nil
	}
	cl, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || cl < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidContentLength, v)
	}
	if cl < len(data) {
		data = data[:cl]
	}
	r.RawBody = bytes.Clone(data)
	r.Body = ParseForm(string(r.RawBody))
	return nil
}

func parseRequestLine(data []byte) (int, RequestLine, error) {
	consumed := len(data)
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx != -1 {
		line = data[:idx]
		consumed = idx + 1
	}
	line = bytes.TrimSuffix(line, []byte("\r"))

	parts := strings.Fields(string(line))
	if len(parts) != 3 {
		return 0, RequestLine{}, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	return consumed, RequestLine{
		Method:  parts[0],
		Target:  parts[1],
		Version: parts[2],
	}, nil
}
