package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLineParse(t *testing.T) {
	cases := []struct {
		data                            string
		wantMethod, wantTarget, wantVer string
	}{
		{"GET / HTTP/1.1\r\nHost: x\r\n\r\n", "GET", "/", "HTTP/1.1"},
		{"GET /coffee HTTP/1.1\r\nHost: x\r\n\r\n", "GET", "/coffee", "HTTP/1.1"},
		{"POST /submit HTTP/1.0\nHost: x\n\n", "POST", "/submit", "HTTP/1.0"},
		{"DELETE /x?y=1 HTTP/1.1", "DELETE", "/x?y=1", "HTTP/1.1"},
	}
	for _, c := range cases {
		r, err := Parse([]byte(c.data))
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, c.wantMethod, r.Method())
		assert.Equal(t, c.wantTarget, r.Path())
		assert.Equal(t, c.wantVer, r.RequestLine.Version)
	}

	for _, bad := range []string{
		"/coffee HTTP/1.1\r\nHost: x\r\n\r\n",
		"GET\r\n\r\n",
		"GET /coffee HTTP/1.1 extra\r\n\r\n",
		"\r\n",
		"",
	} {
		_, err := Parse([]byte(bad))
		require.ErrorIs(t, err, ErrMalformedRequestLine, "input %q", bad)
	}
}

func TestParseHeaders(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: localhost:8080\r\nUser-Agent: curl/8.0\r\nbogus line\r\nHost: example.com\r\n\r\n"
	r, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "example.com", r.Headers.Get("Host"))
	assert.Equal(t, "curl/8.0", r.Headers.Get("user-agent"))
	assert.Equal(t, 2, r.Headers.Len())
	assert.Empty(t, r.Body)
}

func TestParseTruncatedHeaders(t *testing.T) {
	r, err := Parse([]byte("GET / HTTP/1.1\r\nHost: x\r\nAccept: text/ht"))
	require.NoError(t, err)
	assert.Equal(t, "x", r.Headers.Get("host"))
	assert.Equal(t, "text/ht", r.Headers.Get("accept"))
}

func TestParseFormBody(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\n" +
		"Content-Type: application/x-www-form-urlencoded\r\n" +
		"Content-Length: 15\r\n" +
		"\r\n" +
		"username=Alice"
	r, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, url.Values{"username": {"Alice"}}, r.Body)
	assert.Equal(t, []byte("username=Alice"), r.RawBody)
}

func TestParseBodyTruncatedToContentLength(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nContent-Length: 3\r\n\r\na=1&b=2"
	r, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, url.Values{"a": {"1"}}, r.Body)
	assert.Equal(t, []byte("a=1"), r.RawBody)
}

func TestParseBodyWithoutContentLength(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nHost: x\r\n\r\na=1"
	r, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, r.Body)
	assert.Nil(t, r.RawBody)
}

func TestParseInvalidContentLength(t *testing.T) {
	for _, cl := range []string{"abc", "-1", ""} {
		raw := "POST / HTTP/1.1\r\nContent-Length: " + cl + "\r\n\r\na=1"
		_, err := Parse([]byte(raw))
		require.ErrorIs(t, err, ErrInvalidContentLength, "Content-Length %q", cl)
	}
}

func TestParseForm(t *testing.T) {
	cases := []struct {
		body string
		want url.Values
	}{
		{"a=1&a=2", url.Values{"a": {"1", "2"}}},
		{"name=John+Doe&city=New%20York", url.Values{"name": {"John Doe"}, "city": {"New York"}}},
		{"flag&empty=&x=1", url.Values{"x": {"1"}}},
		{"bad=%zz+1", url.Values{"bad": {"%zz 1"}}},
		{`{"json": true}`, url.Values{}},
		{"", url.Values{}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseForm(c.body), "body %q", c.body)
	}
}
