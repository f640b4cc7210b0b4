package gemini

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"
)

// errorBodyTransport unwraps the list-shaped error bodies Gemini sometimes sends,
// [{"error": {...}}], into the {"error": {...}} object the OpenAI client can decode.
type errorBodyTransport struct {
	next http.RoundTripper
}

func (t *errorBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode < http.StatusBadRequest {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if first := gjson.GetBytes(body, "0"); gjson.ValidBytes(body) && first.IsObject() && first.Get("error").Exists() {
		body = []byte(first.Raw)
		resp.ContentLength = int64(len(body))
		resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
