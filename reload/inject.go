package reload

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

var scriptTag = []byte(`<script src="` + ClientPath + `"></script>`)

// Inject buffers HTML responses and appends the reload client script tag,
// ideally just before </body>. Non-HTML responses pass through unmodified.
// Only wrap handlers that produce bounded responses with it; streaming
// endpoints must stay outside.
func Inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &bufferingRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		body := rec.buf.Bytes()
		if isHTML(rec.Header().Get("Content-Type"), body) {
			body = injectTag(body)
		}

		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(rec.status())
		_, _ = w.Write(body)
	})
}

// bufferingRecorder shares the real header map with the wrapped writer but
// holds back status and body until the middleware decides what to send.
type bufferingRecorder struct {
	http.ResponseWriter
	code int
	buf  bytes.Buffer
}

func (r *bufferingRecorder) WriteHeader(status int) {
	if r.code == 0 {
		r.code = status
	}
}

func (r *bufferingRecorder) Write(b []byte) (int, error) {
	return r.buf.Write(b)
}

func (r *bufferingRecorder) status() int {
	if r.code == 0 {
		return http.StatusOK
	}
	return r.code
}

func isHTML(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return strings.Contains(contentType, "text/html")
}

// injectTag places the script tag before </body>, or appends it when no
// closing tag is present.
func injectTag(body []byte) []byte {
	idx := bytes.LastIndex(bytes.ToLower(body), []byte("</body>"))
	if idx < 0 {
		return append(body, scriptTag...)
	}

	out := make([]byte, 0, len(body)+len(scriptTag))
	out = append(out, body[:idx]...)
	out = append(out, scriptTag...)
	out = append(out, body[idx:]...)
	return out
}
