package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
	encodingLZ4        = "lz4"
)

// responseType picks MessagePack when the client lists it in Accept,
// JSON otherwise
func responseType(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mediaType == contentTypeMsgpack || mediaType == "application/x-msgpack" {
			return contentTypeMsgpack
		}
	}
	return contentTypeJSON
}

// acceptsLZ4 reports whether the client asked for lz4 framed bodies
func acceptsLZ4(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.EqualFold(coding, encodingLZ4) {
			return true
		}
	}
	return false
}

// writeResponse encodes v in the representation negotiated with r
func writeResponse(w http.ResponseWriter, r *http.Request, statusCode int, v interface{}) {
	writeBody(w, responseType(r), acceptsLZ4(r), statusCode, v)
}

func writeBody(w http.ResponseWriter, contentType string, compress bool, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Add("Vary", "Accept, Accept-Encoding")

	var body io.Writer = w
	var zw *lz4.Writer
	if compress {
		w.Header().Set("Content-Encoding", encodingLZ4)
		zw = lz4.NewWriter(w)
		body = zw
	}
	w.WriteHeader(statusCode)

	// The status line is already sent; an encoding failure can only truncate the body.
	_ = newEncoder(contentType, body).Encode(v)
	if zw != nil {
		_ = zw.Close()
	}
}

type encoder interface {
	Encode(v interface{}) error
}

func newEncoder(contentType string, w io.Writer) encoder {
	if contentType == contentTypeMsgpack {
		return msgpack.NewEncoder(w)
	}
	return json.NewEncoder(w)
}

// decodeBody decodes the request body as MessagePack when the client says
// so, as JSON otherwise
func decodeBody(r *http.Request, v interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	switch mediaType {
	case contentTypeMsgpack, "application/x-msgpack":
		err = msgpack.NewDecoder(r.Body).Decode(v)
	default:
		err = json.NewDecoder(r.Body).Decode(v)
	}
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
