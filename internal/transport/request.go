package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/ganot/issue-tracker/internal/resource"
)

const maxBodyBytes = 1 << 20

// queryParams flattens the query string, keeping the first value per key.
func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// decodeFields reads a JSON object or urlencoded form body. A body that
// cannot be read or parsed yields no fields.
func decodeFields(r *http.Request) resource.Fields {
	fields := resource.Fields{}
	if r.Body == nil {
		return fields
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return fields
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return fields
		}
		for key, vals := range values {
			if len(vals) > 0 {
				fields[key] = vals[0]
			}
		}
		return fields
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fields
	}
	for key, value := range raw {
		if value != nil {
			fields[key] = value
		}
	}
	return fields
}
