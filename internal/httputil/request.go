package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// maxJSONBody bounds JSON request bodies; uploads use multipart instead
const maxJSONBody = 1 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size and rejects unknown fields.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// QueryInt reads an integer query parameter, returning def when absent
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// QueryOptional returns a pointer to a query parameter, or nil when absent
func QueryOptional(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	v := r.URL.Query().Get(key)
	return &v
}

// QueryList splits a comma-separated query parameter, dropping blanks
func QueryList(r *http.Request, key string) []string {
	return SplitList(r.URL.Query().Get(key))
}

// SplitList splits a comma-separated value, dropping blanks
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
