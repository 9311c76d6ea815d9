package request

import (
	"bytes"
	"fmt"
	"math"
	"mime/multipart"
	"net/url"
	"reflect"
	"sort"

	"github.com/spf13/cast"
)

// Keep reports whether a field value is sent. False, nil, empty strings and
// NaN are dropped; every finite number, zero included, is kept.
func Keep(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return !math.IsNaN(x)
	case float32:
		return !math.IsNaN(float64(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return !rv.IsNil()
	}
	return true
}

// Fields returns the kept entries, stringified, in key order.
func Fields(data Data) ([]string, map[string]string, error) {
	keys := make([]string, 0, len(data))
	values := make(map[string]string, len(data))
	for k, v := range data {
		if !Keep(v) {
			continue
		}
		s, err := stringify(v)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", k, err)
		}
		keys = append(keys, k)
		values[k] = s
	}
	sort.Strings(keys)
	return keys, values, nil
}

// stringify renders infinities the way browsers do.
func stringify(v any) (string, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return cast.ToStringE(v)
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity", nil
	case math.IsInf(f, -1):
		return "-Infinity", nil
	}
	return cast.ToStringE(v)
}

// EncodeQuery serializes the kept entries as a query string.
func EncodeQuery(data Data) (string, error) {
	keys, values, err := Fields(data)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	for _, k := range keys {
		q.Set(k, values[k])
	}
	return q.Encode(), nil
}

// EncodeMultipart writes the kept entries as a multipart form. The body is
// produced even when no entries survive.
func EncodeMultipart(data Data) (*bytes.Buffer, string, error) {
	keys, values, err := Fields(data)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, k := range keys {
		if err := w.WriteField(k, values[k]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
