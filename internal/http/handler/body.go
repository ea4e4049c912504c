package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
)

// fields is a JSON object body whose values are checked one by one, so a client
// learns which property is missing or mistyped.
type fields map[string]json.RawMessage

func parseFields(c *fiber.Ctx) (fields, error) {
	f := fields{}
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(c.Body(), &f); err != nil {
		return nil, unprocessable("request body has to be a JSON object")
	}
	return f, nil
}

func (f fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f fields) set(key string) bool {
	raw, ok := f[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (f fields) decode(key, kind string, out any) error {
	if !f.set(key) {
		return unprocessable("%s is not set", key)
	}
	if err := json.Unmarshal(f[key], out); err != nil {
		return unprocessable("%s has to be of type %s", key, kind)
	}
	return nil
}

func (f fields) str(key string) (string, error) {
	var s string
	return s, f.decode(key, "string", &s)
}

func (f fields) boolean(key string) (bool, error) {
	var b bool
	return b, f.decode(key, "boolean", &b)
}

func (f fields) number(key string) (float64, error) {
	var n float64
	return n, f.decode(key, "number", &n)
}

// integer reads a number and saturates it to the int32 range before converting,
// so huge values keep their sign.
func (f fields) integer(key string) (int, error) {
	n, err := f.number(key)
	if err != nil {
		return 0, err
	}
	switch {
	case math.IsNaN(n):
		return 0, unprocessable("%s has to be of type number", key)
	case n > math.MaxInt32:
		return math.MaxInt32, nil
	case n < math.MinInt32:
		return math.MinInt32, nil
	}
	return int(n), nil
}

// maxMillis is the largest millisecond count a time.Duration holds.
const maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))

// millis reads a millisecond count. Values beyond the time.Duration range
// saturate instead of wrapping around.
func (f fields) millis(key string) (time.Duration, error) {
	ms, err := f.number(key)
	if err != nil {
		return 0, err
	}
	switch {
	case math.IsNaN(ms):
		return 0, unprocessable("%s has to be of type number", key)
	case ms >= maxMillis:
		return time.Duration(math.MaxInt64), nil
	case ms <= -maxMillis:
		return time.Duration(math.MinInt64), nil
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// optionalStr returns "" for a missing or null key.
func (f fields) optionalStr(key string) (string, error) {
	if !f.set(key) {
		return "", nil
	}
	return f.str(key)
}

// array decodes key into out, which must point to a slice.
func (f fields) array(key string, out any) error {
	if !f.set(key) {
		return unprocessable("%s is not set", key)
	}
	raw := bytes.TrimSpace(f[key])
	if len(raw) == 0 || raw[0] != '[' {
		return unprocessable("%s has to be an array", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return unprocessable("%s contains invalid entries", key)
	}
	return nil
}
