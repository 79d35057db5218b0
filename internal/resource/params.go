package resource

import (
	"time"

	"github.com/spf13/cast"
)

// Params is the string-keyed configuration a resource receives when it is
// initialized.
type Params map[string]any

// Has reports whether key is set to a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the value of key as a string, or def when it is unset or
// cannot be converted.
func (p Params) String(key, def string) string {
	if !p.Has(key) {
		return def
	}
	s, err := cast.ToStringE(p[key])
	if err != nil {
		return def
	}
	return s
}

// Int64 returns the value of key as an int64, or def.
func (p Params) Int64(key string, def int64) int64 {
	if !p.Has(key) {
		return def
	}
	n, err := cast.ToInt64E(p[key])
	if err != nil {
		return def
	}
	return n
}

// Bool returns the value of key as a bool, or def.
func (p Params) Bool(key string, def bool) bool {
	if !p.Has(key) {
		return def
	}
	b, err := cast.ToBoolE(p[key])
	if err != nil {
		return def
	}
	return b
}

// Duration returns the value of key as a duration, or def. Bare integers are
// read as seconds.
func (p Params) Duration(key string, def time.Duration) time.Duration {
	if !p.Has(key) {
		return def
	}
	switch v := p[key].(type) {
	case int, int32, int64, uint, uint32, uint64:
		return time.Duration(cast.ToInt64(v)) * time.Second
	}
	d, err := cast.ToDurationE(p[key])
	if err != nil {
		return def
	}
	return d
}

// StringSlice returns the value of key as a string slice, or nil.
func (p Params) StringSlice(key string) []string {
	if !p.Has(key) {
		return nil
	}
	s, err := cast.ToStringSliceE(p[key])
	if err != nil {
		return nil
	}
	return s
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
