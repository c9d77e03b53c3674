package characters

import (
	"encoding/json"
	"math"
)

// Payload is a profile document with typed, nil-on-miss accessors.
// A nil *Payload is an absent document.
type Payload struct {
	doc map[string]any
}

// NewPayload wraps a decoded JSON object. A nil map yields an absent payload.
func NewPayload(doc map[string]any) *Payload {
	if doc == nil {
		return nil
	}
	return &Payload{doc: doc}
}

// Present reports whether the payload holds a document.
func (p *Payload) Present() bool {
	return p != nil
}

// Lookup walks path through nested objects.
func (p *Payload) Lookup(path ...string) (any, bool) {
	if p == nil || len(path) == 0 {
		return nil, false
	}

	var cur any = p.doc
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at path, or nil when it is missing or not a string.
func (p *Payload) String(path ...string) *string {
	v, ok := p.Lookup(path...)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// Int64 returns the whole number at path, or nil when it is missing, not a
// number or has a fractional part.
func (p *Payload) Int64(path ...string) *int64 {
	v, ok := p.Lookup(path...)
	if !ok {
		return nil
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		i := int64(n)
		return &i
	case int64:
		return &n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return &i
		}
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	i := int64(f)
	return &i
}

// Int is Int64 narrowed to int. Values outside the int32 range yield nil.
func (p *Payload) Int(path ...string) *int {
	v := p.Int64(path...)
	if v == nil || *v > math.MaxInt32 || *v < math.MinInt32 {
		return nil
	}
	i := int(*v)
	return &i
}
