// Package style holds the forward-compatible property bag attached to every
// view, plus the small parsers that turn style strings (colours, utility
// classes) into typed values.
package style

import (
	"fmt"
	"strconv"
)

// Kind tags which member of a Value is populated.
type Kind uint8

const (
	KindNone Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "none"
	}
}

// Value is a tagged union of a number or a string.
// The zero Value is KindNone and reads as 0 / "".
type Value struct {
	kind Kind
	num  float32
	text string
}

// Number returns a numeric Value.
func Number(n float32) Value {
	return Value{kind: KindNumber, num: n}
}

// Text returns a string Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether the value holds anything.
func (v Value) IsSet() bool { return v.kind != KindNone }

// Number returns the numeric member, or 0 for non-numeric values.
func (v Value) Number() float32 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Text returns the string member, or "" for non-text values.
func (v Value) Text() string {
	if v.kind != KindText {
		return ""
	}
	return v.text
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(float64(v.num), 'g', -1, 32)
	case KindText:
		return strconv.Quote(v.text)
	default:
		return "<unset>"
	}
}

// Bag is an insertion-ordered mapping from key to Value.
// Keys are stored verbatim; lookups match exact keys.
type Bag struct {
	keys   []string
	values map[string]Value
}

// NewBag returns an empty bag.
func NewBag() *Bag {
	return &Bag{values: make(map[string]Value)}
}

// Set upserts key. An existing key keeps its original position.
func (b *Bag) Set(key string, v Value) {
	if b.values == nil {
		b.values = make(map[string]Value)
	}
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = v
}

// Get returns the value for key, or the zero Value when unset.
func (b *Bag) Get(key string) Value {
	if b == nil {
		return Value{}
	}
	return b.values[key]
}

// Lookup is Get with a presence flag.
func (b *Bag) Lookup(key string) (Value, bool) {
	if b == nil {
		return Value{}, false
	}
	v, ok := b.values[key]
	return v, ok
}

// Delete removes key. Missing keys are ignored.
func (b *Bag) Delete(key string) {
	if b == nil {
		return
	}
	if _, ok := b.values[key]; !ok {
		return
	}
	delete(b.values, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Keys returns a copy of the keys in insertion order.
func (b *Bag) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (b *Bag) Each(fn func(key string, v Value)) {
	if b == nil {
		return
	}
	for _, k := range b.keys {
		fn(k, b.values[k])
	}
}

func (b *Bag) String() string {
	s := "{"
	b.Each(func(k string, v Value) {
		if len(s) > 1 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %s", k, v)
	})
	return s + "}"
}
