// Package itemstore is a thin key-value layer: point put, get and delete by a
// numeric primary key, plus an unpaginated scan of a whole collection.
//
// Writes are full overwrites with last-write-wins semantics. No backend offers
// conditional writes or transactions spanning more than one item.
package itemstore

import (
	"context"
	"errors"
	"slices"
	"strconv"
)

var (
	// ErrUnavailable wraps every transport or backend failure.
	ErrUnavailable = errors.New("item store unavailable")
	// ErrMalformed marks a stored item that cannot be represented or decoded.
	ErrMalformed = errors.New("malformed item")
)

// Kind mirrors the DynamoDB attribute type descriptors.
type Kind string

const (
	KindString    Kind = "S"
	KindNumber    Kind = "N"
	KindStringSet Kind = "SS"
	KindNumberSet Kind = "NS"
)

// Value is a single typed attribute. Scalars live in S (numbers are kept in
// their decimal string form), sets live in Set.
type Value struct {
	Kind Kind     `json:"kind"`
	S    string   `json:"s,omitempty"`
	Set  []string `json:"set,omitempty"`
}

func String(s string) Value {
	return Value{Kind: KindString, S: s}
}

func Number(n int) Value {
	return Value{Kind: KindNumber, S: strconv.Itoa(n)}
}

func StringSet(items []string) Value {
	return Value{Kind: KindStringSet, Set: slices.Clone(items)}
}

func NumberSet(items []int) Value {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, strconv.Itoa(n))
	}
	return Value{Kind: KindNumberSet, Set: out}
}

func (v Value) clone() Value {
	v.Set = slices.Clone(v.Set)
	return v
}

// Item is the flat attribute map of one stored record.
type Item map[string]Value

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	if it == nil {
		return nil
	}
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v.clone()
	}
	return out
}

// Key identifies an item inside a collection.
type Key struct {
	Name  string
	Value int
}

func (k Key) String() string {
	return strconv.Itoa(k.Value)
}

// Store is implemented by every backend.
type Store interface {
	// Put creates or fully replaces the item stored under key.
	Put(ctx context.Context, collection string, key Key, item Item) error
	// Get returns the item and true, or nil and false when the key is absent.
	Get(ctx context.Context, collection string, key Key) (Item, bool, error)
	// Delete removes the item. Deleting an absent key is not an error.
	Delete(ctx context.Context, collection string, key Key) error
	// ScanAll returns every item of the collection in no particular order.
	ScanAll(ctx context.Context, collection string) ([]Item, error)
}
