package model

import (
	"cmp"
	"encoding/json"
	"slices"
)

// Set is a sorted, duplicate-free slice. The empty set is always nil, so two
// sets holding the same members compare equal with reflect.DeepEqual.
// Mutating methods return a new set and never touch the receiver's backing array.
type Set[T cmp.Ordered] []T

func NewSet[T cmp.Ordered](items ...T) Set[T] {
	if len(items) == 0 {
		return nil
	}
	out := slices.Clone(items)
	slices.Sort(out)
	return Set[T](slices.Compact(out))
}

func (s Set[T]) Len() int {
	return len(s)
}

func (s Set[T]) Contains(v T) bool {
	_, ok := slices.BinarySearch(s, v)
	return ok
}

// With returns the set with v inserted and whether v was newly added.
func (s Set[T]) With(v T) (Set[T], bool) {
	i, ok := slices.BinarySearch(s, v)
	if ok {
		return s, false
	}
	out := make(Set[T], 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	out = append(out, s[i:]...)
	return out, true
}

// Without returns the set with v removed and whether v was present.
func (s Set[T]) Without(v T) (Set[T], bool) {
	i, ok := slices.BinarySearch(s, v)
	if !ok {
		return s, false
	}
	if len(s) == 1 {
		return nil, true
	}
	out := make(Set[T], 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out, true
}

func (s Set[T]) Values() []T {
	return slices.Clone([]T(s))
}

func (s Set[T]) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(s))
}

func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}
