// Package util has helpers shared by the backends.
package util

import (
	"errors"
)

var ErrorKeysDontMatchValues = errors.New("keys don't match values")

// OrderedMap is an attribute map that remembers insertion order. It implements
// api.AttributeMap.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap checks that keys names exactly the entries of values.
func NewOrderedMap(keys []string, values map[string]any) (*OrderedMap, error) {
	if len(keys) != len(values) {
		return nil, ErrorKeysDontMatchValues
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, has := values[k]; !has || seen[k] {
			return nil, ErrorKeysDontMatchValues
		}
		seen[k] = true
	}
	if values == nil {
		values = map[string]any{}
	}
	return &OrderedMap{keys: append([]string(nil), keys...), values: values}, nil
}

// Add appends name, or replaces its value in place if it is already present.
func (om *OrderedMap) Add(name string, val any) {
	if _, has := om.values[name]; !has {
		om.keys = append(om.keys, name)
	}
	om.values[name] = val
}

func (om *OrderedMap) Get(key string) (val any, has bool) {
	val, has = om.values[key]
	return
}

func (om *OrderedMap) Keys() []string {
	return om.keys
}

func (om *OrderedMap) Len() int {
	return len(om.keys)
}
