package signature

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	schemaerr "schemacore/pkg/error"
)

// DefaultResolutionCacheSize bounds the number of cached resolutions.
const DefaultResolutionCacheSize = 256

type overload[T any] struct {
	signature *Signature
	value     T
}

// OperatorMap holds the overloads of named operators and caches the
// outcome of resolving an argument list against them. The cache is
// purged whenever an overload set changes.
//
// OperatorMap is not safe for concurrent mutation.
type OperatorMap[T any] struct {
	overloads map[string][]overload[T]
	cache     *lru.Cache
}

func NewOperatorMap[T any](cacheSize int) (*OperatorMap[T], error) {
	if cacheSize <= 0 {
		cacheSize = DefaultResolutionCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolution cache: %w", err)
	}
	return &OperatorMap[T]{
		overloads: make(map[string][]overload[T]),
		cache:     cache,
	}, nil
}

// Add registers an overload. An overload with an equal signature under the
// same name is replaced.
func (m *OperatorMap[T]) Add(name string, sig *Signature, value T) {
	defer m.cache.Purge()
	set := m.overloads[name]
	for i, o := range set {
		if o.signature.Equals(sig) {
			set[i] = overload[T]{signature: sig, value: value}
			return
		}
	}
	m.overloads[name] = append(set, overload[T]{signature: sig, value: value})
}

// Remove drops the overload of name whose signature equals sig.
func (m *OperatorMap[T]) Remove(name string, sig *Signature) bool {
	set := m.overloads[name]
	for i, o := range set {
		if o.signature.Equals(sig) {
			m.overloads[name] = append(set[:i], set[i+1:]...)
			if len(m.overloads[name]) == 0 {
				delete(m.overloads, name)
			}
			m.cache.Purge()
			return true
		}
	}
	return false
}

// Count returns the number of overloads registered under name.
func (m *OperatorMap[T]) Count(name string) int {
	return len(m.overloads[name])
}

// Signatures returns the overload signatures of name in registration order.
func (m *OperatorMap[T]) Signatures(name string) []*Signature {
	set := m.overloads[name]
	result := make([]*Signature, len(set))
	for i, o := range set {
		result[i] = o.signature
	}
	return result
}

// Resolve returns the overload of name that best accepts actual.
func (m *OperatorMap[T]) Resolve(name string, actual *Signature) (T, error) {
	var zero T
	key := name + actual.String()
	if cached, ok := m.cache.Get(key); ok {
		return m.overloads[name][cached.(int)].value, nil
	}

	i, err := Resolve(actual, m.Signatures(name))
	if err != nil {
		return zero, schemaerr.SignatureNotResolved(name, actual.String()).In("Resolve", "OperatorMap")
	}
	m.cache.Add(key, i)
	return m.overloads[name][i].value, nil
}

// CachedResolutions returns the number of resolutions currently cached.
func (m *OperatorMap[T]) CachedResolutions() int {
	return m.cache.Len()
}
