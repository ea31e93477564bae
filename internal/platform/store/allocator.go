package store

import "fmt"

// NextID returns max(keys)+1, or 1 when keys is empty. Deleted identifiers
// are never reused and gaps are never filled. The caller must hold whatever
// lock protects keys; NextID itself is not synchronized.
//
// Key spaces that are not integer-typed fail with ErrInvalidKeyType.
func NextID[K comparable](keys []K) (K, error) {
	var next K
	if _, ok := asInt64(next); !ok {
		return next, fmt.Errorf("%w: %T", ErrInvalidKeyType, next)
	}

	var max int64
	for _, k := range keys {
		v, _ := asInt64(k)
		if v > max {
			max = v
		}
	}

	setInt64(&next, max+1)
	return next, nil
}

func asInt64(k any) (int64, bool) {
	switch v := k.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

func setInt64(dst any, n int64) {
	switch p := dst.(type) {
	case *int:
		*p = int(n)
	case *int32:
		*p = int32(n)
	case *int64:
		*p = n
	case *uint:
		*p = uint(n)
	case *uint32:
		*p = uint32(n)
	case *uint64:
		*p = uint64(n)
	}
}
