package domain

import (
	"math"
	"reflect"

	"github.com/mohae/deepcopy"
)

// Equal reports whether two binding values are considered unchanged under
// the given mode.
//
// Identity is checked first for both modes (it is cheap and covers the
// common case). Structural mode then falls back to reflect.DeepEqual.
// Two NaNs are always considered equal, otherwise a NaN-valued expression
// would be dirty on every single pass.
func Equal(a, b any, mode EqualityMode) bool {
	if identical(a, b) {
		return true
	}
	if bothNaN(a, b) {
		return true
	}
	if mode == EqualityStructural {
		return reflect.DeepEqual(a, b)
	}
	return false
}

// Copy returns a deep copy of v, used to cache structural values so the
// caller's live value can keep mutating without corrupting the cache.
func Copy(v any) any {
	return deepcopy.Copy(v)
}

// identical is == with a comparability guard, so uncomparable dynamic types
// (slices, maps, funcs) report false instead of panicking.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func bothNaN(a, b any) bool {
	fa, ok := asFloat(a)
	if !ok {
		return false
	}
	fb, ok := asFloat(b)
	if !ok {
		return false
	}
	return math.IsNaN(fa) && math.IsNaN(fb)
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}
