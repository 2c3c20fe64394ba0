package domain_test

import (
	"math"
	"testing"

	"github.com/aretw0/sluice/pkg/domain"
)

func TestEqual_Identity(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int vs float", 1, 1.0, false},
		{"equal strings", "a", "a", true},
		{"nil vs nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"both NaN", math.NaN(), math.NaN(), true},
		{"NaN vs number", math.NaN(), 1.0, false},
		{"uncomparable slices", []int{1}, []int{1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.Equal(tc.a, tc.b, domain.EqualityIdentity); got != tc.want {
				t.Errorf("Equal(%v, %v, identity) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestEqual_Structural(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal slices", []int{1, 2}, []int{1, 2}, true},
		{"different slices", []int{1}, []int{2}, false},
		{"equal maps", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		{"nested", map[string]any{"a": []int{1}}, map[string]any{"a": []int{1}}, true},
		{"both NaN", math.NaN(), math.NaN(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.Equal(tc.a, tc.b, domain.EqualityStructural); got != tc.want {
				t.Errorf("Equal(%v, %v, structural) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCopy_Isolation(t *testing.T) {
	src := map[string]any{"items": []any{"a", "b"}}
	dst := domain.Copy(src).(map[string]any)

	dst["items"].([]any)[0] = "mutated"
	if src["items"].([]any)[0] != "a" {
		t.Error("Copy must be deep: mutating the copy reached the source")
	}
}
