package access

import (
	"slices"
	"sort"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	in := []string{"img12", "IMG10", "img2", "img1", "Img02", "alpha", "Beta", "img"}
	sort.SliceStable(in, func(i, j int) bool { return NaturalLess(in[i], in[j]) })
	want := []string{"alpha", "Beta", "img", "img1", "img2", "Img02", "IMG10", "img12"}
	if !slices.Equal(in, want) {
		t.Errorf("sorted = %v, want %v", in, want)
	}
}

func TestNaturalLessStrict(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a", "a", false},
		{"a", "A", false},
		{"a2", "a10", true},
		{"a10", "a2", false},
		{"x", "xy", true},
		{"Zoe", "adam", false},
	}
	for _, tt := range tests {
		if got := NaturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
