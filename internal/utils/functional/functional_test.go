package functional

import (
	"slices"
	"strings"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]string{" a", "b ", "c"}, strings.TrimSpace)
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("got %v", got)
	}

	if got := Map([]int(nil), func(i int) int { return i }); len(got) != 0 || got == nil {
		t.Errorf("nil input should map to an empty slice, got %#v", got)
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4, 5}, func(i int) bool { return i%2 == 1 })
	if !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("got %v", got)
	}
}
