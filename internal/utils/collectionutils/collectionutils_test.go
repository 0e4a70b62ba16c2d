package collectionutils

import (
	"sort"
	"testing"
)

type item struct {
	id     string
	parent string
}

func TestGroupByKeepsOrder(t *testing.T) {
	items := []item{{"1", ""}, {"2", "1"}, {"3", ""}, {"4", "1"}}
	groups := GroupBy(items, func(i item) string { return i.parent })

	if len(groups[""]) != 2 || groups[""][0].id != "1" || groups[""][1].id != "3" {
		t.Fatalf("top level = %v", groups[""])
	}
	if len(groups["1"]) != 2 || groups["1"][1].id != "4" {
		t.Fatalf("replies = %v", groups["1"])
	}
}

func TestUniqAndAssociate(t *testing.T) {
	items := []item{{"1", "a"}, {"2", "b"}, {"3", "a"}}

	parents := Uniq(items, func(i item) string { return i.parent })
	if len(parents) != 2 || parents[0] != "a" || parents[1] != "b" {
		t.Fatalf("Uniq = %v", parents)
	}

	byID := Associate(items, func(i item) (string, string) { return i.id, i.parent })
	if byID["3"] != "a" || GetOrDefault(byID, "9", "none") != "none" {
		t.Fatalf("Associate = %v", byID)
	}
}

func TestIntersects(t *testing.T) {
	if !Intersects([]string{"catA", "catC"}, []string{"catB", "catA"}) {
		t.Fatal("expected intersection")
	}
	if Intersects([]string{"catC"}, []string{"catA", "catB"}) || Intersects(nil, []string{"catA"}) {
		t.Fatal("unexpected intersection")
	}
}

func TestSafeMap(t *testing.T) {
	m := New[string, int]()
	m.Store("a", 1)
	m.Store("b", 2)

	if !m.Update("a", func(v int) int { return v + 10 }) {
		t.Fatal("Update on existing key returned false")
	}
	if m.Update("z", func(v int) int { return v }) {
		t.Fatal("Update on missing key returned true")
	}

	values := m.Values()
	sort.Ints(values)
	if len(values) != 2 || values[0] != 2 || values[1] != 11 {
		t.Fatalf("Values = %v", values)
	}

	m.Delete("b")
	if _, ok := m.Get("b"); ok || m.Len() != 1 {
		t.Fatal("Delete did not remove the key")
	}
}
