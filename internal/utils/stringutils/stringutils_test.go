package stringutils

import (
	"strings"
	"testing"
)

func TestINCluse(t *testing.T) {
	placeholders, args := INCluse([]string{"a", "b", "c"}, 3)

	if got := strings.Join(placeholders, ", "); got != "$3, $4, $5" {
		t.Fatalf("placeholders = %q", got)
	}
	if len(args) != 3 || args[2] != "c" {
		t.Fatalf("args = %v", args)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike(`100%_done\`); got != `100\%\_done\\` {
		t.Fatalf("EscapeLike = %q", got)
	}
}
