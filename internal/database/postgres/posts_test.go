package postgres

import (
	"testing"

	"github.com/siahsang/blogapi/internal/filter"
)

func TestPostWhereClause(t *testing.T) {
	catID := "6f1c1b1e-1b7a-4c59-9a55-6a3a1e6f2b11"

	tests := []struct {
		name     string
		filter   filter.Filter
		want     string
		wantArgs int
	}{
		{
			name:     "no filters",
			filter:   filter.NewFilter("", 1, 10, nil),
			want:     "",
			wantArgs: 0,
		},
		{
			name:     "keyword only",
			filter:   filter.NewFilter("golang", 1, 10, nil),
			want:     "WHERE (title ILIKE $1 OR caption ILIKE $1)",
			wantArgs: 1,
		},
		{
			name:     "categories only",
			filter:   filter.NewFilter("", 1, 10, []string{catID}),
			want:     "WHERE categories && $1::uuid[]",
			wantArgs: 1,
		},
		{
			name:     "keyword and categories",
			filter:   filter.NewFilter("go", 2, 5, []string{catID}),
			want:     "WHERE (title ILIKE $1 OR caption ILIKE $1) AND categories && $2::uuid[]",
			wantArgs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := postWhereClause(tt.filter)
			if got != tt.want {
				t.Errorf("clause = %q, want %q", got, tt.want)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("got %d args, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestPostWhereClauseEscapesWildcards(t *testing.T) {
	_, args := postWhereClause(filter.NewFilter("100%_off", 1, 10, nil))
	if len(args) != 1 {
		t.Fatalf("got %d args", len(args))
	}
	if got := args[0].(string); got != `%100\%\_off%` {
		t.Errorf("pattern = %q", got)
	}
}
