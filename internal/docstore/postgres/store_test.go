package postgres

import (
	"testing"

	"negocio/internal/docstore"
)

func TestOrderClause(t *testing.T) {
	cases := []struct {
		name string
		q    docstore.Query
		want string
	}{
		{"empty falls back to id", docstore.Query{}, "id ASC"},
		{"plain field", docstore.Query{OrderBy: "name"}, "data->>'name' ASC"},
		{"descending", docstore.Query{OrderBy: "timestamp", Descending: true}, "data->>'timestamp' DESC"},
		{"underscored field", docstore.Query{OrderBy: "paid_at"}, "data->>'paid_at' ASC"},
		{"quote rejected", docstore.Query{OrderBy: "name'; DROP TABLE documents; --"}, "id ASC"},
		{"whitespace rejected", docstore.Query{OrderBy: "name ASC, data"}, "id ASC"},
		{"arrow rejected", docstore.Query{OrderBy: "data->>'x'"}, "id ASC"},
		{"leading digit rejected", docstore.Query{OrderBy: "1name"}, "id ASC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := orderClause(tc.q); got != tc.want {
				t.Errorf("orderClause(%q) = %q, want %q", tc.q.OrderBy, got, tc.want)
			}
		})
	}
}
