package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "document", "version").
		From("competitions").
		Where(Eq("id", "swz-premier-league-2025"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(1).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, document, version FROM competitions WHERE id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 1 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "swz-premier-league-2025" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		Ignored string `db:"-"`
		Version int64  `db:"version"`
	}

	query, args, err := InsertModel("competitions", row{ID: "c1", Name: "Cup", Ignored: "x", Version: 1}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO competitions (id, name, version) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "c1" || args[2] != int64(1) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderRejectsShortRow(t *testing.T) {
	_, _, err := InsertInto("competitions").Columns("id", "name").Values("c1").ToSQL()
	if err == nil {
		t.Fatalf("expected error for row with missing values")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("competitions").
		Set("document", []byte(`{}`)).
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "c1"), Expr("version = ?", int64(7))).
		Returning("version", "updated_at").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE competitions SET document = $1, version = version + 1, updated_at = NOW() WHERE id = $2 AND version = $3 RETURNING version, updated_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "c1" || args[2] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderRequiresWhere(t *testing.T) {
	if _, _, err := Update("competitions").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected error for unbounded update")
	}
}

func TestUpdateModel(t *testing.T) {
	type patch struct {
		Name     string `db:"name"`
		Document []byte `db:"document,json"`
		internal string
	}

	query, args, err := UpdateModel("competitions", &patch{Name: "Premier League", Document: []byte(`{}`), internal: "x"}).
		SetExpr("version", "version + 1").
		Where(Eq("public_id", "c1"), Eq("version", int64(4))).
		Returning("version").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE competitions SET name = $1, document = $2, version = version + 1 WHERE public_id = $3 AND version = $4 RETURNING version"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "Premier League" || args[3] != int64(4) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := UpdateModel("competitions", 42).Where(Eq("public_id", "c1")).ToSQL(); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestExprBindsInOrder(t *testing.T) {
	query, args, err := Select("public_id").
		From("competitions").
		Where(Expr("kind = ? AND season >= ?", "league", 2025), Expr("document ? 'results'")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM competitions WHERE kind = $1 AND season >= $2 AND document ? 'results'"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != 2025 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderMultiRowReturning(t *testing.T) {
	query, args, err := InsertInto("competitions").
		Columns("public_id", "name").
		Values("c1", "League").
		Values("c2", "Cup").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO competitions (public_id, name) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery || len(args) != 4 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}
