package docstore

import (
	"encoding/json"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect selects the SQL flavour of the documents table
type Dialect string

const (
	Postgres Dialect = "pgsql"
	SQLite   Dialect = "sqlite"
)

// dialect renders payload access for one SQL flavour. Every fragment uses "?"
// placeholders; squirrel rewrites them for the driver
type dialect interface {
	format() sq.PlaceholderFormat
	// dataColumn reads the payload as text
	dataColumn() string
	// dataValue is the placeholder for writing a JSON payload passed as a string
	dataValue() string
	// field extracts the value at path
	field(path []string) sq.Sqlizer
	// compare tests the value at path against a canonical value
	compare(path []string, op string, v any) (sq.Sqlizer, error)
	// member tests the value at path against a list of canonical values
	member(path []string, vs []any) (sq.Sqlizer, error)
	// sum totals the numeric values at path as text
	sum(path []string) sq.Sqlizer
	// nulls orders missing values lowest
	nulls(desc bool) string
	lockRow() string
	schema() []string
}

func dialectFor(d Dialect) dialect {
	if d == Postgres {
		return pgDialect{}
	}
	return liteDialect{}
}

// jsonType names the JSON type of a canonical value, "" for null or containers
func jsonType(v any) string {
	switch v.(type) {
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	return ""
}

type pgDialect struct{}

func (pgDialect) format() sq.PlaceholderFormat { return sq.Dollar }
func (pgDialect) dataColumn() string           { return "data::text" }
func (pgDialect) dataValue() string            { return "?::jsonb" }
func (pgDialect) lockRow() string              { return "FOR UPDATE" }

func (pgDialect) field(path []string) sq.Sqlizer {
	return sq.Expr("(data #> ?::text[])", path)
}

func (pgDialect) compare(path []string, op string, v any) (sq.Sqlizer, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if op == "=" {
		return sq.Expr("(data #> ?::text[]) = ?::jsonb", path, string(raw)), nil
	}
	// jsonb orders across types; keep range filters within the value's own type
	return sq.Expr("(jsonb_typeof(data #> ?::text[]) = ? AND (data #> ?::text[]) "+op+" ?::jsonb)",
		path, jsonType(v), path, string(raw)), nil
}

func (pgDialect) member(path []string, vs []any) (sq.Sqlizer, error) {
	if len(vs) == 0 {
		return sq.Expr("1=0"), nil
	}
	args := []any{path}
	marks := make([]string, len(vs))
	for i, v := range vs {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		marks[i] = "?::jsonb"
		args = append(args, string(raw))
	}
	return sq.Expr("(data #> ?::text[]) IN ("+strings.Join(marks, ", ")+")", args...), nil
}

func (pgDialect) sum(path []string) sq.Sqlizer {
	return sq.Expr("COALESCE(SUM(CASE WHEN jsonb_typeof(data #> ?::text[]) = 'number' THEN (data #>> ?::text[])::numeric END), 0)::text", path, path)
}

func (pgDialect) nulls(desc bool) string {
	if desc {
		return " DESC NULLS LAST"
	}
	return " ASC NULLS FIRST"
}

func (pgDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS documents (
	org_id     TEXT   NOT NULL,
	collection TEXT   NOT NULL,
	id         TEXT   NOT NULL,
	data       JSONB  NOT NULL DEFAULT '{}'::jsonb,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL,
	PRIMARY KEY (org_id, collection, id)
)`,
		`CREATE INDEX IF NOT EXISTS documents_created_idx ON documents (org_id, collection, created_at, id)`,
	}
}

type liteDialect struct{}

func (liteDialect) format() sq.PlaceholderFormat { return sq.Question }
func (liteDialect) dataColumn() string           { return "data" }
func (liteDialect) dataValue() string            { return "?" }
func (liteDialect) lockRow() string              { return "" }

// jsonPath renders $."a"."b" so keys with dots or spaces stay intact
func jsonPath(path []string) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, p := range path {
		b.WriteByte('.')
		b.WriteString(strconv.Quote(p))
	}
	return b.String()
}

func (liteDialect) field(path []string) sq.Sqlizer {
	return sq.Expr("json_extract(data, ?)", jsonPath(path))
}

// liteTypes maps a JSON type onto the names json_type reports
func liteTypes(v any) string {
	switch v.(type) {
	case float64:
		return "('integer', 'real')"
	case string:
		return "('text')"
	case bool:
		return "('true', 'false')"
	}
	return "('null')"
}

// liteArg binds booleans the way json_extract returns them
func liteArg(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return v
}

func (liteDialect) compare(path []string, op string, v any) (sq.Sqlizer, error) {
	p := jsonPath(path)
	return sq.Expr("(json_type(data, ?) IN "+liteTypes(v)+" AND json_extract(data, ?) "+op+" ?)", p, p, liteArg(v)), nil
}

func (liteDialect) member(path []string, vs []any) (sq.Sqlizer, error) {
	if len(vs) == 0 {
		return sq.Expr("1=0"), nil
	}
	p := jsonPath(path)
	parts := make([]string, len(vs))
	var args []any
	for i, v := range vs {
		parts[i] = "(json_type(data, ?) IN " + liteTypes(v) + " AND json_extract(data, ?) = ?)"
		args = append(args, p, p, liteArg(v))
	}
	return sq.Expr("("+strings.Join(parts, " OR ")+")", args...), nil
}

func (liteDialect) sum(path []string) sq.Sqlizer {
	p := jsonPath(path)
	return sq.Expr("CAST(COALESCE(SUM(CASE WHEN json_type(data, ?) IN ('integer', 'real') THEN json_extract(data, ?) END), 0) AS TEXT)", p, p)
}

func (liteDialect) nulls(desc bool) string {
	if desc {
		return " DESC"
	}
	return " ASC"
}

func (liteDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS documents (
	org_id     TEXT    NOT NULL,
	collection TEXT    NOT NULL,
	id         TEXT    NOT NULL,
	data       TEXT    NOT NULL DEFAULT '{}',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (org_id, collection, id)
)`,
		`CREATE INDEX IF NOT EXISTS documents_created_idx ON documents (org_id, collection, created_at, id)`,
	}
}
