package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"lifespanchart/internal/record"
)

// SQL reads the contract columns of one table.
type SQL struct {
	name   string
	driver string
	dsn    string
	table  string
	fields record.Fields
}

func (s *SQL) Name() string { return s.name }

func (s *SQL) columns() []string {
	cols := []string{s.fields.Name, s.fields.Start, s.fields.End}
	if s.fields.Flag != "" {
		cols = append(cols, s.fields.Flag)
	}
	return cols
}

// Query is the statement Load runs.
func (s *SQL) Query() string {
	cols := s.columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return "SELECT " + strings.Join(quoted, ", ") + " FROM " + quoteIdent(s.table)
}

func (s *SQL) Load(ctx context.Context) ([]record.Raw, error) {
	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.driver, err)
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", s.name, err)
	}
	rows, err := db.QueryContext(ctx, s.Query())
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", s.table, err)
	}
	defer func() { _ = rows.Close() }()

	cols := s.columns()
	var out []record.Raw
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := make(record.Raw, len(cols))
		for i, c := range cols {
			switch v := vals[i].(type) {
			case nil:
				// NULL reads as a missing column
			case []byte:
				row[c] = string(v)
			default:
				row[c] = v
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// quoteIdent quotes a table or column name for both SQLite and Postgres.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// parseSQLite splits "sqlite://path/to.db?table=t" into the file path and
// table name.
func parseSQLite(uri string) (dsn, table string, err error) {
	rest := strings.TrimPrefix(uri, "sqlite://")
	p, rawQuery, _ := strings.Cut(rest, "?")
	if p == "" {
		return "", "", fmt.Errorf("sqlite source %q has no database path", uri)
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", "", fmt.Errorf("sqlite source %q: %w", uri, err)
	}
	table = q.Get("table")
	if table == "" {
		table = DefaultTable
	}
	return p, table, nil
}

// parsePostgres removes the table parameter from a Postgres URL and returns
// the remaining connection string.
func parsePostgres(uri string) (dsn, table string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("postgres source: %w", err)
	}
	q := u.Query()
	table = q.Get("table")
	if table == "" {
		table = DefaultTable
	}
	q.Del("table")
	u.RawQuery = q.Encode()
	return u.String(), table, nil
}

// redact hides the password of a connection URL.
func redact(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return u.Redacted()
}
