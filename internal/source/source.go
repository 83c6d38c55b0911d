// Package source loads raw lifespan rows from files, databases and buckets.
//
// A source is addressed by a URI:
//
//	people.json                        JSON array of objects
//	people.csv                         CSV with a header row
//	sqlite://data/people.db?table=t    SQLite table (modernc.org/sqlite)
//	postgres://host/db?table=t         Postgres table (pgx)
//	s3://bucket/people.json            JSON or CSV object in a bucket
//
// Sources return undecoded rows; record.Decode turns them into records.
package source

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"lifespanchart/internal/blob"
	"lifespanchart/internal/record"
)

// ErrUnsupportedSource is returned by Open for URIs no source understands.
var ErrUnsupportedSource = errors.New("source: unsupported data source")

// DefaultTable is the table read by SQL sources without a table parameter.
const DefaultTable = "records"

// Source yields the raw rows of one data location.
type Source interface {
	// Name identifies the source in logs and skip reports.
	Name() string
	Load(ctx context.Context) ([]record.Raw, error)
}

// BlobOpener resolves a bucket URI to a store and key. blob.Resolver
// implements it.
type BlobOpener interface {
	Open(ctx context.Context, uri string) (blob.Store, string, error)
}

// Options configures Open.
type Options struct {
	// Fields names the columns selected by SQL sources.
	Fields record.Fields
	// Blobs opens s3:// sources. Nil means blob.Resolver{}.
	Blobs BlobOpener
}

// Format is the encoding of a file or object.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatOf picks the format from the extension of name.
func FormatOf(name string) (Format, error) {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: extension %q (want .csv or .json)", ErrUnsupportedSource, ext)
	}
}

// Open returns the source addressed by uri. It does not touch the location;
// errors reaching it surface from Load.
func Open(uri string, opts Options) (Source, error) {
	if opts.Fields == (record.Fields{}) {
		opts.Fields = record.DefaultFields()
	}
	switch {
	case strings.HasPrefix(uri, "sqlite://"):
		dsn, table, err := parseSQLite(uri)
		if err != nil {
			return nil, err
		}
		return &SQL{name: uri, driver: "sqlite", dsn: dsn, table: table, fields: opts.Fields}, nil
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		dsn, table, err := parsePostgres(uri)
		if err != nil {
			return nil, err
		}
		return &SQL{name: redact(uri), driver: "pgx", dsn: dsn, table: table, fields: opts.Fields}, nil
	case strings.HasPrefix(uri, "s3://"):
		format, err := FormatOf(uri)
		if err != nil {
			return nil, err
		}
		opener := opts.Blobs
		if opener == nil {
			opener = blob.Resolver{}
		}
		return &Object{uri: uri, format: format, blobs: opener}, nil
	case strings.Contains(uri, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, uri)
	}
	format, err := FormatOf(uri)
	if err != nil {
		return nil, err
	}
	return &File{path: uri, format: format}, nil
}
