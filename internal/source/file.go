package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"lifespanchart/internal/record"
)

// File reads a local JSON or CSV file.
type File struct {
	path   string
	format Format
}

func (f *File) Name() string { return f.path }

func (f *File) Load(ctx context.Context) ([]record.Raw, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("error opening data file: %w", err)
	}
	defer file.Close()
	return decode(ctx, file, f.format)
}

// Object reads a JSON or CSV object from a bucket.
type Object struct {
	uri    string
	format Format
	blobs  BlobOpener
}

func (o *Object) Name() string { return o.uri }

func (o *Object) Load(ctx context.Context) ([]record.Raw, error) {
	st, key, err := o.blobs.Open(ctx, o.uri)
	if err != nil {
		return nil, err
	}
	_, rc, err := st.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return decode(ctx, rc, o.format)
}

func decode(ctx context.Context, r io.Reader, format Format) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return DecodeCSV(r)
	default:
		return DecodeJSON(r)
	}
}
