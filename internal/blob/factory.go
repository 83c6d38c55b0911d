package blob

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Location is a parsed artefact address: either a local path or an object in
// an S3 bucket.
type Location struct {
	Bucket string // empty for local paths
	Key    string // object key, or the local path
}

// IsS3 reports whether l addresses a bucket object.
func (l Location) IsS3() bool { return l.Bucket != "" }

func (l Location) String() string {
	if l.IsS3() {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return l.Key
}

// ParseLocation splits "s3://bucket/key" into bucket and key. Anything else is
// treated as a local path.
func ParseLocation(uri string) (Location, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return Location{Key: uri}, nil
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid s3 location %q (want s3://bucket/key)", uri)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Resolver opens the store holding a location.
type Resolver struct {
	// S3 supplies region, endpoint and credentials; the bucket comes from
	// each location.
	S3 S3Config
}

// Open returns the store for uri and the key of uri within it. Local paths
// open a filesystem store rooted at the path's directory.
func (r Resolver) Open(ctx context.Context, uri string) (Store, string, error) {
	loc, err := ParseLocation(uri)
	if err != nil {
		return nil, "", err
	}
	if loc.IsS3() {
		cfg := r.S3
		cfg.Bucket = loc.Bucket
		st, err := NewS3(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return st, loc.Key, nil
	}
	st, err := NewFilesystem(filepath.Dir(loc.Key))
	if err != nil {
		return nil, "", err
	}
	return st, filepath.ToSlash(filepath.Base(loc.Key)), nil
}
