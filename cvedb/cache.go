package cvedb

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-cwe-lookup/cvedb/nvd"
	"github.com/aquasecurity/cve-cwe-lookup/cvedb/utils"
)

// Cache read year partitioned nvd feeds from a local directory
type Cache struct {
	*options
}

// NewCache return new cache instance, the cache directory is created when missing
func NewCache(opts ...Option) (*Cache, error) {
	o := &options{
		dir: utils.CacheDir(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := os.MkdirAll(o.dir, 0755); err != nil {
		return nil, xerrors.Errorf("failed to create cache directory %s: %w", o.dir, err)
	}
	return &Cache{
		options: o,
	}, nil
}

type options struct {
	dir   string
	debug bool
}

type Option func(*options)

// WithDir override the cache directory
func WithDir(dir string) Option {
	return func(o *options) {
		if len(dir) > 0 {
			o.dir = dir
		}
	}
}

// WithDebug log every loaded feed
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// Dir return the cache directory
func (c Cache) Dir() string {
	return c.dir
}

// Years list the years a feed is cached for, in directory order
func (c Cache) Years() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, xerrors.Errorf("failed to read cache directory: %w", err)
	}
	years := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		year, ok := utils.FeedYear(e.Name())
		if !ok || slices.Contains(years, year) {
			continue
		}
		years = append(years, year)
	}
	return years, nil
}

// LoadYear decode the feed of a year, plain json is preferred over gzip
func (c Cache) LoadYear(year string) (*nvd.Feed, error) {
	fp := filepath.Join(c.dir, utils.FeedFileName(year, utils.JSONExt))
	if info, err := os.Stat(fp); os.IsNotExist(err) || (err == nil && info.IsDir()) {
		fp = filepath.Join(c.dir, utils.FeedFileName(year, utils.GzipExt))
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, xerrors.Errorf("failed to open %s feed: %w", year, err)
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(fp) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, xerrors.Errorf("failed to read %s: %w", fp, err)
		}
		defer gz.Close()
		r = gz
	}

	if c.debug {
		log.Printf("Loading %s", fp)
	}
	var feed nvd.Feed
	if err = json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, xerrors.Errorf("failed to decode %s: %w", fp, err)
	}
	if err = feed.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid %s feed: %w", year, err)
	}
	return &feed, nil
}
