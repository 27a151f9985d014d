package lookup

import (
	"fmt"
	"log"

	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-cwe-lookup/cvedb/nvd"
)

// Database cached nvd feeds partitioned by year
type Database interface {
	Years() ([]string, error)
	LoadYear(year string) (*nvd.Feed, error)
}

// MalformedRecordError returned when a feed record misses a field required by the lookup
type MalformedRecordError struct {
	Year  string
	Index int
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record #%d in %s feed: %v", e.Index, e.Year, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Option configure a lookup
type Option func(*options)

type options struct {
	debug bool
}

// WithDebug log every matched record
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// CWEs scan every cached year and return the first weakness of each record
// whose id is in cveIDs, results keep scan order and are not deduplicated
func CWEs(db Database, cveIDs []string, opts ...Option) ([]string, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	cwes := make([]string, 0)
	if len(cveIDs) == 0 {
		return cwes, nil
	}
	wanted := make(map[string]struct{}, len(cveIDs))
	for _, id := range cveIDs {
		wanted[id] = struct{}{}
	}

	years, err := db.Years()
	if err != nil {
		return nil, xerrors.Errorf("failed to list cached years: %w", err)
	}
	for _, year := range years {
		feed, err := db.LoadYear(year)
		if err != nil {
			return nil, xerrors.Errorf("failed to load %s: %w", year, err)
		}
		if feed == nil || feed.CVEItems == nil {
			return nil, xerrors.Errorf("%s feed: CVE_Items: %w", year, nvd.ErrMissingField)
		}
		for index, item := range feed.CVEItems {
			id, err := item.ID()
			if err != nil {
				return nil, &MalformedRecordError{Year: year, Index: index, Err: err}
			}
			if _, ok := wanted[id]; !ok {
				continue
			}
			cwe, err := item.Weakness()
			if err != nil {
				return nil, &MalformedRecordError{Year: year, Index: index, Err: err}
			}
			if o.debug {
				if severity, score := item.Severity(); len(severity) > 0 {
					log.Printf("%s: %s (%s %.1f)", id, cwe, severity, score)
				} else {
					log.Printf("%s: %s", id, cwe)
				}
			}
			cwes = append(cwes, cwe)
		}
	}
	return cwes, nil
}
