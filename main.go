package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aquasecurity/vuln-list-update/utils"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-cwe-lookup/cvedb"
	"github.com/aquasecurity/cve-cwe-lookup/lookup"
)

const (
	noCVEGiven  = "No CVE given"
	cveNotFound = "CVE not found"
)

type openFunc func() (lookup.Database, error)

func main() {
	debug := os.Getenv("CVE_CWE_DEBUG") != ""
	cacheDir := utils.LookupEnv("CVE_CWE_CACHE_DIR", "")
	open := func() (lookup.Database, error) {
		c, err := cvedb.NewCache(cvedb.WithDir(cacheDir), cvedb.WithDebug(debug))
		if err != nil {
			return nil, err
		}
		if debug {
			log.Printf("nvd cache directory is %s", c.Dir())
		}
		return c, nil
	}
	if err := run(os.Args[1:], os.Stdout, open, debug); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer, open openFunc, debug bool) error {
	if len(args) == 0 {
		fmt.Fprintln(out, noCVEGiven)
		return nil
	}
	db, err := open()
	if err != nil {
		return xerrors.Errorf("cve database error: %w", err)
	}
	cwes, err := lookup.CWEs(db, args, lookup.WithDebug(debug))
	if err != nil {
		return xerrors.Errorf("cwe lookup error: %w", err)
	}
	if len(cwes) == 0 {
		fmt.Fprintln(out, cveNotFound)
		return nil
	}
	for _, cwe := range cwes {
		fmt.Fprintln(out, cwe)
		fmt.Fprintln(out, " ")
	}
	return nil
}
