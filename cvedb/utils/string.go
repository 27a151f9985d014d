package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goark/go-cvss/v3/metric"
)

const (
	feedPrefix = "nvdcve-1.1-"
	// JSONExt plain feed file extension
	JSONExt = ".json"
	// GzipExt compressed feed file extension
	GzipExt = ".json.gz"
)

// FeedFileName return the cached feed file name of a year
func FeedFileName(year, ext string) string {
	return fmt.Sprintf("%s%s%s", feedPrefix, year, ext)
}

// FeedYear extract the year out of a cached feed file name
func FeedYear(name string) (string, bool) {
	if !strings.HasPrefix(name, feedPrefix) {
		return "", false
	}
	year := strings.TrimPrefix(name, feedPrefix)
	switch {
	case strings.HasSuffix(year, GzipExt):
		year = strings.TrimSuffix(year, GzipExt)
	case strings.HasSuffix(year, JSONExt):
		year = strings.TrimSuffix(year, JSONExt)
	default:
		return "", false
	}
	if len(year) != 4 || strings.Trim(year, "0123456789") != "" {
		return "", false
	}
	return year, true
}

func CvssVectorToScore(vector string) (string, float64) {
	bm, err := metric.NewBase().Decode(vector)
	if err != nil {
		return "", 0.0
	}
	return bm.Severity().String(), bm.Score()
}

// CacheDir default location of the cached nvd feeds, shared with cve-bin-tool
func CacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "cve-bin-tool")
}
