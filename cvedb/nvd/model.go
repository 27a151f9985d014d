package nvd

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-cwe-lookup/cvedb/utils"
)

// ErrMissingField returned when a feed record lacks a field the lookup relies on
var ErrMissingField = errors.New("missing field")

// Feed one year of the nvd json 1.1 data feed, CVE_Items is nil when the key is absent
type Feed struct {
	CVEItems []*Item `json:"CVE_Items"`
}

type Item struct {
	CVE           *CVE    `json:"cve"`
	Impact        *Impact `json:"impact,omitempty"`
	PublishedDate string  `json:"publishedDate,omitempty"`
}

type CVE struct {
	Meta        *Meta        `json:"CVE_data_meta"`
	Problemtype *Problemtype `json:"problemtype"`
}

type Meta struct {
	ID *string `json:"ID"`
}

type Problemtype struct {
	ProblemtypeData []*ProblemtypeData `json:"problemtype_data"`
}

type ProblemtypeData struct {
	Description []*LangString `json:"description"`
}

type LangString struct {
	Lang  string  `json:"lang"`
	Value *string `json:"value"`
}

type Impact struct {
	BaseMetricV3 *BaseMetricV3 `json:"baseMetricV3,omitempty"`
}

type BaseMetricV3 struct {
	CvssV3 *CvssV3 `json:"cvssV3,omitempty"`
}

type CvssV3 struct {
	VectorString string  `json:"vectorString"`
	BaseScore    float64 `json:"baseScore"`
}

// ID return cve.CVE_data_meta.ID, an empty id is valid
func (i *Item) ID() (string, error) {
	if i == nil || i.CVE == nil {
		return "", xerrors.Errorf("cve: %w", ErrMissingField)
	}
	if i.CVE.Meta == nil || i.CVE.Meta.ID == nil {
		return "", xerrors.Errorf("cve.CVE_data_meta.ID: %w", ErrMissingField)
	}
	return *i.CVE.Meta.ID, nil
}

// Weakness return the value of the first description of the first problem type
// further problem types and descriptions are ignored
func (i *Item) Weakness() (string, error) {
	if i == nil || i.CVE == nil {
		return "", xerrors.Errorf("cve: %w", ErrMissingField)
	}
	pt := i.CVE.Problemtype
	if pt == nil {
		return "", xerrors.Errorf("cve.problemtype: %w", ErrMissingField)
	}
	if len(pt.ProblemtypeData) == 0 || pt.ProblemtypeData[0] == nil {
		return "", xerrors.Errorf("cve.problemtype.problemtype_data[0]: %w", ErrMissingField)
	}
	desc := pt.ProblemtypeData[0].Description
	if len(desc) == 0 || desc[0] == nil {
		return "", xerrors.Errorf("cve.problemtype.problemtype_data[0].description[0]: %w", ErrMissingField)
	}
	if desc[0].Value == nil {
		return "", xerrors.Errorf("cve.problemtype.problemtype_data[0].description[0].value: %w", ErrMissingField)
	}
	return *desc[0].Value, nil
}

// Severity decode the cvss v3 vector of the item, empty when none is recorded
func (i *Item) Severity() (string, float64) {
	if i == nil || i.Impact == nil || i.Impact.BaseMetricV3 == nil || i.Impact.BaseMetricV3.CvssV3 == nil {
		return "", 0.0
	}
	return utils.CvssVectorToScore(i.Impact.BaseMetricV3.CvssV3.VectorString)
}

// Validate check the feed carries CVE_Items and every item an identifier, all offending items are reported at once
func (f *Feed) Validate() error {
	if f == nil || f.CVEItems == nil {
		return xerrors.Errorf("CVE_Items: %w", ErrMissingField)
	}
	var result error
	for index, item := range f.CVEItems {
		if _, err := item.ID(); err != nil {
			result = multierror.Append(result, fmt.Errorf("item #%d: %w", index, err))
		}
	}
	return result
}
