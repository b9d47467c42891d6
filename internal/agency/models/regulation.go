package models

import (
	"strconv"
	"strings"
)

// Field limits for a regulation record.
const (
	MaxRegulationNameLength  = 100
	MaxRegulationValueLength = 4000
)

// RegulationMaxDistributorsPerDistrict caps how many distributors a single
// district may hold. The quota only applies while the regulation exists.
const RegulationMaxDistributorsPerDistrict = "MaxDistributorsPerDistrict"

// Regulation is a named, string-valued policy setting. Names are unique.
type Regulation struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// IntValue parses Value as a base-10 integer.
func (r *Regulation) IntValue() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(r.Value))
	if err != nil {
		return 0, false
	}
	return n, true
}
