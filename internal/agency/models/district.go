package models

// MaxDistrictNameLength bounds District.Name.
const MaxDistrictNameLength = 50

// District groups distributors geographically. A district cannot be deleted
// while any distributor references it.
type District struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DistrictSummary is a district annotated with how many distributors it holds.
type DistrictSummary struct {
	District
	DistributorCount int `json:"distributor_count"`
}
