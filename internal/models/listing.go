package models

// TutorListing is a read-only catalog record shown on the tutor search page.
type TutorListing struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Department   string   `json:"department"`
	Subjects     []string `json:"subjects"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	HourlyRate   int      `json:"hourly_rate"`
	Location     string   `json:"location"`
	Availability []string `json:"availability"`
	Bio          string   `json:"bio"`
}

// FilterCriteria narrows a listing collection. Zero values are wildcards;
// a nil PriceCeiling means no upper bound.
type FilterCriteria struct {
	SearchText   string
	Department   string
	Subject      string
	PriceFloor   int
	PriceCeiling *int
}

type ListingsResponse struct {
	Listings []TutorListing `json:"listings"`
	Total    int            `json:"total"`
}
