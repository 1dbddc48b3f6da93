package models

import (
	"time"

	"github.com/google/uuid"
)

// AllOption is the select value the tuition board uses for "no filter".
const AllOption = "All"

type TuitionTutor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department,omitempty"`
	Year       string  `json:"year,omitempty"`
	Rating     float64 `json:"rating"`
}

type Tuition struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Subject      string       `json:"subject"`
	Level        string       `json:"level"`
	Location     string       `json:"location"`
	Schedule     string       `json:"schedule"`
	MonthlyFee   int          `json:"monthly_fee"` // BDT
	Tutor        TuitionTutor `json:"tutor"`
	Description  string       `json:"description"`
	Requirements []string     `json:"requirements"`
	PostedAt     time.Time    `json:"posted_at"`
}

type TuitionCriteria struct {
	SearchText string
	Subject    string
	Level      string
}

type CreateTuitionRequest struct {
	Title        string   `json:"title"`
	Subject      string   `json:"subject"`
	Level        string   `json:"level"`
	Location     string   `json:"location"`
	Schedule     string   `json:"schedule"`
	MonthlyFee   int      `json:"monthly_fee"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}
