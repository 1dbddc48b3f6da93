package repository

import (
	"time"

	"github.com/google/uuid"

	"cuet-tuition-backend/internal/models"
)

// SeedTutors is the demo tutor catalog.
func SeedTutors() []models.TutorListing {
	return []models.TutorListing{
		{
			ID:           "t-1",
			Name:         "Sarah Ahmed",
			Department:   "CSE",
			Subjects:     []string{"Algorithms", "Data Structures", "Programming"},
			Rating:       4.9,
			ReviewCount:  38,
			HourlyRate:   800,
			Location:     "CUET Campus",
			Availability: []string{"Sun 5:00 PM", "Tue 5:00 PM", "Thu 7:00 PM"},
			Bio:          "Competitive programmer who loves turning recursion into something obvious.",
		},
		{
			ID:           "t-2",
			Name:         "Fatima Khan",
			Department:   "Math",
			Subjects:     []string{"Calculus", "Linear Algebra"},
			Rating:       4.8,
			ReviewCount:  27,
			HourlyRate:   700,
			Location:     "Online",
			Availability: []string{"Mon 8:00 PM", "Wed 8:00 PM"},
			Bio:          "Calculus made visual, one graph at a time.",
		},
		{
			ID:           "t-3",
			Name:         "Rahim Uddin",
			Department:   "EEE",
			Subjects:     []string{"Circuit Analysis", "Physics"},
			Rating:       4.6,
			ReviewCount:  19,
			HourlyRate:   650,
			Location:     "Chittagong",
			Availability: []string{"Sat 10:00 AM", "Sat 3:00 PM"},
			Bio:          "Final year EEE student, patient with first-years and their first circuits.",
		},
		{
			ID:           "t-4",
			Name:         "Nusrat Jahan",
			Department:   "ChE",
			Subjects:     []string{"Chemistry", "Thermodynamics"},
			Rating:       4.7,
			ReviewCount:  22,
			HourlyRate:   600,
			Location:     "Online/Chittagong",
			Availability: []string{"Tue 6:00 PM", "Fri 4:00 PM"},
			Bio:          "Lab techniques and the theory behind them.",
		},
		{
			ID:           "t-5",
			Name:         "Tanvir Hossain",
			Department:   "ME",
			Subjects:     []string{"Physics", "Engineering Drawing"},
			Rating:       4.5,
			ReviewCount:  11,
			HourlyRate:   550,
			Location:     "CUET Campus",
			Availability: []string{"Mon 4:00 PM", "Thu 4:00 PM"},
			Bio:          "Mechanics, drawing boards and a lot of free-body diagrams.",
		},
		{
			ID:           "t-6",
			Name:         "Ayesha Siddiqua",
			Department:   "CE",
			Subjects:     []string{"English", "Structural Analysis"},
			Rating:       4.6,
			ReviewCount:  15,
			HourlyRate:   500,
			Location:     "Online",
			Availability: []string{"Daily 8:00 PM"},
			Bio:          "Communication skills for engineers, plus beams and trusses.",
		},
	}
}

// SeedTuitions is the demo tuition board, newest first.
func SeedTuitions(now time.Time) []models.Tuition {
	day := 24 * time.Hour
	return []models.Tuition{
		{
			ID:           uuid.MustParse("6f1c2a8e-0d4b-4a43-9b53-0a6f8f1e0001"),
			Title:        "Advanced Mathematics Tutoring",
			Subject:      "Mathematics",
			Level:        "HSC",
			Location:     "Chittagong",
			Schedule:     "Mon, Wed, Fri - 7:00 PM",
			MonthlyFee:   3000,
			Tutor:        models.TuitionTutor{ID: "demo-ahmed", Name: "Ahmed Hassan", Department: "CSE", Year: "4th Year", Rating: 4.8},
			Description:  "Comprehensive mathematics tutoring for HSC students focusing on calculus, algebra, and geometry.",
			Requirements: []string{"HSC level student", "Basic calculator", "Notebook"},
			PostedAt:     now.Add(-2 * day),
		},
		{
			ID:           uuid.MustParse("6f1c2a8e-0d4b-4a43-9b53-0a6f8f1e0003"),
			Title:        "Chemistry Lab Techniques",
			Subject:      "Chemistry",
			Level:        "HSC",
			Location:     "CUET Campus",
			Schedule:     "Weekend - 10:00 AM",
			MonthlyFee:   4000,
			Tutor:        models.TuitionTutor{ID: "demo-mohammad", Name: "Mohammad Ali", Department: "ChE", Year: "4th Year", Rating: 4.7},
			Description:  "Hands-on chemistry tutoring with laboratory techniques and theoretical concepts.",
			Requirements: []string{"Chemistry textbook", "Lab notebook", "Safety goggles"},
			PostedAt:     now.Add(-3 * day),
		},
		{
			ID:           uuid.MustParse("6f1c2a8e-0d4b-4a43-9b53-0a6f8f1e0004"),
			Title:        "English Literature & Communication",
			Subject:      "English",
			Level:        "HSC",
			Location:     "Online",
			Schedule:     "Daily - 8:00 PM",
			MonthlyFee:   2000,
			Tutor:        models.TuitionTutor{ID: "demo-sarah", Name: "Sarah Khan", Department: "CE", Year: "2nd Year", Rating: 4.6},
			Description:  "Improve your English skills with literature analysis and communication techniques.",
			Requirements: []string{"English textbook", "Good internet connection", "Microphone"},
			PostedAt:     now.Add(-5 * day),
		},
		{
			ID:           uuid.MustParse("6f1c2a8e-0d4b-4a43-9b53-0a6f8f1e0002"),
			Title:        "Physics Problem Solving",
			Subject:      "Physics",
			Level:        "HSC",
			Location:     "Online/Chittagong",
			Schedule:     "Tue, Thu, Sat - 6:00 PM",
			MonthlyFee:   2500,
			Tutor:        models.TuitionTutor{ID: "demo-fatima", Name: "Fatima Rahman", Department: "EEE", Year: "3rd Year", Rating: 4.9},
			Description:  "Expert physics tutoring with focus on mechanics, thermodynamics, and electromagnetism.",
			Requirements: []string{"HSC Physics book", "Graph paper", "Scientific calculator"},
			PostedAt:     now.Add(-7 * day),
		},
	}
}
