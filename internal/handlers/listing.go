package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"cuet-tuition-backend/internal/models"
	"cuet-tuition-backend/internal/services"
)

type listingSearcher interface {
	Search(ctx context.Context, c models.FilterCriteria) ([]models.TutorListing, error)
	Subjects(ctx context.Context) ([]string, error)
	Departments(ctx context.Context) ([]string, error)
}

type ListingHandler struct {
	listings listingSearcher
}

func NewListingHandler(listings listingSearcher) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// Search handles GET /tutors?search=&department=&subject=&min_price=&max_price=
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	criteria, fields := parseFilterCriteria(r)
	if len(fields) > 0 {
		handleServiceError(w, r, &services.ValidationError{Fields: fields})
		return
	}

	listings, err := h.listings.Search(r.Context(), criteria)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ListingsResponse{Listings: listings, Total: len(listings)})
}

func (h *ListingHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.listings.Subjects(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
}

func (h *ListingHandler) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.listings.Departments(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"departments": departments})
}

func parseFilterCriteria(r *http.Request) (models.FilterCriteria, map[string]string) {
	q := r.URL.Query()
	fields := make(map[string]string)

	c := models.FilterCriteria{
		SearchText: strings.TrimSpace(q.Get("search")),
		Department: q.Get("department"),
		Subject:    q.Get("subject"),
	}

	if v := q.Get("min_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["min_price"] = "Must be a non-negative whole number"
		} else {
			c.PriceFloor = n
		}
	}
	if v := q.Get("max_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["max_price"] = "Must be a non-negative whole number"
		} else {
			c.PriceCeiling = &n
		}
	}

	return c, fields
}
