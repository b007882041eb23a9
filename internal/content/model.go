// Package content covers the display records behind the public pages:
// the about text, chef profiles and customer reviews.
package content

import (
	"time"

	"github.com/deliciousbites/restaurant/internal/validate"
)

type About struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Chef struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Position        string `json:"position"`
	Bio             string `json:"bio,omitempty"`
	ExperienceYears int    `json:"experience_years"`
	Specialty       string `json:"specialty,omitempty"`
	Active          bool   `json:"is_active"`
	// Rank orders chefs on the page, lowest first.
	Rank int `json:"rank"`
}

type Review struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Featured     bool      `json:"is_featured"`
	Approved     bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *Review) Validate() error {
	if err := validate.Required("customer_name", r.CustomerName); err != nil {
		return err
	}
	if r.Rating < 1 || r.Rating > 5 {
		return validate.FieldError{Field: "rating", Message: "rating must be between 1 and 5"}
	}
	return validate.Required("comment", r.Comment)
}
