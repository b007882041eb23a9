package reservation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/deliciousbites/restaurant/internal/validate"
)

// Notifier dispatches a best-effort mail; failures are discarded by the
// dispatcher.
type Notifier interface {
	Go(to, subject, body string)
}

type Service struct {
	repo   Repository
	notify Notifier

	restaurantName  string
	restaurantPhone string

	// now is swappable in tests for the date-in-the-past check.
	now func() time.Time
}

func NewService(repo Repository, notify Notifier, restaurantName, restaurantPhone string) *Service {
	return &Service{
		repo:            repo,
		notify:          notify,
		restaurantName:  restaurantName,
		restaurantPhone: restaurantPhone,
		now:             time.Now,
	}
}

type Request struct {
	Name            string
	Email           string
	Phone           string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	Guests          int
	SpecialRequests string
}

func (s *Service) validate(req *Request) error {
	if err := validate.Required("name", req.Name); err != nil {
		return err
	}
	if err := validate.Email("email", req.Email); err != nil {
		return err
	}
	if err := validate.Required("phone", req.Phone); err != nil {
		return err
	}
	if req.Guests < 1 {
		return validate.FieldError{Field: "guests", Message: "guest count must be at least 1"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return validate.FieldError{Field: "date", Message: "invalid date, want YYYY-MM-DD"}
	}
	// Compare calendar days in the server's timezone; the format sorts
	// lexicographically.
	if req.Date < s.now().Format("2006-01-02") {
		return validate.FieldError{Field: "date", Message: "date must not be in the past"}
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return validate.FieldError{Field: "time", Message: "invalid time, want HH:MM"}
	}
	return nil
}

// Create validates the request, assigns a random table in [1, 20],
// persists the reservation as pending and fires the confirmation mail
// without waiting for it.
func (s *Service) Create(ctx context.Context, req Request) (*Reservation, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	res := &Reservation{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		TableNumber:     rand.Intn(maxTable) + 1,
		SpecialRequests: req.SpecialRequests,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	s.notify.Go(res.Email, "Table Reservation Confirmation - "+s.restaurantName, s.confirmationBody(res))
	return res, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Reservation, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateStatus is the admin edit path: status and table reassignment.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, tableNumber int) error {
	if !validStatus(status) {
		return validate.FieldError{Field: "status", Message: "unknown status " + status}
	}
	if tableNumber < 1 || tableNumber > maxTable {
		return validate.FieldError{Field: "table_number", Message: "table number out of range"}
	}
	return s.repo.Update(ctx, id, status, tableNumber)
}

func (s *Service) confirmationBody(res *Reservation) string {
	special := ""
	if res.SpecialRequests != "" {
		special = "\nSpecial Requests: " + res.SpecialRequests + "\n"
	}
	return fmt.Sprintf(`Dear %s,

Thank you for choosing %s!

Your table reservation has been confirmed:
- Date: %s
- Time: %s
- Guests: %d
- Table Number: %d
%s
We look forward to serving you!

Best regards,
%s Team
Phone: %s`,
		res.Name, s.restaurantName,
		res.Date, res.Time, res.Guests, res.TableNumber,
		special,
		s.restaurantName, s.restaurantPhone)
}
