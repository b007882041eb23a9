package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/deliciousbites/restaurant/internal/cart"
	"github.com/deliciousbites/restaurant/internal/validate"
)

// ErrEmptyCart rejects a checkout with no cart entries. Handlers turn it
// into a redirect back to the order page with a warning, not a hard error.
var ErrEmptyCart = errors.New("cart is empty")

// codeAttempts bounds the retry loop on order-code collisions. The code
// space is 36^10, so a second collision in a row means something else is
// wrong.
const codeAttempts = 5

// Carts is the slice of the cart service the pipeline needs.
type Carts interface {
	View(ctx context.Context, sessionID string) (cart.View, error)
	Clear(ctx context.Context, sessionID string) error
}

// Notifier dispatches a best-effort mail. Delivery failures are the
// dispatcher's to discard, never the caller's.
type Notifier interface {
	Go(to, subject, body string)
}

type Service struct {
	repo   Repository
	carts  Carts
	notify Notifier

	restaurantName  string
	restaurantPhone string
}

func NewService(repo Repository, carts Carts, notify Notifier, restaurantName, restaurantPhone string) *Service {
	return &Service{
		repo:            repo,
		carts:           carts,
		notify:          notify,
		restaurantName:  restaurantName,
		restaurantPhone: restaurantPhone,
	}
}

type CheckoutForm struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	TableNumber   int
	PaymentMethod string
}

func (f *CheckoutForm) Validate() error {
	if err := validate.Required("customer_name", f.CustomerName); err != nil {
		return err
	}
	if err := validate.Email("customer_email", f.CustomerEmail); err != nil {
		return err
	}
	if err := validate.Required("customer_phone", f.CustomerPhone); err != nil {
		return err
	}
	if f.TableNumber < 1 {
		return validate.FieldError{Field: "table_number", Message: "table number must be positive"}
	}
	return validate.Required("payment_method", f.PaymentMethod)
}

// Checkout converts the visitor's cart into a persisted order and returns
// the order code for the receipt page.
//
// The order and its items are written in one transaction using the prices
// snapshotted in the cart, so a catalog price change mid-session never
// moves the total. Payment is simulated: every order is persisted as
// completed. The cart is cleared once the order is durable, and the
// confirmation mail is fired without waiting for it.
func (s *Service) Checkout(ctx context.Context, sessionID string, form CheckoutForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	v, err := s.carts.View(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if len(v.Lines) == 0 {
		return "", ErrEmptyCart
	}

	items := make([]Item, 0, len(v.Lines))
	for _, line := range v.Lines {
		itemID, err := strconv.ParseInt(line.ItemID, 10, 64)
		if err != nil {
			return "", fmt.Errorf("bad cart entry %q: %w", line.ItemID, err)
		}
		items = append(items, Item{
			MenuItemID: itemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			Price:      line.Price,
		})
	}

	o := &Order{
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		CustomerPhone: form.CustomerPhone,
		TableNumber:   form.TableNumber,
		Total:         v.Total,
		PaymentMethod: form.PaymentMethod,
		PaymentStatus: PaymentCompleted,
	}

	for attempt := 0; ; attempt++ {
		o.Code = NewCode()
		err = s.repo.Create(ctx, o, items)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrCodeTaken) || attempt+1 >= codeAttempts {
			return "", err
		}
	}

	s.notify.Go(o.CustomerEmail, "Order Confirmation - "+o.Code, s.confirmationBody(o, v))

	// The order is durable; a failed cart cleanup must not fail the
	// checkout.
	_ = s.carts.Clear(ctx, sessionID)

	return o.Code, nil
}

// Receipt looks up an order and its lines by code.
func (s *Service) Receipt(ctx context.Context, code string) (*Order, []Item, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Order, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) confirmationBody(o *Order, v cart.View) string {
	var lines []string
	for _, l := range v.Lines {
		lines = append(lines, fmt.Sprintf("  %dx %s - ₹%s", l.Quantity, l.Name, l.Subtotal.StringFixed(2)))
	}
	return fmt.Sprintf(`Dear %s,

Thank you for your order at %s!

Order ID: %s
Table Number: %d
Date: %s

Items Ordered:
%s

Total Amount: ₹%s
Payment Method: %s
Payment Status: Completed

Your order will be served shortly!

Best regards,
%s Team
Phone: %s`,
		o.CustomerName, s.restaurantName, o.Code, o.TableNumber,
		time.Now().Format("2006-01-02 15:04"),
		strings.Join(lines, "\n"),
		o.Total.StringFixed(2), o.PaymentMethod,
		s.restaurantName, s.restaurantPhone)
}
