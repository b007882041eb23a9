package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/deliciousbites/restaurant/internal/cart"
	"github.com/deliciousbites/restaurant/internal/catalog"
	"github.com/deliciousbites/restaurant/internal/contact"
	"github.com/deliciousbites/restaurant/internal/content"
	"github.com/deliciousbites/restaurant/internal/httpx"
	"github.com/deliciousbites/restaurant/internal/order"
	"github.com/deliciousbites/restaurant/internal/reservation"
	"github.com/deliciousbites/restaurant/internal/validate"
)

// redirectWithMsg carries a one-shot flash message in the query string.
func redirectWithMsg(c *gin.Context, path, msg string) {
	c.Redirect(http.StatusSeeOther, path+"?msg="+url.QueryEscape(msg))
}

func renderNotFound(c *gin.Context, what string) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": what + " not found"})
}

type itemView struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Available   bool
}

type categoryView struct {
	Name        string
	Description string
	Items       []itemView
}

func categoryViews(cats []catalog.Category) []categoryView {
	var out []categoryView
	for _, cat := range cats {
		cv := categoryView{Name: cat.Name, Description: cat.Description}
		for _, it := range cat.Items {
			cv.Items = append(cv.Items, itemView{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       it.Price.StringFixed(2),
				Available:   it.Available,
			})
		}
		out = append(out, cv)
	}
	return out
}

func homeHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		featured, err := d.catalog.ListFeatured(c.Request.Context(), 6)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		count, _ := d.catalog.CountCategories(c.Request.Context())
		chefs, _ := d.content.ListChefs(c.Request.Context(), true, 4)
		reviews, _ := d.content.ListReviews(c.Request.Context(), true, 6)

		var items []itemView
		for _, it := range featured {
			items = append(items, itemView{ID: it.ID, Name: it.Name, Description: it.Description, Price: it.Price.StringFixed(2)})
		}
		c.HTML(http.StatusOK, "home.html", gin.H{
			"Restaurant":      d.cfg.RestaurantName,
			"FeaturedItems":   items,
			"CategoriesCount": count,
			"Chefs":           chefs,
			"Reviews":         reviews,
			"Msg":             c.Query("msg"),
		})
	}
}

func menuHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := d.catalog.ListCategories(c.Request.Context(), true)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		c.HTML(http.StatusOK, "menu.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"Categories": categoryViews(cats),
		})
	}
}

func aboutHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		about, err := d.content.GetAbout(c.Request.Context())
		if err != nil && !errors.Is(err, content.ErrNotFound) {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		c.HTML(http.StatusOK, "about.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"About":      about,
		})
	}
}

func contactPageHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"Msg":        c.Query("msg"),
		})
	}
}

func contactSubmitHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := contact.Contact{
			Name:    c.PostForm("name"),
			Email:   c.PostForm("email"),
			Subject: c.PostForm("subject"),
			Message: c.PostForm("message"),
		}
		if err := msg.Validate(); err != nil {
			redirectWithMsg(c, "/contact", err.Error())
			return
		}
		if err := d.contacts.Create(c.Request.Context(), &msg); err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		redirectWithMsg(c, "/contact", "Thank you for contacting us! We will get back to you soon.")
	}
}

func reservationsPageHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "reservations.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"Msg":        c.Query("msg"),
		})
	}
}

func reservationsSubmitHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		guests, _ := strconv.Atoi(c.PostForm("guests"))
		req := reservation.Request{
			Name:            c.PostForm("name"),
			Email:           c.PostForm("email"),
			Phone:           c.PostForm("phone"),
			Date:            c.PostForm("date"),
			Time:            c.PostForm("time"),
			Guests:          guests,
			SpecialRequests: c.PostForm("special_requests"),
		}
		res, err := d.reservations.Create(c.Request.Context(), req)
		if err != nil {
			var fe validate.FieldError
			if errors.As(err, &fe) {
				redirectWithMsg(c, "/reservations", fe.Error())
				return
			}
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		redirectWithMsg(c, "/reservations",
			fmt.Sprintf("Your table #%d has been reserved! Confirmation sent to %s and %s.",
				res.TableNumber, res.Email, res.Phone))
	}
}

func reviewSubmitHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		rating, _ := strconv.Atoi(c.PostForm("rating"))
		rv := content.Review{
			CustomerName: c.PostForm("customer_name"),
			Rating:       rating,
			Comment:      c.PostForm("comment"),
			Approved:     true,
		}
		if err := rv.Validate(); err != nil {
			redirectWithMsg(c, "/", err.Error())
			return
		}
		if err := d.content.CreateReview(c.Request.Context(), &rv); err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		redirectWithMsg(c, "/", "Thank you for your review!")
	}
}

func orderFoodHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := d.catalog.ListCategories(c.Request.Context(), true)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		count, _ := d.carts.Count(c.Request.Context(), httpx.SessionID(c))
		c.HTML(http.StatusOK, "order_food.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"Categories": categoryViews(cats),
			"CartCount":  count,
			"Msg":        c.Query("msg"),
		})
	}
}

func addToCartHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			renderNotFound(c, "menu item")
			return
		}
		entry, err := d.carts.Add(c.Request.Context(), httpx.SessionID(c), itemID)
		if errors.Is(err, catalog.ErrNotFound) {
			renderNotFound(c, "menu item")
			return
		}
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		redirectWithMsg(c, "/order", entry.Name+" added to cart!")
	}
}

func updateCartHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		quantity, err := strconv.Atoi(c.PostForm("quantity"))
		if err != nil {
			quantity = 1
		}
		if err := d.carts.Update(c.Request.Context(), httpx.SessionID(c), c.Param("id"), quantity); err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/cart")
	}
}

func removeFromCartHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := d.carts.Remove(c.Request.Context(), httpx.SessionID(c), c.Param("id")); err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		redirectWithMsg(c, "/cart", "Item removed from cart!")
	}
}

type cartLineView struct {
	ItemID   string
	Name     string
	Price    string
	Quantity int
	Subtotal string
}

func cartViewData(v cart.View) ([]cartLineView, string) {
	var lines []cartLineView
	for _, l := range v.Lines {
		lines = append(lines, cartLineView{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Price:    l.Price.StringFixed(2),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal.StringFixed(2),
		})
	}
	return lines, v.Total.StringFixed(2)
}

func viewCartHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := d.carts.View(c.Request.Context(), httpx.SessionID(c))
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		lines, total := cartViewData(v)
		c.HTML(http.StatusOK, "cart.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"Lines":      lines,
			"Total":      total,
			"Msg":        c.Query("msg"),
		})
	}
}

func checkoutPageHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := d.carts.View(c.Request.Context(), httpx.SessionID(c))
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		if len(v.Lines) == 0 {
			redirectWithMsg(c, "/order", "Your cart is empty!")
			return
		}
		lines, total := cartViewData(v)
		c.HTML(http.StatusOK, "checkout.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"Lines":      lines,
			"Total":      total,
		})
	}
}

func paymentHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, _ := strconv.Atoi(c.PostForm("table_number"))
		form := order.CheckoutForm{
			CustomerName:  c.PostForm("customer_name"),
			CustomerEmail: c.PostForm("customer_email"),
			CustomerPhone: c.PostForm("customer_phone"),
			TableNumber:   table,
			PaymentMethod: c.PostForm("payment_method"),
		}
		code, err := d.orders.Checkout(c.Request.Context(), httpx.SessionID(c), form)
		if errors.Is(err, order.ErrEmptyCart) {
			redirectWithMsg(c, "/order", "Your cart is empty!")
			return
		}
		var fe validate.FieldError
		if errors.As(err, &fe) {
			redirectWithMsg(c, "/checkout", fe.Error())
			return
		}
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/receipt/"+code)
	}
}

type receiptItemView struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

func receiptHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := d.orders.Receipt(c.Request.Context(), c.Param("code"))
		if errors.Is(err, order.ErrNotFound) {
			renderNotFound(c, "order")
			return
		}
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "something went wrong"})
			return
		}
		var views []receiptItemView
		for _, it := range items {
			sub := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			views = append(views, receiptItemView{
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price.StringFixed(2),
				Subtotal: sub.StringFixed(2),
			})
		}
		c.HTML(http.StatusOK, "receipt.html", gin.H{
			"Restaurant": d.cfg.RestaurantName,
			"Order":      o,
			"Total":      o.Total.StringFixed(2),
			"Items":      views,
			"CreatedAt":  o.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
}
