package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/deliciousbites/restaurant/internal/catalog"
	"github.com/deliciousbites/restaurant/internal/content"
	"github.com/deliciousbites/restaurant/internal/order"
	"github.com/deliciousbites/restaurant/internal/reservation"
	"github.com/deliciousbites/restaurant/internal/validate"
)

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func adminListMenuHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := d.catalog.ListCategories(c.Request.Context(), false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

func adminCreateItemHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		if req.Name == "" || req.CategoryID < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and category_id are required"})
			return
		}
		available := true
		if req.Available != nil {
			available = *req.Available
		}
		it := catalog.MenuItem{
			Name:        req.Name,
			Description: req.Description,
			Price:       price,
			CategoryID:  req.CategoryID,
			Available:   available,
		}
		if err := d.catalog.CreateItem(c.Request.Context(), &it); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

func adminUpdateItemHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var req catalog.UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		it := catalog.MenuItem{ID: id, Name: req.Name, Description: req.Description, Available: true}
		if req.Available != nil {
			it.Available = *req.Available
		}
		updatePrice := req.Price != ""
		if updatePrice {
			price, err := decimal.NewFromString(req.Price)
			if err != nil || price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
				return
			}
			it.Price = price
		}
		err := d.catalog.UpdateItem(c.Request.Context(), &it, updatePrice)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func adminDeleteItemHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		deleted, err := d.catalog.DeleteItem(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func adminCreateCategoryHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		cat := catalog.Category{Name: req.Name, Description: req.Description}
		if err := d.catalog.CreateCategory(c.Request.Context(), &cat); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func adminDeleteCategoryHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		deleted, err := d.catalog.DeleteCategory(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func adminListOrdersHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		orders, err := d.orders.List(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "limit": limit, "offset": offset})
	}
}

func adminGetOrderHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := d.orders.Receipt(c.Request.Context(), c.Param("code"))
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
	}
}

func adminListReservationsHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		reservations, err := d.reservations.List(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reservations": reservations, "limit": limit, "offset": offset})
	}
}

func adminUpdateReservationHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var req struct {
			Status      string `json:"status"`
			TableNumber int    `json:"table_number"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		err := d.reservations.UpdateStatus(c.Request.Context(), id, req.Status, req.TableNumber)
		var fe validate.FieldError
		switch {
		case errors.As(err, &fe):
			c.JSON(http.StatusBadRequest, gin.H{"error": fe.Error()})
		case errors.Is(err, reservation.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"updated": true})
		}
	}
}

func adminListContactsHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		contacts, err := d.contacts.List(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contacts": contacts, "limit": limit, "offset": offset})
	}
}

func adminListReviewsHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		reviews, err := d.content.ListAllReviews(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "limit": limit, "offset": offset})
	}
}

func adminModerateReviewHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var req struct {
			Approved bool `json:"is_approved"`
			Featured bool `json:"is_featured"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		err := d.content.ModerateReview(c.Request.Context(), id, req.Approved, req.Featured)
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func adminListChefsHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		chefs, err := d.content.ListChefs(c.Request.Context(), false, 100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"chefs": chefs})
	}
}

func adminCreateChefHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var chef content.Chef
		if err := c.ShouldBindJSON(&chef); err != nil || chef.Name == "" || chef.Position == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and position are required"})
			return
		}
		if err := d.content.CreateChef(c.Request.Context(), &chef); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, chef)
	}
}

func adminUpdateChefHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var chef content.Chef
		if err := c.ShouldBindJSON(&chef); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		chef.ID = id
		err := d.content.UpdateChef(c.Request.Context(), &chef)
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chef not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func adminDeleteChefHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		deleted, err := d.content.DeleteChef(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "chef not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func adminGetAboutHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		about, err := d.content.GetAbout(c.Request.Context())
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "about not set"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, about)
	}
}

func adminPutAboutHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var about content.About
		if err := c.ShouldBindJSON(&about); err != nil || about.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		if err := d.content.UpsertAbout(c.Request.Context(), &about); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, about)
	}
}
