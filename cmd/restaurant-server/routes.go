package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deliciousbites/restaurant/internal/httpx"
)

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(d.log))
	r.SetHTMLTemplate(loadTemplates())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Customer pages. Everything under Session carries the visitor's
	// cart key.
	site := r.Group("/", httpx.Session())
	{
		site.GET("/", homeHandler(d))
		site.GET("/menu", menuHandler(d))
		site.GET("/about", aboutHandler(d))
		site.GET("/contact", contactPageHandler(d))
		site.POST("/contact", contactSubmitHandler(d))
		site.GET("/reservations", reservationsPageHandler(d))
		site.POST("/reservations", reservationsSubmitHandler(d))
		site.POST("/reviews", reviewSubmitHandler(d))

		site.GET("/order", orderFoodHandler(d))
		site.POST("/cart/add/:id", addToCartHandler(d))
		site.POST("/cart/update/:id", updateCartHandler(d))
		site.POST("/cart/remove/:id", removeFromCartHandler(d))
		site.GET("/cart", viewCartHandler(d))
		site.GET("/checkout", checkoutPageHandler(d))
		site.POST("/checkout", paymentHandler(d))
		site.GET("/receipt/:code", receiptHandler(d))
	}

	// Admin back office, JSON over a bearer token.
	admin := r.Group("/admin", httpx.AdminAuth(d.cfg.AdminTokenHash))
	{
		admin.GET("/menu-items", adminListMenuHandler(d))
		admin.POST("/menu-items", adminCreateItemHandler(d))
		admin.PUT("/menu-items/:id", adminUpdateItemHandler(d))
		admin.DELETE("/menu-items/:id", adminDeleteItemHandler(d))
		admin.POST("/categories", adminCreateCategoryHandler(d))
		admin.DELETE("/categories/:id", adminDeleteCategoryHandler(d))

		admin.GET("/orders", adminListOrdersHandler(d))
		admin.GET("/orders/:code", adminGetOrderHandler(d))

		admin.GET("/reservations", adminListReservationsHandler(d))
		admin.PUT("/reservations/:id", adminUpdateReservationHandler(d))

		admin.GET("/contacts", adminListContactsHandler(d))

		admin.GET("/reviews", adminListReviewsHandler(d))
		admin.PUT("/reviews/:id", adminModerateReviewHandler(d))

		admin.GET("/chefs", adminListChefsHandler(d))
		admin.POST("/chefs", adminCreateChefHandler(d))
		admin.PUT("/chefs/:id", adminUpdateChefHandler(d))
		admin.DELETE("/chefs/:id", adminDeleteChefHandler(d))

		admin.GET("/about", adminGetAboutHandler(d))
		admin.PUT("/about", adminPutAboutHandler(d))
	}

	return r
}
