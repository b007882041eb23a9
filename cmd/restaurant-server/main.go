package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deliciousbites/restaurant/internal/cart"
	"github.com/deliciousbites/restaurant/internal/catalog"
	"github.com/deliciousbites/restaurant/internal/config"
	"github.com/deliciousbites/restaurant/internal/contact"
	"github.com/deliciousbites/restaurant/internal/content"
	"github.com/deliciousbites/restaurant/internal/database"
	"github.com/deliciousbites/restaurant/internal/logger"
	"github.com/deliciousbites/restaurant/internal/notify"
	"github.com/deliciousbites/restaurant/internal/order"
	"github.com/deliciousbites/restaurant/internal/reservation"
)

type deps struct {
	cfg config.Config
	log *slog.Logger

	catalog      catalog.Repository
	carts        *cart.Service
	orders       *order.Service
	reservations *reservation.Service
	contacts     contact.Repository
	content      content.Repository
}

func main() {
	cfg := config.Load()
	log := logger.New("restaurant-server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("database connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Error("migrations failed", slog.Any("err", err))
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := database.Seed(ctx, pool); err != nil {
			log.Error("seed failed", slog.Any("err", err))
			os.Exit(1)
		}
	}

	mailer, closeMailer, err := buildMailer(cfg, log)
	if err != nil {
		log.Error("mailer setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer closeMailer()
	dispatcher := notify.NewDispatcher(mailer)

	catalogRepo := catalog.NewPGRepo(pool)
	carts := cart.NewService(cart.NewPGStore(pool), catalogRepo)

	d := deps{
		cfg:     cfg,
		log:     log,
		catalog: catalogRepo,
		carts:   carts,
		orders: order.NewService(order.NewPGRepo(pool), carts, dispatcher,
			cfg.RestaurantName, cfg.RestaurantPhone),
		reservations: reservation.NewService(reservation.NewPGRepo(pool), dispatcher,
			cfg.RestaurantName, cfg.RestaurantPhone),
		contacts: contact.NewPGRepo(pool),
		content:  content.NewPGRepo(pool),
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.Any("err", err))
	}
	dispatcher.Wait()
}

func buildMailer(cfg config.Config, log *slog.Logger) (notify.Mailer, func(), error) {
	switch cfg.NotifyDriver {
	case "smtp":
		return &notify.SMTPMailer{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom}, func() {}, nil
	case "amqp":
		m, err := notify.NewAMQPMailer(cfg.AMQPURL)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { _ = m.Close() }, nil
	default:
		return &notify.LogMailer{Log: log}, func() {}, nil
	}
}
