package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Saipoo/foodorder/docs"
	"github.com/Saipoo/foodorder/internal/queue"
	"github.com/Saipoo/foodorder/internal/ratelimiter"
	"github.com/Saipoo/foodorder/internal/repo"
	"github.com/Saipoo/foodorder/internal/service"
	"github.com/Saipoo/foodorder/internal/store/mongo"
	"github.com/Saipoo/foodorder/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config             config
	logger             *zap.SugaredLogger
	rateLimiter        ratelimiter.Limiter
	storage            *mongo.Storage
	broker             queue.Broker
	menuRepo           repo.MenuRepository
	authService        *service.AuthService
	orderService       *service.OrderService
	reportService      *service.ReportService
	notificationWorker *worker.NotificationWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	authSecret  string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	smtp        smtpConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type smtpConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Get("/menu", app.listMenuHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.registerCustomerHandler)
			r.Post("/login", app.loginCustomerHandler)
			r.Post("/logout", app.logoutCustomerHandler)

			r.With(app.CustomerAuthMiddleware).Get("/me", app.currentCustomerHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(app.CustomerAuthMiddleware)

				r.Post("/", app.createOrderHandler)
				r.Get("/", app.listMyOrdersHandler)
			})

			r.With(app.OrderViewerMiddleware).Get("/{order_id}", app.getOrderHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", app.registerAdminHandler)
				r.Post("/login", app.loginAdminHandler)
				r.Post("/logout", app.logoutAdminHandler)

				r.With(app.AdminAuthMiddleware).Get("/me", app.currentAdminHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.AdminAuthMiddleware)

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", app.listAllOrdersHandler)
					r.Get("/download", app.downloadOrdersHandler)
					r.Put("/{order_id}/status", app.updateOrderStatusHandler)
					r.Get("/{order_id}/receipt", app.orderReceiptHandler)
				})

				r.Route("/menu", func(r chi.Router) {
					r.Get("/", app.adminListMenuHandler)
					r.Post("/", app.createMenuItemHandler)
					r.Put("/{item_id}", app.updateMenuItemHandler)
					r.Delete("/{item_id}", app.deleteMenuItemHandler)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/revenue", app.revenueHandler)
					r.Get("/stats", app.statsHandler)
				})
			})
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Campus Cafeteria"
	docs.SwaggerInfo.Description = "API for the campus cafeteria ordering system"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.notificationWorker != nil {
		if err := app.notificationWorker.Start(); err != nil {
			return fmt.Errorf("failed to start notification worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.notificationWorker != nil {
			app.notificationWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
