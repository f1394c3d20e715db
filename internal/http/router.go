package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterConfig struct {
	RequestTimeout time.Duration
	CORSOrigins    []string
	Logger         *zap.Logger
	HealthChecks   map[string]HealthCheck
}

type Handlers struct {
	Carts      *CartHandler
	Products   *ProductHandler
	Users      *UserHandler
	Threads    *ThreadHandler
	Grooming   *AppointmentHandler
	Healthcare *AppointmentHandler
	Payments   *PaymentHandler
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("petVerse server is running..."))
	})
	r.Get("/health", healthHandler(cfg.HealthChecks))

	if h.Carts != nil {
		r.Route("/carts", func(r chi.Router) {
			r.Get("/", h.Carts.GetCart)
			r.Post("/", h.Carts.CreateCart)
			r.Patch("/", h.Carts.AddItem)
			r.Patch("/increase", h.Carts.IncreaseQuantity)
			r.Patch("/decrease", h.Carts.DecreaseQuantity)
			r.Delete("/item", h.Carts.RemoveItem)
			r.Delete("/clear", h.Carts.ClearCart)
		})
	}

	if h.Products != nil {
		r.Get("/products", h.Products.ListProducts)
		r.Get("/product/{id}", h.Products.GetProduct)
	}

	if h.Users != nil {
		r.Get("/users", h.Users.ListUsers)
		r.Post("/users", h.Users.CreateUser)
		r.Get("/user", h.Users.UserExists)
		r.Get("/singleuser", h.Users.GetUser)
	}

	if h.Threads != nil {
		r.Route("/threads", func(r chi.Router) {
			r.Get("/", h.Threads.ListThreads)
			r.Post("/", h.Threads.CreateThread)
			r.Get("/{id}", h.Threads.GetThread)
			r.Patch("/{id}", h.Threads.ToggleLike)
			r.Patch("/comment/{id}", h.Threads.AddComment)
		})
	}

	if h.Grooming != nil {
		r.Route("/grooming", h.Grooming.Routes)
	}
	if h.Healthcare != nil {
		r.Route("/healthcare", h.Healthcare.Routes)
	}

	if h.Payments != nil {
		r.Post("/create-payment-intent", h.Payments.CreatePaymentIntent)
		r.Post("/make-payment", h.Payments.MakePayment)
		r.Get("/payment-history/{email}", h.Payments.PaymentHistory)
	}

	return otelhttp.NewHandler(r, "petverse-server")
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		respondJSON(w, status, resp)
	}
}
