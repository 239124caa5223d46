package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/cache"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/config"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/handlers"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
	"github.com/gorilla/csrf"
)

// queryCacheTTL bounds how stale a cached backend read may get before the
// next view re-fetches it.
const queryCacheTTL = 30 * time.Second

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; production could use JSONHandler.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Backend API client and query cache
	backend := api.New(cfg.BackendBaseURL, cfg.RequestTimeout)
	queries := cache.New(queryCacheTTL)

	// 3. Session Setup
	sessions := session.NewManager(cfg.SessionKey, cfg.CookieSecure, cfg.CookieDomain)

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	storefront := &handlers.StorefrontHandler{API: backend, Sessions: sessions, Templates: templates, Cache: queries}
	auth := &handlers.AuthHandler{API: backend, Sessions: sessions, Templates: templates}
	cart := &handlers.CartHandler{API: backend, Sessions: sessions, Templates: templates, Cache: queries}
	checkout := &handlers.CheckoutHandler{API: backend, Sessions: sessions, Templates: templates, Cache: queries}
	payment := &handlers.PaymentHandler{API: backend, Sessions: sessions, Templates: templates, PaystackPublicKey: cfg.PaystackPublicKey}
	orders := &handlers.OrderHandler{API: backend, Sessions: sessions, Templates: templates}
	admin := &handlers.AdminHandler{API: backend, Sessions: sessions, Templates: templates, Cache: queries, Config: cfg}
	chat := handlers.NewChatHandler(sessions, templates, cfg.ChatWebhookURL, cfg.RequestTimeout)

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiter for the abuse-prone POST endpoints
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Storefront
	mux.HandleFunc("GET /{$}", storefront.Index)
	mux.HandleFunc("GET /products/{id}", storefront.ProductDetail)

	// Auth
	mux.HandleFunc("GET /login", auth.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(auth.LoginPost))
	mux.HandleFunc("GET /signup", auth.SignupGet)
	mux.HandleFunc("POST /signup", rateLimiter.Middleware(auth.SignupPost))
	mux.HandleFunc("POST /logout", auth.Logout)

	// Cart
	mux.HandleFunc("GET /cart", handlers.RequireAuth(sessions, cart.View))
	mux.HandleFunc("POST /cart/items", handlers.RequireAuth(sessions, cart.Add))
	mux.HandleFunc("POST /cart/items/update", handlers.RequireAuth(sessions, cart.Update))
	mux.HandleFunc("POST /cart/items/remove", handlers.RequireAuth(sessions, cart.Remove))
	mux.HandleFunc("POST /cart/clear", handlers.RequireAuth(sessions, cart.Clear))

	// Checkout and payment
	mux.HandleFunc("GET /checkout", handlers.RequireAuth(sessions, checkout.Form))
	mux.HandleFunc("POST /checkout", handlers.RequireAuth(sessions, checkout.Submit))
	mux.HandleFunc("GET /payment/{id}", handlers.RequireAuth(sessions, payment.Page))
	mux.HandleFunc("GET /payment/verify/{reference}", handlers.RequireAuth(sessions, payment.Verify))

	// Orders
	mux.HandleFunc("GET /orders", handlers.RequireAuth(sessions, orders.List))
	mux.HandleFunc("GET /orders/{id}", handlers.RequireAuth(sessions, orders.Detail))

	// Support chat
	mux.HandleFunc("GET /chat", chat.Widget)
	mux.HandleFunc("POST /chat/send", rateLimiter.Middleware(chat.Send))

	// Admin console
	mux.HandleFunc("GET /admin", handlers.RequireAdmin(sessions, admin.Dashboard))
	mux.HandleFunc("GET /admin/products", handlers.RequireAdmin(sessions, admin.ListProducts))
	mux.HandleFunc("GET /admin/products/new", handlers.RequireAdmin(sessions, admin.NewProductForm))
	mux.HandleFunc("POST /admin/products", handlers.RequireAdmin(sessions, admin.CreateProduct))
	mux.HandleFunc("GET /admin/products/edit", handlers.RequireAdmin(sessions, admin.EditProductForm))
	mux.HandleFunc("POST /admin/products/update", handlers.RequireAdmin(sessions, admin.UpdateProduct))
	mux.HandleFunc("GET /admin/products/delete", handlers.RequireAdmin(sessions, admin.ConfirmDeleteProduct))
	mux.HandleFunc("POST /admin/products/delete", handlers.RequireAdmin(sessions, admin.DeleteProduct))
	mux.HandleFunc("GET /admin/orders", handlers.RequireAdmin(sessions, admin.ListOrders))
	mux.HandleFunc("POST /admin/orders/update", handlers.RequireAdmin(sessions, admin.UpdateOrder))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "backend", cfg.BackendBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
