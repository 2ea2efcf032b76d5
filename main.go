package main

// GET  /products       – list the catalog with live stock
// POST /add-payment    – fund the caller's cart (?money=)
// POST /purchase       – buy one unit against funds and stock (?item=)
// GET  /final-purchase – checkout: return and retire the cart

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"vending-machine/handler"
	"vending-machine/service"
	"vending-machine/store"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	// --- Registries ---
	catalog := store.NewCatalog()
	if err := catalog.Seed(); err != nil {
		log.Fatalf("Failed seeding catalog: %v", err)
	}
	carts := store.NewCartStore(log)

	// --- Service ---
	svc := service.NewService(catalog, carts)

	// --- Handlers ---
	h := handler.NewHandler(svc, log)

	// --- Router ---
	r := mux.NewRouter()
	r.Use(handler.RequestLogger(log))
	h.RegisterRoutes(r)

	// --- Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Infof("Server running on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
	log.Info("Server stopped")
}
