package server

import (
	"net/http"

	"github.com/diewo77/jucygo/internal/handlers"
	"github.com/diewo77/jucygo/internal/httpx"
	"github.com/diewo77/jucygo/internal/imagestore"
	"github.com/diewo77/jucygo/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, images *imagestore.Store) http.Handler {
	mux := http.NewServeMux()

	inventory := services.NewInventoryService(db)
	products := services.NewProductService(db, images)
	sales := services.NewSaleService(db)
	orders := services.NewOrderService(db)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Perform a lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Product endpoints. List/Create via /products. Update/Delete via
	// /products/update & /products/delete for simplicity.
	ph := handlers.NewProductHandler(products, images)
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/products/get", ph.Get)
	mux.HandleFunc("/products/search", ph.List)
	mux.HandleFunc("/products/update", requirePost(ph.Update))
	mux.HandleFunc("/products/delete", requirePost(ph.Delete))

	// Sale endpoints
	sh := handlers.NewSaleHandler(sales, inventory, products)
	mux.HandleFunc("/sales", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.List(w, r)
		case http.MethodPost:
			sh.Record(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/sales/search", sh.List)
	mux.HandleFunc("/sales/total", sh.Total)

	// Order endpoints
	oh := handlers.NewOrderHandler(orders, inventory, products)
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			oh.List(w, r)
		case http.MethodPost:
			oh.Place(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/orders/get", oh.Get)
	mux.HandleFunc("/orders/search", oh.List)
	mux.HandleFunc("/orders/pending", oh.Pending)
	mux.HandleFunc("/orders/complete", requirePost(oh.Complete))
	mux.HandleFunc("/orders/cancel", requirePost(oh.Cancel))
	mux.HandleFunc("/orders/delete", requirePost(oh.Delete))

	return withRecover(mux)
}

func requirePost(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
