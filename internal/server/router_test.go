package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/jucygo/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Sale{}, &models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db, nil)
}

func TestHealthEndpoints(t *testing.T) {
	h := setupRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "ok") {
			t.Fatalf("%s: unexpected body %s", path, w.Body.String())
		}
	}
}

func TestEndToEndSaleFlow(t *testing.T) {
	h := setupRouter(t)

	// create a product
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Orange Juice","price":3.5,"quantity":20}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %d body=%s", w.Code, w.Body.String())
	}

	// record a sale against it
	req = httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"product_name":"Orange Juice","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("record sale: %d body=%s", w.Code, w.Body.String())
	}

	// stock went down
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/get?id=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get product: %d", w.Code)
	}
	var p models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Quantity != 18 {
		t.Fatalf("expected stock 18 got %d", p.Quantity)
	}
}

func TestSearchRoutes(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Mango Smoothie","price":4.0,"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %d", w.Code)
	}
	req = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer_name":"Alice","product_name":"Mango Smoothie","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("place order: %d", w.Code)
	}

	for _, path := range []string{
		"/products/search?q=mango",
		"/orders/search?q=alice",
		"/sales/search?q=mango",
	} {
		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d body=%s", path, w.Code, w.Body.String())
		}
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/search?q=mango", nil))
	var payload struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 1 || payload.Items[0].Name != "Mango Smoothie" {
		t.Fatalf("search result: %+v", payload)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := setupRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/cancel?id=1", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET cancel got %d", w.Code)
	}
}
