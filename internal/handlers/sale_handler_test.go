package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/jucygo/internal/models"
	"github.com/diewo77/jucygo/internal/services"

	"gorm.io/gorm"
)

func newSaleHandler(db *gorm.DB) *SaleHandler {
	return NewSaleHandler(
		services.NewSaleService(db),
		services.NewInventoryService(db),
		services.NewProductService(db, nil),
	)
}

func TestSaleRecord(t *testing.T) {
	db := setupTestDB(t)
	h := newSaleHandler(db)
	p := seedProduct(t, db, "Mango Smoothie", 4.0, 5)

	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"product_name":"Mango Smoothie","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Record(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var sale models.Sale
	if err := json.Unmarshal(w.Body.Bytes(), &sale); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// unit price defaults to the catalog price snapshot
	if sale.UnitPrice != 4.0 || sale.TotalAmount != 8.0 {
		t.Fatalf("unexpected amounts: %+v", sale)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Quantity != 3 {
		t.Fatalf("expected stock 3 got %d", reloaded.Quantity)
	}
}

func TestSaleRecordInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	h := newSaleHandler(db)
	seedProduct(t, db, "Lime Juice", 1.5, 2)

	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"product_name":"Lime Juice","quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Record(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "insufficient_stock") {
		t.Fatalf("expected insufficient_stock error: %s", w.Body.String())
	}
	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if count != 0 {
		t.Fatalf("no sale row expected, got %d", count)
	}
}

func TestSaleRecordUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	h := newSaleHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"product_name":"Ghost","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Record(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestSaleRecordValidation(t *testing.T) {
	db := setupTestDB(t)
	h := newSaleHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"product_name":"","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Record(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestSaleListAndTotal(t *testing.T) {
	db := setupTestDB(t)
	h := newSaleHandler(db)
	seedProduct(t, db, "Orange Juice", 3.5, 100)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"product_name":"Orange Juice","quantity":1}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.Record(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("record %d: %d", i, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var payload struct {
		Items []models.Sale `json:"items"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 2 {
		t.Fatalf("expected 2 sales, got %d", payload.Total)
	}

	date := payload.Items[0].Date[:10]
	req2 := httptest.NewRequest(http.MethodGet, "/sales/total?date="+date, nil)
	w2 := httptest.NewRecorder()
	h.Total(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("total: %d", w2.Code)
	}
	var totals struct {
		Date  string  `json:"date"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode total: %v", err)
	}
	if totals.Total != 7.0 {
		t.Fatalf("expected 7.00 got %.2f", totals.Total)
	}

	req3 := httptest.NewRequest(http.MethodGet, "/sales/total", nil)
	w3 := httptest.NewRecorder()
	h.Total(w3, req3)
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("missing date should be 400, got %d", w3.Code)
	}
}
