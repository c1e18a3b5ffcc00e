package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/jucygo/internal/httpx"
	"github.com/diewo77/jucygo/internal/services"
	"github.com/diewo77/jucygo/internal/validation"
)

type SaleHandler struct {
	Sales     *services.SaleService
	Inventory *services.InventoryService
	Products  *services.ProductService
}

func NewSaleHandler(sales *services.SaleService, inv *services.InventoryService, products *services.ProductService) *SaleHandler {
	return &SaleHandler{Sales: sales, Inventory: inv, Products: products}
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	sales, err := h.Sales.Search(query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_sales", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sales, "total": len(sales)})
}

// Record validates the caller preconditions (positive quantity, product
// exists, stock sufficient) before handing off to the sale service,
// which re-checks stock inside its transaction.
func (h *SaleHandler) Record(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductName string  `json:"product_name"`
		Quantity    int     `json:"quantity"`
		UnitPrice   float64 `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("product_name", body.ProductName, v)
	validation.PositiveInt("quantity", body.Quantity, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	product, err := h.Products.GetByName(body.ProductName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// snapshot the catalog price unless the caller pinned one
	unitPrice := body.UnitPrice
	if unitPrice == 0 {
		unitPrice = product.Price
	}
	ok, err := h.Inventory.HasSufficientStock(body.ProductName, body.Quantity)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "stock_check_failed", nil)
		return
	}
	if !ok {
		httpx.JSONError(w, http.StatusConflict, "insufficient_stock", map[string]any{"available": product.Quantity})
		return
	}
	sale, err := h.Sales.Record(body.ProductName, body.Quantity, unitPrice)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

// Total reports the summed sale amount for one date (prefix match on the
// stored timestamp).
func (h *SaleHandler) Total(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		httpx.JSONError(w, http.StatusBadRequest, "date_required", nil)
		return
	}
	total, err := h.Sales.TotalByDate(date)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "total_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"date": date, "total": total})
}
