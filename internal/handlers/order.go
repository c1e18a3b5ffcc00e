package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/jucygo/internal/httpx"
	"github.com/diewo77/jucygo/internal/services"
	"github.com/diewo77/jucygo/internal/validation"
)

type OrderHandler struct {
	Orders    *services.OrderService
	Inventory *services.InventoryService
	Products  *services.ProductService
}

func NewOrderHandler(orders *services.OrderService, inv *services.InventoryService, products *services.ProductService) *OrderHandler {
	return &OrderHandler{Orders: orders, Inventory: inv, Products: products}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	orders, err := h.Orders.Search(query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": len(orders)})
}

func (h *OrderHandler) Pending(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.Pending()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": len(orders)})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	order, err := h.Orders.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Place validates the caller preconditions and creates a pending order;
// the order service deducts the reserved stock in the same transaction.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerName string  `json:"customer_name"`
		ProductName  string  `json:"product_name"`
		Quantity     int     `json:"quantity"`
		UnitPrice    float64 `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("customer_name", body.CustomerName, v)
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
	order, err := h.Orders.Place(body.CustomerName, body.ProductName, body.Quantity, unitPrice)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Orders.Complete)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Orders.Cancel)
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, fn func(uint) error) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := fn(id); err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.Orders.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Orders.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
