package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diewo77/jucygo/internal/httpx"
	"github.com/diewo77/jucygo/internal/imagestore"
	"github.com/diewo77/jucygo/internal/services"
	"github.com/diewo77/jucygo/internal/validation"
)

type ProductHandler struct {
	Svc    *services.ProductService
	Images *imagestore.Store
}

func NewProductHandler(svc *services.ProductService, images *imagestore.Store) *ProductHandler {
	return &ProductHandler{Svc: svc, Images: images}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	products, err := h.Svc.Search(query)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	p, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Create accepts JSON, or multipart form when an image file is attached.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, violations, ok := h.parseInput(w, r)
	if !ok {
		return
	}
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}
	p, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update overwrites the editable fields of an existing product. Absent
// JSON fields keep their current values; a new image replaces (and
// deletes) the old one.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	current, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	in := services.ProductInput{
		Name:        current.Name,
		Price:       current.Price,
		Quantity:    current.Quantity,
		Description: current.Description,
		ImagePath:   current.ImagePath,
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Name        *string  `json:"name"`
			Price       *float64 `json:"price"`
			Quantity    *int     `json:"quantity"`
			Description *string  `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		if body.Name != nil {
			in.Name = *body.Name
		}
		if body.Price != nil {
			in.Price = *body.Price
		}
		if body.Quantity != nil {
			in.Quantity = *body.Quantity
		}
		if body.Description != nil {
			in.Description = *body.Description
		}
	} else {
		if v := r.FormValue("name"); v != "" {
			in.Name = v
		}
		if v := r.FormValue("price"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				in.Price = f
			}
		}
		if v := r.FormValue("quantity"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				in.Quantity = n
			}
		}
		if v := r.FormValue("description"); v != "" {
			in.Description = v
		}
		if path, ok := h.storeUpload(w, r); !ok {
			return
		} else if path != "" {
			in.ImagePath = path
		}
	}
	p, err := h.Svc.Update(id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// parseInput decodes a create request from JSON or multipart form and
// runs field validation. Returns ok=false when a response was already
// written.
func (h *ProductHandler) parseInput(w http.ResponseWriter, r *http.Request) (services.ProductInput, validation.Violations, bool) {
	in := services.ProductInput{}
	v := validation.Violations{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Name        string  `json:"name"`
			Price       float64 `json:"price"`
			Quantity    int     `json:"quantity"`
			Description string  `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return in, v, false
		}
		in.Name = body.Name
		in.Price = body.Price
		in.Quantity = body.Quantity
		in.Description = body.Description
	} else {
		price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
		qty, _ := strconv.Atoi(r.FormValue("quantity"))
		in.Name = r.FormValue("name")
		in.Price = price
		in.Quantity = qty
		in.Description = r.FormValue("description")
		if path, ok := h.storeUpload(w, r); !ok {
			return in, v, false
		} else if path != "" {
			in.ImagePath = path
		}
	}
	validation.Required("name", in.Name, v)
	validation.NonNegativeFloat("price", in.Price, v)
	validation.NonNegativeInt("quantity", in.Quantity, v)
	return in, v, true
}

// storeUpload saves an optional multipart "image" file. Returns ok=false
// when a response was already written.
func (h *ProductHandler) storeUpload(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.Images == nil {
		return "", true
	}
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return "", true
	}
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_image", nil)
		return "", false
	}
	defer file.Close()
	path, err := h.Images.Save(file, filepath.Ext(header.Filename))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "image_store_failed", nil)
		return "", false
	}
	return path, true
}
