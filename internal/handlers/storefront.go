package handlers

import (
	"net/http"
	"strconv"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/cache"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

const storefrontPageSize = 12

type StorefrontHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Cache     *cache.Cache
}

// Index lists the catalog with optional category filter and pagination.
// Reads go through the query cache so rapid navigation does not hammer the
// backend with identical fetches.
func (h *StorefrontHandler) Index(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	key := cache.Key("products", category, strconv.Itoa(page))
	v, err := h.Cache.Fetch(key, func() (any, error) {
		return h.API.ListProducts(r.Context(), api.ProductFilter{
			Category: category,
			Skip:     (page - 1) * storefrontPageSize,
			Limit:    storefrontPageSize,
		})
	})
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/")
		return
	}
	products := v.(*api.ProductPage)

	cv, err := h.Cache.Fetch(cache.Key("categories"), func() (any, error) {
		return h.API.GetCategories(r.Context())
	})
	if err != nil {
		// Category chips are decoration; the list still renders.
		cv = []string(nil)
	}

	totalPages := (products.Total + storefrontPageSize - 1) / storefrontPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	render(h.Templates, h.Sessions, w, r, "home.html", map[string]interface{}{
		"Products":    products.Products,
		"Categories":  cv.([]string),
		"Category":    category,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
}

// ProductDetail shows a single catalog entry.
func (h *StorefrontHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	v, err := h.Cache.Fetch(cache.Key("product", id), func() (any, error) {
		return h.API.GetProduct(r.Context(), id)
	})
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/")
		return
	}

	render(h.Templates, h.Sessions, w, r, "product.html", map[string]interface{}{
		"Product": v,
	})
}
