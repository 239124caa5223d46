package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorefrontHandler(f *fixture) *StorefrontHandler {
	return &StorefrontHandler{API: f.api, Sessions: f.sessions, Templates: f.templates, Cache: f.cache}
}

func TestIndexRendersProductsForAnonymousVisitors(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/products", 200, productPageJSON)
	f.backend.respond("GET /api/products/categories", 200, `["Skincare","Haircare"]`)

	h := newStorefrontHandler(f)
	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Shea Butter")
	assert.Contains(t, body, "GHS 24.99")
	assert.Contains(t, body, "Skincare")
}

func TestIndexDegradesWhenCategoriesFail(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/products", 200, productPageJSON)
	f.backend.respond("GET /api/products/categories", 500, `{"detail":"Internal server error"}`)

	h := newStorefrontHandler(f)
	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	// The product list still renders; only the category chips are missing.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Shea Butter")
}

func TestIndexCachesProductPages(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/products", 200, productPageJSON)
	f.backend.respond("GET /api/products/categories", 200, `["Skincare"]`)

	h := newStorefrontHandler(f)
	for i := 0; i < 3; i++ {
		h.Index(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Equal(t, 1, f.backend.count("GET /api/products"),
		"identical page views share one fetch within the TTL")

	// A different category is a different cache key.
	h.Index(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?category=Haircare", nil))
	assert.Equal(t, 2, f.backend.count("GET /api/products"))
}

func TestProductDetailUsesPathValue(t *testing.T) {
	f := newFixture(t)
	f.backend.respond("GET /api/products/p1", 200,
		`{"id":"p1","name":"Shea Butter","description":"Raw and unrefined.","price":"24.99","stock_quantity":7,"is_active":true,"image_urls":["/static/uploads/shea.jpg"]}`)

	h := newStorefrontHandler(f)
	r := httptest.NewRequest(http.MethodGet, "/products/p1", nil)
	r.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	h.ProductDetail(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Shea Butter")
	assert.Contains(t, body, "Raw and unrefined.")
}

func TestProductDetailNotFound(t *testing.T) {
	f := newFixture(t)

	h := newStorefrontHandler(f)
	r := httptest.NewRequest(http.MethodGet, "/products/ghost", nil)
	r.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()
	h.ProductDetail(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	msgs := f.flashes(w)
	require.Len(t, msgs, 1)
	assert.Equal(t, "We couldn't find what you were looking for.", msgs[0].Message)
}
