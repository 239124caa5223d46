package handlers

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/cache"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/shopspring/decimal"
)

const (
	maxUploadBytes = 5 << 20 // per-file cap
	maxFormBytes   = 32 << 20
	maxImageWidth  = 800
	adminPageSize  = 20
)

// ListProducts shows the catalog to the admin, through the same product
// cache the storefront reads.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	key := cache.Key("products", "admin", strconv.Itoa(page))
	v, err := h.Cache.Fetch(key, func() (any, error) {
		return h.client(r).ListProducts(r.Context(), api.ProductFilter{
			Skip:  (page - 1) * adminPageSize,
			Limit: adminPageSize,
		})
	})
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/admin")
		return
	}
	products := v.(*api.ProductPage)

	totalPages := (products.Total + adminPageSize - 1) / adminPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	render(h.Templates, h.Sessions, w, r, "admin_products.html", map[string]interface{}{
		"Products":    products.Products,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
}

func (h *AdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	render(h.Templates, h.Sessions, w, r, "admin_product_form.html", map[string]interface{}{
		"Title":  "Add Product",
		"Action": "/admin/products",
	})
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.client(r).GetProduct(r.Context(), id)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/admin/products")
		return
	}

	render(h.Templates, h.Sessions, w, r, "admin_product_form.html", map[string]interface{}{
		"Title":   "Edit Product",
		"Action":  "/admin/products/update",
		"Product": product,
	})
}

// CreateProduct handles the upload-based product form. Submission is
// blocked when no image survived the upload pass.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	input, formErr := h.productInputFromForm(w, r)
	if formErr != "" {
		h.Sessions.AddFlash(w, r, "error", formErr)
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	if len(input.ImageURLs) == 0 {
		h.Sessions.AddFlash(w, r, "error", "At least one product image is required.")
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	product, err := h.client(r).CreateProduct(r.Context(), input)
	if err != nil {
		h.flashProductError(w, r, err)
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	h.Cache.InvalidatePrefix("products")
	slog.Info("Product created", "product_id", product.ID, "name", product.Name)
	h.Sessions.AddFlash(w, r, "success", "Product added successfully!")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	input, formErr := h.productInputFromForm(w, r)
	id := r.FormValue("id")
	if id == "" {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	editURL := "/admin/products/edit?id=" + id
	if formErr != "" {
		h.Sessions.AddFlash(w, r, "error", formErr)
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	if len(input.ImageURLs) == 0 {
		h.Sessions.AddFlash(w, r, "error", "At least one product image is required.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	if _, err := h.client(r).UpdateProduct(r.Context(), id, input); err != nil {
		h.flashProductError(w, r, err)
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	h.Cache.InvalidatePrefix("products")
	h.Cache.Invalidate(cache.Key("product", id))
	h.Sessions.AddFlash(w, r, "success", "Product updated successfully!")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// ConfirmDeleteProduct renders the explicit confirmation step. Deletion
// never happens from the list directly.
func (h *AdminHandler) ConfirmDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.client(r).GetProduct(r.Context(), id)
	if err != nil {
		failRedirect(w, r, h.Sessions, err, "/admin/products")
		return
	}

	render(h.Templates, h.Sessions, w, r, "admin_confirm_delete.html", map[string]interface{}{
		"Product": product,
	})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	if id == "" {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	if err := h.client(r).DeleteProduct(r.Context(), id); err != nil {
		failRedirect(w, r, h.Sessions, err, "/admin/products")
		return
	}

	// Drop the cached product list so the next render reflects the
	// deletion without anything else re-fetching.
	h.Cache.InvalidatePrefix("products")
	h.Cache.Invalidate(cache.Key("product", id))
	h.Sessions.AddFlash(w, r, "success", "Product deleted successfully!")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) flashProductError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		for field, msg := range ve.Fields {
			if field != "" {
				h.Sessions.AddFlash(w, r, "error", field+": "+msg)
			} else {
				h.Sessions.AddFlash(w, r, "error", msg)
			}
		}
		return
	}
	if detail := api.Detail(err); detail != "" {
		h.Sessions.AddFlash(w, r, "error", detail)
		return
	}
	h.Sessions.AddFlash(w, r, "error", "Error saving product.")
}

// productInputFromForm parses the multipart product form, runs the upload
// pass, and maps the UI-only toggles onto backend fields through the named
// configuration constants.
func (h *AdminHandler) productInputFromForm(w http.ResponseWriter, r *http.Request) (api.ProductInput, string) {
	var input api.ProductInput

	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		return input, "Upload too large."
	}

	input.Name = strings.TrimSpace(r.FormValue("name"))
	input.Description = strings.TrimSpace(r.FormValue("description"))
	input.Category = strings.TrimSpace(r.FormValue("category"))
	input.VideoURL = strings.TrimSpace(r.FormValue("video_url"))
	input.IsActive = r.FormValue("is_active") != ""

	if input.Name == "" {
		return input, "Product name is required."
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return input, "Price must be a positive amount."
	}
	input.Price = price

	stock, err := strconv.Atoi(r.FormValue("stock_quantity"))
	if err != nil || stock < 0 {
		return input, "Stock quantity must be zero or more."
	}
	input.StockQuantity = stock

	// is_trending and free_delivery are presentation toggles; the backend
	// only knows trending_score and shipping_cost.
	if r.FormValue("is_trending") != "" {
		input.TrendingScore = h.Config.TrendingScore
	}
	if r.FormValue("free_delivery") != "" {
		input.ShippingCost = decimal.Zero
	} else {
		input.ShippingCost = h.Config.FlatShippingCost
	}

	// Images the admin chose to keep (edit form), then new uploads.
	for _, existing := range r.MultipartForm.Value["existing_images"] {
		if existing != "" {
			input.ImageURLs = append(input.ImageURLs, existing)
		}
	}
	input.ImageURLs = append(input.ImageURLs, h.processUploads(w, r)...)

	return input, ""
}

// processUploads handles the multi-file image field sequentially, flashing
// a per-file notification, and returns URLs for the files that made it.
// One bad file never aborts the batch.
func (h *AdminHandler) processUploads(w http.ResponseWriter, r *http.Request) []string {
	var urls []string
	for _, header := range r.MultipartForm.File["images"] {
		url, err := h.saveUpload(header)
		if err != nil {
			slog.Warn("Image upload rejected", "file", header.Filename, "error", err)
			h.Sessions.AddFlash(w, r, "error", header.Filename+": "+err.Error())
			continue
		}
		h.Sessions.AddFlash(w, r, "success", "Uploaded "+header.Filename)
		urls = append(urls, url)
	}
	return urls
}

// saveUpload validates, resizes, and stores one image, returning its public
// URL.
func (h *AdminHandler) saveUpload(header *multipart.FileHeader) (string, error) {
	if header.Size > maxUploadBytes {
		return "", fmt.Errorf("file is larger than %dMB", maxUploadBytes>>20)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("could not read file")
	}
	defer file.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("unsupported image format, only PNG and JPEG are allowed")
	}
	if err != nil {
		return "", fmt.Errorf("could not decode image")
	}

	// Resize (max width 800px, preserve aspect ratio)
	resized := resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)

	filename := fmt.Sprintf("%s.jpg", uuid.New().String())
	path := filepath.Join(h.Config.UploadDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not store image")
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("could not encode image")
	}

	return "/static/uploads/" + filename, nil
}
