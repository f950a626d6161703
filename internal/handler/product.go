package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"boutique/internal/config"
	"boutique/internal/model"
	"boutique/internal/queue"
	"boutique/internal/repository"
	"boutique/internal/service/queuepublisher"
	"boutique/internal/utils"
)

// ProductHandler bundles dependencies for the product endpoints.
// Invalidate, when set, is called after every successful write so the
// cached listings never outlive a mutation.
type ProductHandler struct {
	Cfg        config.Config
	Products   *repository.ProductRepo
	Log        zerolog.Logger
	Invalidate func(context.Context)
}

func NewProductHandler(cfg config.Config, p *repository.ProductRepo, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{Cfg: cfg, Products: p, Log: log}
}

func (h *ProductHandler) invalidateCache(ctx context.Context) {
	if h.Invalidate != nil {
		h.Invalidate(ctx)
	}
}

// List handles GET /api/products: an unfiltered full-table read.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.Products.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, products)
}

// Add handles POST /api/addProduct. Numeric fields are range-checked,
// free-text fields pass through the sanitizer, and the insert itself is a
// single parameterized statement.
func (h *ProductHandler) Add(c echo.Context) error {
	var data map[string]any
	if err := c.Bind(&data); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Request must be JSON"})
	}

	for _, f := range []string{"name", "price", "description", "stock", "categoryId"} {
		if _, ok := data[f]; !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required field: " + f})
		}
	}

	if !utils.ValidateNumeric(data["price"], utils.Float(0), nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid price value"})
	}
	if !utils.ValidateNumeric(data["stock"], utils.Float(0), nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid stock value"})
	}
	if !utils.ValidateNumeric(data["categoryId"], utils.Float(1), nil) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	price, _ := utils.NumericValue(data["price"])
	stock, _ := utils.NumericValue(data["stock"])
	categoryID, _ := utils.NumericValue(data["categoryId"])

	image := h.Cfg.DefaultImage
	if v, ok := data["image"].(string); ok && v != "" {
		image = v
	}
	maker := h.Cfg.DefaultMaker
	if m, ok := utils.NumericValue(data["maker"]); ok {
		maker = int64(m)
	}

	p := model.Product{
		Name:        utils.Sanitize(fmt.Sprint(data["name"])),
		Price:       price,
		Description: utils.Sanitize(fmt.Sprint(data["description"])),
		Image:       utils.Sanitize(image),
		Stock:       int64(stock),
		CategoryID:  int64(categoryID),
		Maker:       maker,
	}

	id, err := h.Products.Create(c.Request().Context(), p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.invalidateCache(c.Request().Context())

	// Best-effort event; a broker outage never fails the write.
	_ = queuepublisher.PublishCatalogEvent(context.Background(), h.Log, queue.CatalogEvent{
		Kind:       queue.KindProductCreated,
		ProductID:  id,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		Maker:      p.Maker,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Product added successfully",
		"productId": id,
	})
}

// editableFields is the fixed allow-list of columns a partial update may
// touch. The reachable column set is decided here, at implementation time,
// never by the request.
var editableFields = []string{"name", "price", "description", "stock", "categoryId", "image"}

var editableNumeric = map[string]bool{"price": true, "stock": true, "categoryId": true}
var editableText = map[string]bool{"name": true, "description": true, "image": true}

// Edit handles PUT /api/editProduct/:id. The SET clause is assembled only
// from allow-listed column names that also pass the identifier validator;
// unknown fields are skipped silently.
func (h *ProductHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var data map[string]any
	if err := c.Bind(&data); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Request must be JSON"})
	}

	ctx := c.Request().Context()
	if _, err := h.Products.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	fields := []string{}
	values := []any{}
	for _, field := range editableFields {
		value, ok := data[field]
		if !ok || value == nil {
			continue
		}
		if !utils.ValidateFieldName(field) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid field name: " + field})
		}
		if editableNumeric[field] {
			if !utils.ValidateNumeric(value, utils.Float(0), nil) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid " + field + " value"})
			}
			n, _ := utils.NumericValue(value)
			value = n
		}
		if editableText[field] {
			value = utils.Sanitize(fmt.Sprint(value))
		}
		fields = append(fields, field)
		values = append(values, value)
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No valid fields to update"})
	}

	if err := h.Products.UpdateFields(ctx, id, fields, values); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.invalidateCache(ctx)

	updated, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Product not found after update"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product updated successfully",
		"product": updated,
	})
}

// Delete handles DELETE /api/deleteProduct/:id with the read-then-delete
// pair: the first call succeeds, a repeat reports not-found.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}
	h.invalidateCache(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted_id": id})
}

// UploadImage handles POST /api/uploadProductImage/:id. The multipart file
// lands in the uploads directory under a sanitized, product-prefixed name
// and the stored row is pointed at the new path.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No image part"})
	}
	if file.Filename == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No selected file"})
	}

	// Base strips any directory components before the sanitizer runs, so a
	// crafted filename cannot climb out of the uploads dir.
	filename := utils.Sanitize(filepath.Base(file.Filename))
	filename = fmt.Sprintf("product_%d_%s", id, filename)

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, filename))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}

	imagePath := filepath.ToSlash(filepath.Join(h.Cfg.UploadDir, filename))
	if err := h.Products.UpdateImage(c.Request().Context(), id, imagePath); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}
	h.invalidateCache(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"success": true, "image_path": imagePath})
}
