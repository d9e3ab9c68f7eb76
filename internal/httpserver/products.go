package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"product-catalog/internal/catalog"
	"product-catalog/internal/dispatch"
	"product-catalog/internal/domain"
)

type productHandlers struct {
	dispatcher *dispatch.Dispatcher
	logger     *log.Logger
}

// createProductRequest is the POST body. isActive is optional and defaults
// to true server-side.
type createProductRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   *string  `json:"description" binding:"omitempty,max=1000"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	StockQuantity *int     `json:"stockQuantity" binding:"required,gte=0"`
	Category      *string  `json:"category" binding:"omitempty,max=100"`
	ImageURL      *string  `json:"imageUrl" binding:"omitempty,max=500,url"`
	SKU           *string  `json:"sku" binding:"omitempty,max=50"`
	IsActive      *bool    `json:"isActive"`
}

// updateProductRequest is the PUT body. Unlike create, isActive is required
// because the update is a full replacement of every mutable field.
type updateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   *string  `json:"description" binding:"omitempty,max=1000"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	StockQuantity *int     `json:"stockQuantity" binding:"required,gte=0"`
	Category      *string  `json:"category" binding:"omitempty,max=100"`
	ImageURL      *string  `json:"imageUrl" binding:"omitempty,max=500,url"`
	SKU           *string  `json:"sku" binding:"omitempty,max=50"`
	IsActive      *bool    `json:"isActive" binding:"required"`
}

func (r createProductRequest) toCommand() catalog.CreateProduct {
	return catalog.CreateProduct{
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Price:         decimal.NewFromFloat(*r.Price),
		StockQuantity: *r.StockQuantity,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		SKU:           r.SKU,
		IsActive:      r.IsActive,
	}
}

func (r updateProductRequest) toCommand(id int64) catalog.UpdateProduct {
	return catalog.UpdateProduct{
		ID:            id,
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Price:         decimal.NewFromFloat(*r.Price),
		StockQuantity: *r.StockQuantity,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		SKU:           r.SKU,
		IsActive:      *r.IsActive,
	}
}

func (h *productHandlers) list(c *gin.Context) {
	products, err := dispatch.Send[catalog.GetAllProducts, []domain.Product](c.Request.Context(), h.dispatcher, catalog.GetAllProducts{})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, productList(products))
}

func (h *productHandlers) listActive(c *gin.Context) {
	products, err := dispatch.Send[catalog.GetActiveProducts, []domain.Product](c.Request.Context(), h.dispatcher, catalog.GetActiveProducts{})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, productList(products))
}

func (h *productHandlers) listByCategory(c *gin.Context) {
	q := catalog.GetProductsByCategory{Category: c.Param("category")}
	products, err := dispatch.Send[catalog.GetProductsByCategory, []domain.Product](c.Request.Context(), h.dispatcher, q)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, productList(products))
}

func (h *productHandlers) search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("searchTerm"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "searchTerm is required"})
		return
	}
	products, err := dispatch.Send[catalog.SearchProducts, []domain.Product](c.Request.Context(), h.dispatcher, catalog.SearchProducts{Term: term})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, productList(products))
}

func (h *productHandlers) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := dispatch.Send[catalog.GetProductByID, *domain.Product](c.Request.Context(), h.dispatcher, catalog.GetProductByID{ID: id})
	if err != nil {
		h.serverError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *productHandlers) create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	created, err := dispatch.Send[catalog.CreateProduct, domain.Product](c.Request.Context(), h.dispatcher, req.toCommand())
	if err != nil {
		h.commandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *productHandlers) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	updated, err := dispatch.Send[catalog.UpdateProduct, domain.Product](c.Request.Context(), h.dispatcher, req.toCommand(id))
	if err != nil {
		h.commandError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *productHandlers) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	removed, err := dispatch.Send[catalog.DeleteProduct, bool](c.Request.Context(), h.dispatcher, catalog.DeleteProduct{ID: id})
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the :id route param. IDs are integers, so anything else
// cannot name an existing product and yields 404.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return 0, false
	}
	return id, true
}

// commandError maps handler failures from create/update to HTTP responses.
func (h *productHandlers) commandError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		h.serverError(c, err)
	}
}

// serverError logs the original error and returns a generic 500; the store
// error is never echoed to the caller.
func (h *productHandlers) serverError(c *gin.Context, err error) {
	h.logger.Printf("products api: %s %s error=%v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// productList guarantees an empty JSON array instead of null.
func productList(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}

// jsonFieldNames maps request struct fields to their JSON names for
// validation error payloads.
var jsonFieldNames = map[string]string{
	"Name":          "name",
	"Description":   "description",
	"Price":         "price",
	"StockQuantity": "stockQuantity",
	"Category":      "category",
	"ImageURL":      "imageUrl",
	"SKU":           "sku",
	"IsActive":      "isActive",
}

// bindError turns a binding failure into the field-keyed error payload.
func bindError(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"error": "invalid request body"}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		fields[name] = fieldMessage(name, fe)
	}
	return gin.H{"errors": fields}
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "max":
		return name + " must be at most " + fe.Param() + " characters"
	case "gte":
		return name + " must not be negative"
	case "url":
		return name + " must be a well-formed URL"
	default:
		return name + " is invalid"
	}
}
