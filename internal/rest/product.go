package rest

import (
	"context"
	"makeItSell/domain"
	"makeItSell/pkg/logger"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name" validate:"required"`
	Price          float64  `json:"price" validate:"gte=0"`
	Category       string   `json:"category" validate:"required"`
	Subcategory    string   `json:"subcategory"`
	Tags           []string `json:"tags"`
	VendorID       string   `json:"vendor_id" validate:"required"`
	VendorName     string   `json:"vendor_name"`
	VendorVerified bool     `json:"vendor_verified"`
	RatingAverage  float64  `json:"rating_average" validate:"gte=0,lte=5"`
	RatingCount    int64    `json:"rating_count" validate:"gte=0"`
	OnSale         bool     `json:"on_sale"`
	Discount       float64  `json:"discount" validate:"gte=0,lte=100"`
}

type UpdateProductRequest struct {
	Name           string   `json:"name" validate:"required"`
	Price          float64  `json:"price" validate:"gte=0"`
	Category       string   `json:"category" validate:"required"`
	Subcategory    string   `json:"subcategory"`
	Tags           []string `json:"tags"`
	VendorID       string   `json:"vendor_id" validate:"required"`
	VendorName     string   `json:"vendor_name"`
	VendorVerified bool     `json:"vendor_verified"`
	RatingAverage  float64  `json:"rating_average" validate:"gte=0,lte=5"`
	RatingCount    int64    `json:"rating_count" validate:"gte=0"`
	OnSale         bool     `json:"on_sale"`
	Discount       float64  `json:"discount" validate:"gte=0,lte=100"`
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all products",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, productID)
	if err != nil {
		if err.Error() == "product not found" || err.Error() == "invalid product id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Tags:        datatypes.JSONSlice[string](req.Tags),
		Vendor: domain.Vendor{
			ID:       req.VendorID,
			Name:     req.VendorName,
			Verified: req.VendorVerified,
		},
		Rating: domain.Rating{
			Average: req.RatingAverage,
			Count:   req.RatingCount,
		},
		OnSale:   req.OnSale,
		Discount: req.Discount,
	}

	newProduct, err := h.productService.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", err)
		if err.Error() == "product name is required" ||
			err.Error() == "category is required" ||
			err.Error() == "price cannot be negative" ||
			err.Error() == "discount must be between 0 and 100" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product successfully created",
		"product": newProduct,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID := c.Param("id")

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ID:          productID,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Tags:        datatypes.JSONSlice[string](req.Tags),
		Vendor: domain.Vendor{
			ID:       req.VendorID,
			Name:     req.VendorName,
			Verified: req.VendorVerified,
		},
		Rating: domain.Rating{
			Average: req.RatingAverage,
			Count:   req.RatingCount,
		},
		OnSale:   req.OnSale,
		Discount: req.Discount,
	}

	updatedProduct, err := h.productService.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update product", err)
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "product ID is required" ||
			err.Error() == "product name is required" ||
			err.Error() == "price cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update product",
		"product": updatedProduct,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to delete product", err)
		if err.Error() == "product not found" || err.Error() == "invalid product id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully delete product",
	})
}
