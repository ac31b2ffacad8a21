package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gathr/internal/models/request_models"
	"gathr/internal/services"
	"gathr/pkg/utils"
)

type ProductController struct {
	productService services.ProductServiceInterface
}

func NewProductController(productService services.ProductServiceInterface) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProduct godoc
// @Summary Create a creator plan
// @Description Creates a Stripe product with a recurring price and mirrors both locally
// @Tags Products
// @Accept json
// @Produce json
// @Param request body request_models.CreateProductRequest true "Product payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products [post]
func (p *ProductController) CreateProduct(c *gin.Context) {
	var req request_models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.productService.CreateProduct(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Product created successfully")
}

// UpdateProduct godoc
// @Summary Update a creator plan
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Stripe product id"
// @Param request body request_models.UpdateProductRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/{id} [patch]
func (p *ProductController) UpdateProduct(c *gin.Context) {
	var req request_models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.productService.UpdateProduct(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Product updated successfully")
}

// ArchiveProduct godoc
// @Summary Retire a creator plan
// @Description Deactivates the plan and schedules active subscriptions to cancel at period end
// @Tags Products
// @Produce json
// @Param id path string true "Stripe product id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/{id} [delete]
func (p *ProductController) ArchiveProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := p.productService.ArchiveProduct(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Product archived successfully")
}

// ListProducts godoc
// @Summary List the caller's plans
// @Tags Products
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products [get]
func (p *ProductController) ListProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.productService.ListProducts(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Products retrieved successfully")
}
