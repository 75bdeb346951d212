package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/listing"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// Categories are small lookup tables; their list endpoints are plain GETs
// with page/size query parameters instead of the POST /list body.

type ExpenseCategoryHandler struct {
	categoryService service.ExpenseCategoryService
}

func NewExpenseCategoryHandler(categoryService service.ExpenseCategoryService) *ExpenseCategoryHandler {
	return &ExpenseCategoryHandler{categoryService: categoryService}
}

func (h *ExpenseCategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/api/expense-categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *ExpenseCategoryHandler) ListCategories(c *gin.Context) {
	params := pagination.Parse(c)
	page, err := h.categoryService.ListCategories(c.Request.Context(), listing.Query{Page: params.Page, Size: params.Size})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

func (h *ExpenseCategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		respondNotFound(c, "category", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

func (h *ExpenseCategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

func (h *ExpenseCategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		respondNotFound(c, "category", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

func (h *ExpenseCategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.categoryService.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "category", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

type IncomeCategoryHandler struct {
	categoryService service.IncomeCategoryService
}

func NewIncomeCategoryHandler(categoryService service.IncomeCategoryService) *IncomeCategoryHandler {
	return &IncomeCategoryHandler{categoryService: categoryService}
}

func (h *IncomeCategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/api/income-categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *IncomeCategoryHandler) ListCategories(c *gin.Context) {
	params := pagination.Parse(c)
	page, err := h.categoryService.ListCategories(c.Request.Context(), listing.Query{Page: params.Page, Size: params.Size})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

func (h *IncomeCategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		respondNotFound(c, "category", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

func (h *IncomeCategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

func (h *IncomeCategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if category == nil {
		respondNotFound(c, "category", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

func (h *IncomeCategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.categoryService.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "category", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
