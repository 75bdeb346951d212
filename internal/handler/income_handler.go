package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/listing"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type IncomeHandler struct {
	incomeService service.IncomeService
}

func NewIncomeHandler(incomeService service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

func (h *IncomeHandler) RegisterRoutes(router *gin.RouterGroup) {
	incomes := router.Group("/api/incomes")
	{
		incomes.POST("", h.CreateIncome)
		incomes.POST("/list", h.ListIncomes)
		incomes.GET("/:id", h.GetIncome)
		incomes.PATCH("/:id", h.UpdateIncome)
		incomes.DELETE("/:id", h.DeleteIncome)
	}
}

func (h *IncomeHandler) ListIncomes(c *gin.Context) {
	var q listing.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		respondBadRequest(c, err)
		return
	}

	page, err := h.incomeService.ListIncomes(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

func (h *IncomeHandler) GetIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	income, err := h.incomeService.GetIncomeByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if income == nil {
		respondNotFound(c, "income", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, income))
}

func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	var req service.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, income))
}

func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if income == nil {
		respondNotFound(c, "income", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, income))
}

func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.incomeService.DeleteIncome(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "income", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
