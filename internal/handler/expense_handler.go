package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/listing"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	expenses := router.Group("/api/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.POST("/list", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
		expenses.PATCH("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	var q listing.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		respondBadRequest(c, err)
		return
	}

	page, err := h.expenseService.ListExpenses(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if expense == nil {
		respondNotFound(c, "expense", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req service.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, expense))
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if expense == nil {
		respondNotFound(c, "expense", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.expenseService.DeleteExpense(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "expense", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
