package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.POST("/product-sales", h.ProductSales)
		reports.POST("/expense-categories", h.ExpenseCategoriesRollup)
		reports.POST("/income-categories", h.IncomeCategoriesRollup)
		reports.POST("/customer-sales", h.CustomerSales)
		reports.POST("/cashflow", h.Cashflow)
		reports.POST("/daily-summary", h.DailySummary)
	}
}

func (h *ReportHandler) ProductSales(c *gin.Context) {
	var req service.ProductSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	rows, err := h.reportService.ProductSales(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

func (h *ReportHandler) ExpenseCategoriesRollup(c *gin.Context) {
	var req service.CategoriesRollupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	rows, err := h.reportService.ExpenseCategoriesRollup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

func (h *ReportHandler) IncomeCategoriesRollup(c *gin.Context) {
	var req service.CategoriesRollupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	rows, err := h.reportService.IncomeCategoriesRollup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

func (h *ReportHandler) CustomerSales(c *gin.Context) {
	var req service.CustomerSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	report, err := h.reportService.CustomerSales(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

func (h *ReportHandler) Cashflow(c *gin.Context) {
	var req service.DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	report, err := h.reportService.Cashflow(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

func (h *ReportHandler) DailySummary(c *gin.Context) {
	var req service.DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	summaries, err := h.reportService.DailySummary(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summaries))
}
