package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/listing"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type LotHandler struct {
	lotService service.LotService
}

func NewLotHandler(lotService service.LotService) *LotHandler {
	return &LotHandler{lotService: lotService}
}

func (h *LotHandler) RegisterRoutes(router *gin.RouterGroup) {
	lots := router.Group("/api/lots")
	{
		lots.POST("", h.CreateLot)
		lots.POST("/list", h.ListLots)
		lots.GET("/:id", h.GetLot)
		lots.PATCH("/:id", h.UpdateLot)
		lots.DELETE("/:id", h.DeleteLot)
	}
}

func (h *LotHandler) ListLots(c *gin.Context) {
	var q listing.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		respondBadRequest(c, err)
		return
	}

	page, err := h.lotService.ListLots(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

func (h *LotHandler) GetLot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lot, err := h.lotService.GetLotByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if lot == nil {
		respondNotFound(c, "lot", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lot))
}

func (h *LotHandler) CreateLot(c *gin.Context) {
	var req service.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	lot, err := h.lotService.CreateLot(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lot))
}

func (h *LotHandler) UpdateLot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	lot, err := h.lotService.UpdateLot(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if lot == nil {
		respondNotFound(c, "lot", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lot))
}

func (h *LotHandler) DeleteLot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.lotService.DeleteLot(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "lot", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
