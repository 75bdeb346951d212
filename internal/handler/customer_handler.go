package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/listing"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/api/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.POST("/list", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PATCH("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
}

// ListCustomers accepts a filter/sort/pagination query in the body.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var q listing.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		respondBadRequest(c, err)
		return
	}

	page, err := h.customerService.ListCustomers(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		respondNotFound(c, "customer", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, customer))
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if customer == nil {
		respondNotFound(c, "customer", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, customer))
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.customerService.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "customer", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
