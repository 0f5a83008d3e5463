package public

import (
	"strings"

	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/repository"
	"github.com/chowline/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	PaymentMethod   string                   `json:"payment_method"`
	FulfillmentType string                   `json:"fulfillment_type"`
	OrderType       string                   `json:"order_type"`
	CustomerName    string                   `json:"customer_name"`
	CustomerEmail   string                   `json:"customer_email"`
	CustomerPhone   string                   `json:"customer_phone"`
	Notes           string                   `json:"notes"`
	Address         *service.AddressInput    `json:"address"`
	Items           []service.OrderItemInput `json:"items"`
}

// CreateOrder 创建订单（游客或登录用户）
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		UserID:          optionalUserID(c),
		PaymentMethod:   req.PaymentMethod,
		FulfillmentType: req.FulfillmentType,
		OrderType:       req.OrderType,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Notes:           req.Notes,
		Address:         req.Address,
		Items:           req.Items,
	})
	if err != nil {
		respondOrderError(c, err, "error.order_create_failed")
		return
	}

	response.Success(c, order)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(id, optionalUserID(c))
	if err != nil {
		respondOrderError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// ListMyOrders 当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:            page,
		PageSize:        pageSize,
		UserID:          uid,
		Status:          strings.TrimSpace(c.Query("status")),
		FulfillmentType: strings.ToUpper(strings.TrimSpace(c.Query("fulfillment_type"))),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}
