package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-bidding/internal/interface/http/response"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/order"
)

type OrderHandler struct {
	getOrderUC      *order.GetOrderUseCase
	startOrderUC    *order.StartOrderUseCase
	completeOrderUC *order.CompleteOrderUseCase
	cancelOrderUC   *order.CancelOrderUseCase
}

func NewOrderHandler(
	getOrderUC *order.GetOrderUseCase,
	startOrderUC *order.StartOrderUseCase,
	completeOrderUC *order.CompleteOrderUseCase,
	cancelOrderUC *order.CancelOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		getOrderUC:      getOrderUC,
		startOrderUC:    startOrderUC,
		completeOrderUC: completeOrderUC,
		cancelOrderUC:   cancelOrderUC,
	}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	h.handle(c, h.getOrderUC.Execute)
}

func (h *OrderHandler) StartOrder(c *gin.Context) {
	h.handle(c, h.startOrderUC.Execute)
}

func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	h.handle(c, h.completeOrderUC.Execute)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	h.handle(c, h.cancelOrderUC.Execute)
}

func (h *OrderHandler) handle(c *gin.Context, exec func(ctx context.Context, orderID, actorID uuid.UUID) (*entity.Order, error)) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	o, err := exec(c.Request.Context(), orderID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(o))
}
