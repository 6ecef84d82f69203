package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-bidding/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-bidding/internal/interface/http/response"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/acceptance"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/bid"
)

type BidHandler struct {
	submitBidUC   *bid.SubmitBidUseCase
	withdrawBidUC *bid.WithdrawBidUseCase
	listBidsUC    *bid.ListBidsUseCase
	getBidUC      *bid.GetBidUseCase
	acceptBidUC   *acceptance.AcceptBidUseCase
}

func NewBidHandler(
	submitBidUC *bid.SubmitBidUseCase,
	withdrawBidUC *bid.WithdrawBidUseCase,
	listBidsUC *bid.ListBidsUseCase,
	getBidUC *bid.GetBidUseCase,
	acceptBidUC *acceptance.AcceptBidUseCase,
) *BidHandler {
	return &BidHandler{
		submitBidUC:   submitBidUC,
		withdrawBidUC: withdrawBidUC,
		listBidsUC:    listBidsUC,
		getBidUC:      getBidUC,
		acceptBidUC:   acceptBidUC,
	}
}

// SubmitBid обрабатывает POST /projects/:id/bids.
func (h *BidHandler) SubmitBid(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitBidRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.submitBidUC.Execute(c.Request.Context(), bid.SubmitBidInput{
		ProjectID:    projectID,
		FreelancerID: userID,
		Amount:       req.Amount,
		DeliveryDays: req.DeliveryDays,
		ProposalText: req.ProposalText,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToBidResponse(b))
}

// ListBids обрабатывает GET /projects/:id/bids. Порядок - по времени подачи.
func (h *BidHandler) ListBids(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	bids, err := h.listBidsUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponses(bids))
}

func (h *BidHandler) GetBid(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	bidID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.getBidUC.Execute(c.Request.Context(), bidID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponse(b))
}

// WithdrawBid обрабатывает POST /bids/:id/withdraw.
func (h *BidHandler) WithdrawBid(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	bidID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	b, err := h.withdrawBidUC.Execute(c.Request.Context(), bidID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponse(b))
}

// AcceptBid обрабатывает POST /bids/:id/accept и возвращает созданный заказ.
func (h *BidHandler) AcceptBid(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	bidID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	o, err := h.acceptBidUC.Execute(c.Request.Context(), bidID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToOrderResponse(o))
}
