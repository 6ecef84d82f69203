package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-bidding/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-bidding/internal/interface/http/response"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/bid"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/identity"
)

type ProfileHandler struct {
	getProfileUC   *identity.GetProfileUseCase
	activateRoleUC *identity.ActivateRoleUseCase
	listMyBidsUC   *bid.ListMyBidsUseCase
}

func NewProfileHandler(
	getProfileUC *identity.GetProfileUseCase,
	activateRoleUC *identity.ActivateRoleUseCase,
	listMyBidsUC *bid.ListMyBidsUseCase,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC:   getProfileUC,
		activateRoleUC: activateRoleUC,
		listMyBidsUC:   listMyBidsUC,
	}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	profile, err := h.getProfileUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(profile))
}

// ActivateRole обрабатывает POST /profiles/me/roles. Повторная активация не ошибка.
func (h *ProfileHandler) ActivateRole(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.ActivateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.activateRoleUC.Execute(c.Request.Context(), userID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(profile))
}

func (h *ProfileHandler) ListMyBids(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	bids, err := h.listMyBidsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidResponses(bids))
}
