package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-bidding/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-bidding/internal/interface/http/response"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/bid"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/order"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/project"
)

type ProjectHandler struct {
	createProjectUC *project.CreateProjectUseCase
	getProjectUC    *project.GetProjectUseCase
	listProjectsUC  *project.ListProjectsUseCase
	cancelProjectUC *project.CancelProjectUseCase
	bidStatsUC      *bid.BidStatsUseCase
	listOrdersUC    *order.ListProjectOrdersUseCase
}

func NewProjectHandler(
	createProjectUC *project.CreateProjectUseCase,
	getProjectUC *project.GetProjectUseCase,
	listProjectsUC *project.ListProjectsUseCase,
	cancelProjectUC *project.CancelProjectUseCase,
	bidStatsUC *bid.BidStatsUseCase,
	listOrdersUC *order.ListProjectOrdersUseCase,
) *ProjectHandler {
	return &ProjectHandler{
		createProjectUC: createProjectUC,
		getProjectUC:    getProjectUC,
		listProjectsUC:  listProjectsUC,
		cancelProjectUC: cancelProjectUC,
		bidStatsUC:      bidStatsUC,
		listOrdersUC:    listOrdersUC,
	}
}

// CreateProject обрабатывает POST /projects.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.createProjectUC.Execute(c.Request.Context(), project.CreateProjectInput{
		ClientID:    userID,
		Title:       req.Title,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProjectResponse(p))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.getProjectUC.Execute(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProjectResponse(p))
}

// ListProjects обрабатывает GET /projects?status=&client_id=&limit=&offset=.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	input := project.ListProjectsInput{
		Status: c.Query("status"),
		Limit:  parseIntQuery(c, "limit", 0),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("client_id должен быть корректным UUID"))
			return
		}
		input.ClientID = &clientID
	}

	projects, err := h.listProjectsUC.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProjectResponses(projects))
}

// CancelProject обрабатывает POST /projects/:id/cancel.
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.cancelProjectUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProjectResponse(p))
}

func (h *ProjectHandler) BidStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	stats, err := h.bidStatsUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToBidStatsResponse(stats))
}

func (h *ProjectHandler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	orders, err := h.listOrdersUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponses(orders))
}
