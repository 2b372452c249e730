package check

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/project-clarion/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/fact-check", h.factCheck)
}

// POST /fact-check
func (h *Handler) factCheck(c *gin.Context) {
	var dto factCheckDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "claim is required")
		return
	}
	if strings.TrimSpace(dto.Claim) == "" {
		response.BadRequest(c, "claim must not be empty")
		return
	}

	verdict, err := h.svc.FactCheck(c.Request.Context(), dto.Claim)
	if err != nil {
		if errors.Is(err, ErrEmptyClaim) {
			response.BadRequest(c, "claim must not be empty")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, verdict)
}
