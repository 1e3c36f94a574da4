package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/models"
	"khata/internal/services"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListLogs returns audit entries
// @Summary     List audit logs
// @Description Get audit entries, newest first
// @Tags        logs
// @Produce     json
// @Security    BearerAuth
// @Param       entity_id query string false "Filter by entity ID"
// @Param       action    query string false "CREATE, UPDATE or DELETE"
// @Success     200 {array}  models.AuditLog "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs [get]
func (h *AuditHandler) ListLogs(c *gin.Context) {
	filter := services.AuditFilter{EntityID: strings.TrimSpace(c.Query("entity_id"))}
	if raw := strings.TrimSpace(c.Query("action")); raw != "" {
		action := models.AuditAction(strings.ToUpper(raw))
		if !action.IsValid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "action must be CREATE, UPDATE or DELETE"))
			return
		}
		filter.Action = action
	}

	logs, err := h.auditService.ListLogs(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// StreamLogs pushes the audit trail on every append
// @Summary     Stream audit logs
// @Description Server-sent events carrying every audit entry, sent now and after every append
// @Tags        logs
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {array} models.AuditLog "snapshot events"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /logs/stream [get]
func (h *AuditHandler) StreamLogs(c *gin.Context) {
	streamSnapshots(c, "logs", h.auditService.Subscribe, func(logs []models.AuditLog) (any, error) {
		return gin.H{"logs": logs}, nil
	})
}
