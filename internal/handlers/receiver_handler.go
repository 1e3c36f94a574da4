package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/services"
)

// ReceiverHandler serves the names offered in transaction forms.
type ReceiverHandler struct {
	receiverService services.ReceiverServicer
	senders         []string
	receivers       []string
}

// NewReceiverHandler creates a new ReceiverHandler. senders are the fixed
// participants; receivers are the names offered as recipients.
func NewReceiverHandler(receiverService services.ReceiverServicer, senders, receivers []string) *ReceiverHandler {
	return &ReceiverHandler{receiverService: receiverService, senders: senders, receivers: receivers}
}

// ParticipantsResponse lists the names offered in forms.
type ParticipantsResponse struct {
	Senders   []string `json:"senders"`
	Receivers []string `json:"receivers"`
}

// ListReceivers returns receiver usage counters
// @Summary     List receivers
// @Description Get receiver names with how often each was used, most used first
// @Tags        receivers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Receiver "Receivers"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /receivers [get]
func (h *ReceiverHandler) ListReceivers(c *gin.Context) {
	receivers, err := h.receiverService.ListReceivers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receivers": receivers})
}

// ListParticipants returns the configured sender and receiver names
// @Summary     List participants
// @Description Get the fixed sender list and the receiver list used by forms
// @Tags        receivers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ParticipantsResponse "Participants"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /participants [get]
func (h *ReceiverHandler) ListParticipants(c *gin.Context) {
	c.JSON(http.StatusOK, ParticipantsResponse{Senders: h.senders, Receivers: h.receivers})
}
