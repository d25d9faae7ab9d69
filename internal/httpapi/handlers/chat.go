package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfulai/backend/internal/chat"
	"github.com/mindfulai/backend/internal/common"
)

type sendMessageReq struct {
	Message             string      `json:"message"`
	ConversationHistory []chat.Turn `json:"conversation_history"`
}

func (h *Handler) SendChatMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "Please provide a valid message")
		return
	}

	out, err := h.ChatSvc.Send(c.Request.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			common.Fail(c, http.StatusBadRequest, 10002, "Please provide a valid message")
			return
		case errors.Is(err, chat.ErrCrisisPersist):
			// The record was lost but the user in crisis still gets the
			// helpline reply. The failure has already been logged/alerted.
			break
		default:
			log.Printf("[SendChatMessage] pipeline failed err=%v", err)
			common.Fail(c, http.StatusInternalServerError, 50001, "An unexpected error occurred. Please try again.")
			return
		}
	}

	common.OK(c, gin.H{
		"reply":     out.Reply,
		"sentiment": out.Sentiment,
	})
}
