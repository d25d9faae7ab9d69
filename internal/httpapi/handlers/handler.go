package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mindfulai/backend/internal/analytics"
	"github.com/mindfulai/backend/internal/assessment"
	"github.com/mindfulai/backend/internal/chat"
	"github.com/mindfulai/backend/internal/common"
	"github.com/mindfulai/backend/internal/store/redisstore"
)

type Handler struct {
	ChatSvc      *chat.Service
	AssessSvc    *assessment.Service
	AnalyticsSvc *analytics.Service
	Cache        *redisstore.Store // optional
}

func NewHandler(chatSvc *chat.Service, assessSvc *assessment.Service, analyticsSvc *analytics.Service, cache *redisstore.Store) *Handler {
	return &Handler{
		ChatSvc:      chatSvc,
		AssessSvc:    assessSvc,
		AnalyticsSvc: analyticsSvc,
		Cache:        cache,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"status": "up"})
}
