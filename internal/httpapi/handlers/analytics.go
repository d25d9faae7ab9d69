package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mindfulai/backend/internal/common"
)

func (h *Handler) GetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Cache != nil {
		if cached, err := h.Cache.GetDashboard(ctx); err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	d, err := h.AnalyticsSvc.Dashboard(ctx)
	if err != nil {
		log.Printf("[GetAnalytics] failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50020, "Failed to fetch analytics")
		return
	}

	payload := gin.H{"code": 0, "message": "ok", "data": d}
	if h.Cache != nil {
		if b, err := json.Marshal(payload); err == nil {
			if err := h.Cache.SetDashboard(ctx, b); err != nil {
				log.Printf("[GetAnalytics] cache set failed err=%v", err)
			}
		}
	}

	c.JSON(http.StatusOK, payload)
}

func (h *Handler) GetSentimentDistribution(c *gin.Context) {
	dist, err := h.AnalyticsSvc.SentimentDistribution(c.Request.Context())
	if err != nil {
		log.Printf("[GetSentimentDistribution] failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50021, "Failed to fetch sentiment distribution")
		return
	}
	common.OK(c, gin.H{"distribution": dist})
}

func (h *Handler) GetConversationHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	conversations, err := h.AnalyticsSvc.RecentConversations(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[GetConversationHistory] failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50022, "Failed to fetch conversation history")
		return
	}

	common.OK(c, gin.H{
		"count":         len(conversations),
		"conversations": conversations,
	})
}
