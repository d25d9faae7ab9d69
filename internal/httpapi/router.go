package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfulai/backend/internal/analytics"
	"github.com/mindfulai/backend/internal/assessment"
	"github.com/mindfulai/backend/internal/chat"
	"github.com/mindfulai/backend/internal/common"
	"github.com/mindfulai/backend/internal/httpapi/handlers"
	"github.com/mindfulai/backend/internal/httpapi/middleware"
	"github.com/mindfulai/backend/internal/store/redisstore"
)

func NewRouter(chatSvc *chat.Service, assessSvc *assessment.Service, analyticsSvc *analytics.Service, cache *redisstore.Store) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(chatSvc, assessSvc, analyticsSvc, cache)

	r.GET("/ping", h.Ping)

	r.POST("/chat", h.SendChatMessage)

	r.POST("/assessments", h.SubmitAssessment)
	r.GET("/assessments/history", h.GetAssessmentHistory)
	r.GET("/assessments/questions", h.GetAssessmentQuestions)

	r.GET("/analytics", h.GetAnalytics)
	r.GET("/analytics/sentiment", h.GetSentimentDistribution)
	r.GET("/analytics/conversations", h.GetConversationHistory)

	return r
}
