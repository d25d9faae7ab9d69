package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfulai/backend/internal/assessment"
	"github.com/mindfulai/backend/internal/common"
)

type submitAssessmentReq struct {
	Answers []int  `json:"answers"`
	UserID  string `json:"user_id"`
}

func (h *Handler) SubmitAssessment(c *gin.Context) {
	var req submitAssessmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	res, err := h.AssessSvc.Submit(c.Request.Context(), req.UserID, req.Answers)
	if err != nil {
		if assessment.IsValidationError(err) {
			common.Fail(c, http.StatusBadRequest, 10010, err.Error())
			return
		}
		log.Printf("[SubmitAssessment] failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50010, "Failed to submit assessment")
		return
	}

	common.OK(c, res)
}

func (h *Handler) GetAssessmentHistory(c *gin.Context) {
	entries, err := h.AssessSvc.History(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		log.Printf("[GetAssessmentHistory] failed err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 50011, "Failed to fetch assessment history")
		return
	}

	common.OK(c, gin.H{
		"count":       len(entries),
		"assessments": entries,
	})
}

func (h *Handler) GetAssessmentQuestions(c *gin.Context) {
	common.OK(c, assessment.Questions())
}
