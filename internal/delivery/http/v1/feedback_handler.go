package v1

import (
	"net/http"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackUC domain.FeedbackUsecase
}

func NewFeedbackHandler(protected *gin.RouterGroup, feedbackUC domain.FeedbackUsecase) {
	handler := &FeedbackHandler{feedbackUC: feedbackUC}
	protected.POST("/ai/feedback", handler.Generate)
}

// Generate godoc
// @Summary      Review a cover letter against a resume and a job
// @Description  Each document is given as raw text or as the id of a stored record. Raw text wins.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.FeedbackRequest  true  "Documents"
// @Success      200      {object}  response.Response{data=domain.Feedback}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /ai/feedback [post]
// @Security     BearerAuth
func (h *FeedbackHandler) Generate(c *gin.Context) {
	var req domain.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	feedback, err := h.feedbackUC.Generate(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Feedback generated", feedback)
}
