package v1

import (
	"net/http"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
	uploads  pdfUploads
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase, uploads pdfUploads) {
	handler := &ResumeHandler{resumeUC: resumeUC, uploads: uploads}

	resumes := protected.Group("/resumes")
	{
		resumes.GET("", handler.List)
		resumes.GET("/:id", handler.GetDetails)
		resumes.POST("", handler.Create)
		resumes.PUT("/:id", handler.Update)
		resumes.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List own resumes
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Resume}
// @Router       /resumes [get]
// @Security     BearerAuth
func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.resumeUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resumes retrieved", resumes)
}

// GetDetails godoc
// @Summary      Get a resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {object}  response.Response{data=domain.Resume}
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetDetails(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	resume, err := h.resumeUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume retrieved", resume)
}

// Create godoc
// @Summary      Create a resume
// @Description  Accepts JSON, or multipart/form-data with a title and a PDF "file" whose text becomes the content.
// @Tags         resumes
// @Accept       json,mpfd
// @Produce      json
// @Param        resume  body      domain.ResumeInput  false  "Resume (JSON)"
// @Param        file    formData  file                false  "PDF resume"
// @Success      201     {object}  response.Response{data=domain.Resume}
// @Failure      400     {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Create(c *gin.Context) {
	var req domain.ResumeInput
	if isMultipart(c) {
		h.uploads.limitBody(c)
		text, ok, err := h.uploads.text(c)
		if err != nil {
			c.Error(err)
			return
		}
		req.Title = c.PostForm("title")
		req.Content = c.PostForm("content")
		if ok {
			req.Content = text
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	resume, err := h.resumeUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume created successfully", resume)
}

// Update godoc
// @Summary      Update a resume
// @Description  A PDF "file" in a multipart body replaces the content.
// @Tags         resumes
// @Accept       json,mpfd
// @Produce      json
// @Param        id      path      int                 true   "Resume ID"
// @Param        resume  body      domain.ResumePatch  false  "Fields to change"
// @Success      200     {object}  response.Response{data=domain.Resume}
// @Failure      404     {object}  response.Response
// @Router       /resumes/{id} [put]
// @Security     BearerAuth
func (h *ResumeHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var patch domain.ResumePatch
	if isMultipart(c) {
		h.uploads.limitBody(c)
		text, ok, err := h.uploads.text(c)
		if err != nil {
			c.Error(err)
			return
		}
		patch.Title = formString(c, "title")
		patch.Content = formString(c, "content")
		if ok {
			patch.Content = &text
		}
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	resume, err := h.resumeUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume updated successfully", resume)
}

// Delete godoc
// @Summary      Delete a resume
// @Description  Applications that used it keep existing with resume_id cleared.
// @Tags         resumes
// @Produce      json
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [delete]
// @Security     BearerAuth
func (h *ResumeHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.resumeUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted successfully", nil)
}
