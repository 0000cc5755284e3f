package v1

import (
	"net/http"
	"strings"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CoverLetterHandler struct {
	letterUC domain.CoverLetterUsecase
	uploads  pdfUploads
}

func NewCoverLetterHandler(protected *gin.RouterGroup, letterUC domain.CoverLetterUsecase, uploads pdfUploads) {
	handler := &CoverLetterHandler{letterUC: letterUC, uploads: uploads}

	letters := protected.Group("/cover-letters")
	{
		letters.GET("", handler.List)
		letters.GET("/:id", handler.GetDetails)
		letters.POST("", handler.Create)
		letters.PUT("/:id", handler.Update)
		letters.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List cover letters of own applications
// @Tags         cover-letters
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CoverLetter}
// @Router       /cover-letters [get]
// @Security     BearerAuth
func (h *CoverLetterHandler) List(c *gin.Context) {
	letters, err := h.letterUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cover letters retrieved", letters)
}

// GetDetails godoc
// @Summary      Get a cover letter
// @Tags         cover-letters
// @Produce      json
// @Param        id   path      int  true  "Cover letter ID"
// @Success      200  {object}  response.Response{data=domain.CoverLetter}
// @Failure      404  {object}  response.Response
// @Router       /cover-letters/{id} [get]
// @Security     BearerAuth
func (h *CoverLetterHandler) GetDetails(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	letter, err := h.letterUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cover letter retrieved", letter)
}

// Create godoc
// @Summary      Create a cover letter
// @Description  Content is limited to 8000 characters. Multipart bodies may carry a PDF "file".
// @Tags         cover-letters
// @Accept       json,mpfd
// @Produce      json
// @Param        letter  body      domain.CoverLetterInput  false  "Cover letter (JSON)"
// @Param        file    formData  file                     false  "PDF cover letter"
// @Success      201     {object}  response.Response{data=domain.CoverLetter}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /cover-letters [post]
// @Security     BearerAuth
func (h *CoverLetterHandler) Create(c *gin.Context) {
	var req domain.CoverLetterInput
	if isMultipart(c) {
		h.uploads.limitBody(c)
		text, ok, err := h.uploads.text(c)
		if err != nil {
			c.Error(err)
			return
		}
		appID, err := formInt(c, "application_id")
		if err != nil {
			c.Error(err)
			return
		}
		if appID != nil {
			req.ApplicationID = *appID
		}
		req.Title = c.PostForm("title")
		req.Language = formString(c, "language")
		req.Content = collapseSpaces(c.PostForm("content"))
		if ok {
			req.Content = text
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	letter, err := h.letterUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Cover letter created successfully", letter)
}

// Update godoc
// @Summary      Update a cover letter
// @Tags         cover-letters
// @Accept       json,mpfd
// @Produce      json
// @Param        id      path      int                      true   "Cover letter ID"
// @Param        letter  body      domain.CoverLetterPatch  false  "Fields to change"
// @Success      200     {object}  response.Response{data=domain.CoverLetter}
// @Failure      404     {object}  response.Response
// @Router       /cover-letters/{id} [put]
// @Security     BearerAuth
func (h *CoverLetterHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var patch domain.CoverLetterPatch
	if isMultipart(c) {
		h.uploads.limitBody(c)
		text, ok, err := h.uploads.text(c)
		if err != nil {
			c.Error(err)
			return
		}
		if patch.ApplicationID, err = formInt(c, "application_id"); err != nil {
			c.Error(err)
			return
		}
		patch.Title = formString(c, "title")
		patch.Language = formString(c, "language")
		patch.Content = formString(c, "content")
		if ok {
			patch.Content = &text
		}
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(msgInvalidJSON))
		return
	}

	letter, err := h.letterUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cover letter updated successfully", letter)
}

// Delete godoc
// @Summary      Delete a cover letter
// @Tags         cover-letters
// @Produce      json
// @Param        id   path      int  true  "Cover letter ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cover-letters/{id} [delete]
// @Security     BearerAuth
func (h *CoverLetterHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.letterUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cover letter deleted successfully", nil)
}

// collapseSpaces folds runs of whitespace into single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
