package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	termsdomain "github.com/wouldcart/triplexa/internal/terms/domain"
)

func (s *Server) CreateTermsTemplate(c *gin.Context) {
	var req termsdomain.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	template, err := s.termsSvc.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": template})
}

func (s *Server) ListTermsTemplates(c *gin.Context) {
	templates, err := s.termsSvc.ListTemplates(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": templates})
}

func (s *Server) UpdateTermsTemplate(c *gin.Context) {
	var req termsdomain.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	template, err := s.termsSvc.UpdateTemplate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": template})
}

func (s *Server) DeleteTermsTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.termsSvc.DeleteTemplate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type previewTermsRequest struct {
	CountryCode string                      `json:"country_code"`
	Terms       termsdomain.TermsConditions `json:"terms"`
}

// PreviewTermsDefaults shows the terms that would apply after template
// defaults fill the empty fields, without persisting anything.
func (s *Server) PreviewTermsDefaults(c *gin.Context) {
	var req previewTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filled, err := s.termsSvc.ApplyDefaults(c.Request.Context(), req.Terms, req.CountryCode)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": filled})
}
