package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
)

func (s *Server) CreateMarkupSlab(c *gin.Context) {
	var req markupdomain.CreateSlabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	slab, err := s.markupSvc.CreateSlab(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": slab})
}

func (s *Server) ListMarkupSlabs(c *gin.Context) {
	slabs, err := s.markupSvc.ListSlabs(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": slabs})
}

func (s *Server) UpdateMarkupSlab(c *gin.Context) {
	var req markupdomain.UpdateSlabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	slab, err := s.markupSvc.UpdateSlab(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": slab})
}

func (s *Server) UpsertCountryMarkupRule(c *gin.Context) {
	var req markupdomain.UpsertCountryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rule, err := s.markupSvc.UpsertCountryRule(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rule})
}

func (s *Server) ListCountryMarkupRules(c *gin.Context) {
	rules, err := s.markupSvc.ListCountryRules(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rules})
}
