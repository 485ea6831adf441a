package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
)

func (s *Server) CreateTaxDefinition(c *gin.Context) {
	var req taxdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	def, err := s.taxSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": def})
}

func (s *Server) ListTaxDefinitions(c *gin.Context) {
	filter := taxdomain.ListFilter{
		CountryCode: strings.TrimSpace(c.Query("country")),
		ServiceType: strings.TrimSpace(c.Query("service_type")),
	}
	if raw := strings.TrimSpace(c.Query("enabled")); raw != "" {
		enabled := raw == "true"
		filter.IsEnabled = &enabled
	}

	defs, err := s.taxSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": defs})
}

func (s *Server) UpdateTaxDefinition(c *gin.Context) {
	var req taxdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	def, err := s.taxSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": def})
}

func (s *Server) DisableTaxDefinition(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	def, err := s.taxSvc.Disable(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": def})
}
