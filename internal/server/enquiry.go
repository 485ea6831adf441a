package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
)

func (s *Server) CreateEnquiry(c *gin.Context) {
	var req enquirydomain.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	enquiry, err := s.enquirySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": enquiry})
}

func (s *Server) GetEnquiry(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	enquiry, err := s.enquirySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": enquiry})
}

func (s *Server) ListEnquiries(c *gin.Context) {
	req := enquirydomain.ListEnquiryRequest{
		PageToken: strings.TrimSpace(c.Query("page_token")),
		PageSize:  parsePageSize(c.Query("page_size")),
		Status:    strings.TrimSpace(c.Query("status")),
		Country:   strings.TrimSpace(c.Query("country")),
	}

	resp, err := s.enquirySvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEnquiry(c *gin.Context) {
	var req enquirydomain.UpdateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	enquiry, err := s.enquirySvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": enquiry})
}
