package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	proposaldomain "github.com/wouldcart/triplexa/internal/proposal/domain"
)

func (s *Server) GetProposal(c *gin.Context) {
	enquiryID := strings.TrimSpace(c.Param("id"))

	view, err := s.proposalSvc.Get(c.Request.Context(), enquiryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) UpdateProposal(c *gin.Context) {
	var req proposaldomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.EnquiryID = strings.TrimSpace(c.Param("id"))

	view, err := s.proposalSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) SendProposal(c *gin.Context) {
	var req proposaldomain.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.EnquiryID = strings.TrimSpace(c.Param("id"))

	record, err := s.proposalSvc.Send(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (s *Server) ProposalHistory(c *gin.Context) {
	enquiryID := strings.TrimSpace(c.Param("id"))

	records, err := s.proposalSvc.History(c.Request.Context(), enquiryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}
