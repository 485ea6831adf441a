package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
)

func (s *Server) CalculatePricing(c *gin.Context) {
	enquiryID := strings.TrimSpace(c.Param("id"))

	if s.calcLimiter.Enabled() {
		result, err := s.calcLimiter.Allow(c.Request.Context(), enquiryID)
		if err != nil {
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			AbortWithError(c, ErrTooManyRequests)
			return
		}
	}

	// One recalculation per enquiry at a time across instances.
	token, acquired, err := s.calcLimiter.TryLock(c.Request.Context(), enquiryID)
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	if !acquired {
		c.Header("Retry-After", "1")
		AbortWithError(c, ErrTooManyRequests)
		return
	}
	defer func() {
		_ = s.calcLimiter.Unlock(c.Request.Context(), enquiryID, token)
	}()

	var req pricingdomain.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.EnquiryID = enquiryID

	snap, err := s.pricingSvc.Calculate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.snapshotSvc.Save(c.Request.Context(), enquiryID, snap); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snap})
}

func (s *Server) GetPricing(c *gin.Context) {
	enquiryID := strings.TrimSpace(c.Param("id"))

	snap, err := s.snapshotSvc.Load(c.Request.Context(), enquiryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if snap == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snap})
}
