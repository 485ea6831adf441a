package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	itinerarydomain "github.com/wouldcart/triplexa/internal/itinerary/domain"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
)

type itineraryDayInput struct {
	DayNumber         int     `json:"day_number"`
	Title             string  `json:"title"`
	AccommodationCost float64 `json:"accommodation_cost"`
	ActivityCost      float64 `json:"activity_cost"`
	TransportCost     float64 `json:"transport_cost"`
	MealCost          float64 `json:"meal_cost"`
}

type accommodationOptionInput struct {
	OptionNumber int     `json:"option_number"`
	Label        string  `json:"label"`
	BaseTotal    float64 `json:"base_total"`
}

func (s *Server) parseEnquiryID(c *gin.Context) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		AbortWithError(c, pricingdomain.ErrInvalidEnquiry)
		return 0, false
	}
	return id, true
}

func (s *Server) GetItinerary(c *gin.Context) {
	enquiryID, ok := s.parseEnquiryID(c)
	if !ok {
		return
	}

	days, err := s.itineraryRepo.ListDays(c.Request.Context(), enquiryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	options, err := s.itineraryRepo.ListOptions(c.Request.Context(), enquiryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"days":    days,
		"options": options,
	}})
}

func (s *Server) ReplaceItineraryDays(c *gin.Context) {
	enquiryID, ok := s.parseEnquiryID(c)
	if !ok {
		return
	}

	var inputs []itineraryDayInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	days := make([]itinerarydomain.ItineraryDay, 0, len(inputs))
	for _, in := range inputs {
		if in.DayNumber <= 0 {
			AbortWithError(c, newValidationError("day_number", "invalid_day_number", "day_number must be positive"))
			return
		}
		days = append(days, itinerarydomain.ItineraryDay{
			ID:                s.genID.Generate(),
			EnquiryID:         enquiryID,
			DayNumber:         in.DayNumber,
			Title:             strings.TrimSpace(in.Title),
			AccommodationCost: in.AccommodationCost,
			ActivityCost:      in.ActivityCost,
			TransportCost:     in.TransportCost,
			MealCost:          in.MealCost,
		})
	}

	if err := s.itineraryRepo.ReplaceDays(c.Request.Context(), enquiryID, days); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": days})
}

func (s *Server) ReplaceAccommodationOptions(c *gin.Context) {
	enquiryID, ok := s.parseEnquiryID(c)
	if !ok {
		return
	}

	var inputs []accommodationOptionInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(inputs) > 3 {
		AbortWithError(c, newValidationError("options", "too_many_options", "at most 3 package options"))
		return
	}

	options := make([]itinerarydomain.AccommodationOption, 0, len(inputs))
	for _, in := range inputs {
		if in.OptionNumber < 1 || in.OptionNumber > 3 {
			AbortWithError(c, newValidationError("option_number", "invalid_option_number", "option_number must be 1..3"))
			return
		}
		options = append(options, itinerarydomain.AccommodationOption{
			ID:           s.genID.Generate(),
			EnquiryID:    enquiryID,
			OptionNumber: in.OptionNumber,
			Label:        strings.TrimSpace(in.Label),
			BaseTotal:    in.BaseTotal,
		})
	}

	if err := s.itineraryRepo.ReplaceOptions(c.Request.Context(), enquiryID, options); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": options})
}
