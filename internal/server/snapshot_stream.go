package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wouldcart/triplexa/internal/snapshot/livefeed"
)

// StreamPricing pushes committed pricing snapshots for one enquiry over SSE.
func (s *Server) StreamPricing(c *gin.Context) {
	enquiryID := strings.TrimSpace(c.Param("id"))
	if enquiryID == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if _, err := s.enquirySvc.GetByID(c.Request.Context(), enquiryID); err != nil {
		AbortWithError(c, err)
		return
	}

	subscription, backlog, err := s.snapshotSvc.Subscribe(enquiryID)
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	defer subscription.Close()

	writer := c.Writer
	headers := writer.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, ok := writer.(http.Flusher)
	if !ok {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	if _, err := io.WriteString(writer, "retry: 2000\n\n"); err != nil {
		return
	}

	for _, event := range backlog {
		if err := writeSnapshotEvent(writer, enquiryID, event); err != nil {
			return
		}
	}
	flusher.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-subscription.Events():
			if err := writeSnapshotEvent(writer, enquiryID, event); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshotEvent(w io.Writer, enquiryID string, event livefeed.SnapshotEvent) error {
	payload := event
	if payload.EnquiryID == "" {
		payload.EnquiryID = enquiryID
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
