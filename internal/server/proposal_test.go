package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	proposaldomain "github.com/wouldcart/triplexa/internal/proposal/domain"
)

type fakeProposalService struct {
	sendErr   error
	sendCalls int
}

func (f *fakeProposalService) Get(ctx context.Context, enquiryID string) (*proposaldomain.ProposalView, error) {
	_ = ctx
	return &proposaldomain.ProposalView{
		Draft: proposaldomain.ProposalDraft{EnquiryID: enquiryID},
	}, nil
}

func (f *fakeProposalService) Update(ctx context.Context, req proposaldomain.UpdateRequest) (*proposaldomain.ProposalView, error) {
	_ = ctx
	return &proposaldomain.ProposalView{
		Draft: proposaldomain.ProposalDraft{EnquiryID: req.EnquiryID},
	}, nil
}

func (f *fakeProposalService) Send(ctx context.Context, req proposaldomain.SendRequest) (*proposaldomain.SendRecord, error) {
	f.sendCalls++
	_ = ctx
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &proposaldomain.SendRecord{
		EnquiryID: req.EnquiryID,
		Method:    req.Method,
		SentTo:    "asha@example.com",
	}, nil
}

func (f *fakeProposalService) History(ctx context.Context, enquiryID string) ([]proposaldomain.SendRecord, error) {
	_ = ctx
	_ = enquiryID
	return nil, nil
}

func newProposalTestRouter(svc *fakeProposalService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{proposalSvc: svc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/enquiries/:id/proposal/send", srv.SendProposal)
	return router
}

func TestSendProposalNotReadyReturns422WithReasons(t *testing.T) {
	svc := &fakeProposalService{
		sendErr: &proposaldomain.ValidationErrors{
			Reasons: []string{
				"no pricing snapshot for enquiry",
				"terms and conditions are empty",
			},
		},
	}
	router := newProposalTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/enquiries/42/proposal/send", bytes.NewBufferString(`{"method":"email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %q", payload.Error.Type)
	}
	if len(payload.Error.Errors) != 2 {
		t.Fatalf("expected 2 reasons, got %d", len(payload.Error.Errors))
	}
}

func TestSendProposalInvalidMethodReturns400(t *testing.T) {
	svc := &fakeProposalService{sendErr: proposaldomain.ErrInvalidMethod}
	router := newProposalTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/enquiries/42/proposal/send", bytes.NewBufferString(`{"method":"fax"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSendProposalSuccess(t *testing.T) {
	svc := &fakeProposalService{}
	router := newProposalTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/enquiries/42/proposal/send", bytes.NewBufferString(`{"method":"email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.sendCalls != 1 {
		t.Fatalf("expected 1 send call, got %d", svc.sendCalls)
	}
}
