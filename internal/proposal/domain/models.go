package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	termsdomain "github.com/wouldcart/triplexa/internal/terms/domain"
)

type ProposalStatus string

const (
	StatusDraft ProposalStatus = "draft"
	StatusReady ProposalStatus = "ready"
	StatusSent  ProposalStatus = "sent"
)

type SendMethod string

const (
	SendEmail    SendMethod = "email"
	SendWhatsApp SendMethod = "whatsapp"
)

// AccommodationChoice is an option the agent shortlisted for the proposal.
type AccommodationChoice struct {
	OptionNumber int     `json:"option_number"`
	Label        string  `json:"label"`
	BaseTotal    float64 `json:"base_total"`
}

// ProposalDraft is the working proposal for one enquiry. Pricing is not
// stored here; it is read from the snapshot store so the draft always
// reflects the latest committed calculation. Status moves draft→ready→sent
// and never backwards; edits after sending leave the status stale until it
// is reset explicitly.
type ProposalDraft struct {
	ID             snowflake.ID                 `gorm:"primaryKey" json:"id"`
	EnquiryID      string                       `gorm:"type:text;not null;uniqueIndex" json:"enquiry_id"`
	Accommodations []AccommodationChoice        `gorm:"type:jsonb;serializer:json" json:"accommodations"`
	Terms          *termsdomain.TermsConditions `gorm:"type:jsonb;serializer:json" json:"terms"`
	Status         ProposalStatus               `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt      time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ProposalDraft) TableName() string { return "proposal_drafts" }

// SendRecord captures one dispatch with the pricing that was quoted at that
// moment, so later recalculations do not rewrite history.
type SendRecord struct {
	ID        snowflake.ID                   `gorm:"primaryKey" json:"id"`
	EnquiryID string                         `gorm:"type:text;not null;index" json:"enquiry_id"`
	Method    SendMethod                     `gorm:"type:text;not null" json:"method"`
	SentTo    string                         `gorm:"type:text;not null" json:"sent_to"`
	Snapshot  *pricingdomain.PricingSnapshot `gorm:"type:jsonb;serializer:json" json:"snapshot"`
	SentAt    time.Time                      `gorm:"not null" json:"sent_at"`
}

func (SendRecord) TableName() string { return "proposal_send_records" }

// ProposalView is a draft joined with its current pricing.
type ProposalView struct {
	Draft   ProposalDraft                  `json:"draft"`
	Pricing *pricingdomain.PricingSnapshot `json:"pricing"`
}

// ValidationErrors lists the human-readable reasons a send was rejected.
type ValidationErrors struct {
	Reasons []string `json:"reasons"`
}

func (e *ValidationErrors) Error() string {
	return "proposal_not_ready: " + strings.Join(e.Reasons, "; ")
}

var (
	ErrInvalidEnquiry = errors.New("invalid_enquiry_id")
	ErrInvalidMethod  = errors.New("invalid_send_method")
)

type UpdateRequest struct {
	EnquiryID      string                       `json:"enquiry_id"`
	Accommodations *[]AccommodationChoice       `json:"accommodations,omitempty"`
	Terms          *termsdomain.TermsConditions `json:"terms,omitempty"`
	// ResetStatus drops a stale "sent" status back to draft/ready.
	ResetStatus bool `json:"reset_status,omitempty"`
}

type SendRequest struct {
	EnquiryID string     `json:"enquiry_id"`
	Method    SendMethod `json:"method"`
	// SentTo defaults to the enquiry's email or phone for the method.
	SentTo string `json:"sent_to,omitempty"`
}

type Repository interface {
	FindDraft(ctx context.Context, enquiryID string) (*ProposalDraft, error)
	SaveDraft(ctx context.Context, draft *ProposalDraft) error
	InsertSendRecord(ctx context.Context, record *SendRecord) error
	ListSendRecords(ctx context.Context, enquiryID string) ([]SendRecord, error)
}

type Service interface {
	Get(ctx context.Context, enquiryID string) (*ProposalView, error)
	Update(ctx context.Context, req UpdateRequest) (*ProposalView, error)
	Send(ctx context.Context, req SendRequest) (*SendRecord, error)
	History(ctx context.Context, enquiryID string) ([]SendRecord, error)
}
