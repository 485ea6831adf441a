package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	"github.com/wouldcart/triplexa/internal/snapshot/livefeed"
	"gorm.io/datatypes"
)

// StoredSnapshot is the persisted pricing result for one enquiry. One row
// per enquiry; Version increases on every committed write and Seq records
// the pipeline invocation that produced it, so a slow stale computation can
// never overwrite a newer result.
type StoredSnapshot struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	EnquiryID string         `gorm:"type:text;not null;uniqueIndex" json:"enquiry_id"`
	Payload   datatypes.JSON `gorm:"not null" json:"payload"`
	Version   int64          `gorm:"not null;default:0" json:"version"`
	Seq       int64          `gorm:"not null;default:0" json:"seq"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (StoredSnapshot) TableName() string { return "pricing_snapshots" }

// Service persists pricing snapshots and notifies subscribers of committed
// writes. Save is debounced; rapid successive calls for the same enquiry
// coalesce into one write of the latest value.
type Service interface {
	Save(ctx context.Context, enquiryID string, snap *pricingdomain.PricingSnapshot) error
	// Load returns nil for both a missing and a corrupt stored value;
	// corruption is logged, never surfaced as an error.
	Load(ctx context.Context, enquiryID string) (*pricingdomain.PricingSnapshot, error)
	Subscribe(enquiryID string) (*livefeed.Subscription, []livefeed.SnapshotEvent, error)
	// Flush commits all pending debounced writes immediately.
	Flush(ctx context.Context) error
}
