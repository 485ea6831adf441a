package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/config"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	"github.com/wouldcart/triplexa/internal/snapshot/domain"
	"github.com/wouldcart/triplexa/internal/snapshot/livefeed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidEnquiryID = errors.New("invalid_enquiry_id")
	ErrNilSnapshot      = errors.New("nil_snapshot")
)

type pendingWrite struct {
	snap  *pricingdomain.PricingSnapshot
	seq   int64
	timer *time.Timer
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	genID    *snowflake.Node
	hub      *livefeed.Hub
	debounce time.Duration

	mu        sync.Mutex
	seq       map[string]int64
	committed map[string]int64
	pending   map[string]*pendingWrite
}

type ServiceParam struct {
	fx.In

	Lifecycle fx.Lifecycle
	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Hub       *livefeed.Hub
	Config    config.Config
}

func NewService(p ServiceParam) domain.Service {
	s := &Service{
		db:        p.DB,
		log:       p.Log.Named("snapshot.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		hub:       p.Hub,
		debounce:  time.Duration(p.Config.SnapshotDebounceMillis) * time.Millisecond,
		seq:       make(map[string]int64),
		committed: make(map[string]int64),
		pending:   make(map[string]*pendingWrite),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Flush(ctx)
		},
	})

	return s
}

// Save schedules a debounced write of the snapshot. Each call gets a
// monotonically increasing sequence number per enquiry; only the highest
// sequence seen is ever committed, so a slow earlier computation landing
// late cannot regress the stored value. A debounce of zero commits
// synchronously.
func (s *Service) Save(ctx context.Context, enquiryID string, snap *pricingdomain.PricingSnapshot) error {
	key := strings.TrimSpace(enquiryID)
	if key == "" {
		return ErrInvalidEnquiryID
	}
	if snap == nil {
		return ErrNilSnapshot
	}

	s.mu.Lock()
	s.seq[key]++
	seq := s.seq[key]

	if s.debounce <= 0 {
		s.mu.Unlock()
		return s.commit(ctx, key, snap, seq)
	}

	if prev := s.pending[key]; prev != nil {
		prev.timer.Stop()
	}
	pw := &pendingWrite{snap: snap, seq: seq}
	pw.timer = time.AfterFunc(s.debounce, func() {
		s.flushEnquiry(key)
	})
	s.pending[key] = pw
	s.mu.Unlock()

	return nil
}

func (s *Service) flushEnquiry(enquiryID string) {
	s.mu.Lock()
	pw := s.pending[enquiryID]
	delete(s.pending, enquiryID)
	s.mu.Unlock()
	if pw == nil {
		return
	}

	if err := s.commit(context.Background(), enquiryID, pw.snap, pw.seq); err != nil {
		s.log.Error("snapshot commit failed",
			zap.String("enquiry_id", enquiryID),
			zap.Error(err),
		)
	}
}

func (s *Service) commit(ctx context.Context, enquiryID string, snap *pricingdomain.PricingSnapshot, seq int64) error {
	s.mu.Lock()
	if seq <= s.committed[enquiryID] {
		s.mu.Unlock()
		s.log.Debug("stale snapshot write skipped",
			zap.String("enquiry_id", enquiryID),
			zap.Int64("seq", seq),
		)
		return nil
	}
	s.mu.Unlock()

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	var version int64

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.StoredSnapshot
		err := tx.Where("enquiry_id = ?", enquiryID).Take(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = domain.StoredSnapshot{
				ID:        s.genID.Generate(),
				EnquiryID: enquiryID,
				Payload:   datatypes.JSON(payload),
				Version:   1,
				Seq:       seq,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if seq <= row.Seq {
				version = row.Version
				return nil
			}
			row.Payload = datatypes.JSON(payload)
			row.Version++
			row.Seq = seq
			row.UpdatedAt = now
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}
		version = row.Version
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	if seq > s.committed[enquiryID] {
		s.committed[enquiryID] = seq
	}
	s.mu.Unlock()

	s.hub.Publish(enquiryID, livefeed.SnapshotEvent{
		EnquiryID: enquiryID,
		Version:   version,
		Snapshot:  snap,
		UpdatedAt: now,
	})

	s.log.Info("snapshot committed",
		zap.String("enquiry_id", enquiryID),
		zap.Int64("version", version),
		zap.Int64("seq", seq),
	)
	return nil
}

func (s *Service) Load(ctx context.Context, enquiryID string) (*pricingdomain.PricingSnapshot, error) {
	key := strings.TrimSpace(enquiryID)
	if key == "" {
		return nil, ErrInvalidEnquiryID
	}

	var row domain.StoredSnapshot
	err := s.db.WithContext(ctx).Where("enquiry_id = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap pricingdomain.PricingSnapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		s.log.Warn("stored snapshot is corrupt",
			zap.String("enquiry_id", key),
			zap.Error(err),
		)
		return nil, nil
	}
	return &snap, nil
}

func (s *Service) Subscribe(enquiryID string) (*livefeed.Subscription, []livefeed.SnapshotEvent, error) {
	return s.hub.Subscribe(enquiryID)
}

// Flush commits every pending debounced write. Called on shutdown so
// coalesced values are not lost.
func (s *Service) Flush(_ context.Context) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.pending))
	for key, pw := range s.pending {
		pw.timer.Stop()
		keys = append(keys, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.flushEnquiry(key)
	}
	return nil
}
