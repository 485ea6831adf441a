package repository

import (
	"context"
	"errors"

	"github.com/wouldcart/triplexa/internal/proposal/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) FindDraft(ctx context.Context, enquiryID string) (*domain.ProposalDraft, error) {
	var draft domain.ProposalDraft
	err := r.db.WithContext(ctx).Where("enquiry_id = ?", enquiryID).Take(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *repo) SaveDraft(ctx context.Context, draft *domain.ProposalDraft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *repo) InsertSendRecord(ctx context.Context, record *domain.SendRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repo) ListSendRecords(ctx context.Context, enquiryID string) ([]domain.SendRecord, error) {
	var records []domain.SendRecord
	err := r.db.WithContext(ctx).
		Where("enquiry_id = ?", enquiryID).
		Order("sent_at desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
