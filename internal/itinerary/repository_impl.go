package itinerary

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/itinerary/domain"
	"gorm.io/gorm"
)

type repository struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewRepository(db *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &repository{db: db, genID: genID}
}

func (r *repository) ListDays(ctx context.Context, enquiryID snowflake.ID) ([]domain.ItineraryDay, error) {
	var days []domain.ItineraryDay
	err := r.db.WithContext(ctx).
		Where("enquiry_id = ?", enquiryID).
		Order("day_number asc").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (r *repository) ListOptions(ctx context.Context, enquiryID snowflake.ID) ([]domain.AccommodationOption, error) {
	var options []domain.AccommodationOption
	err := r.db.WithContext(ctx).
		Where("enquiry_id = ?", enquiryID).
		Order("option_number asc").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) ReplaceDays(ctx context.Context, enquiryID snowflake.ID, days []domain.ItineraryDay) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enquiry_id = ?", enquiryID).Delete(&domain.ItineraryDay{}).Error; err != nil {
			return err
		}
		for i := range days {
			days[i].ID = r.genID.Generate()
			days[i].EnquiryID = enquiryID
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

func (r *repository) ReplaceOptions(ctx context.Context, enquiryID snowflake.ID, options []domain.AccommodationOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enquiry_id = ?", enquiryID).Delete(&domain.AccommodationOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ID = r.genID.Generate()
			options[i].EnquiryID = enquiryID
		}
		if len(options) == 0 {
			return nil
		}
		return tx.Create(&options).Error
	})
}
