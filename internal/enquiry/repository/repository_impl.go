package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/enquiry/domain"
	"github.com/wouldcart/triplexa/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, enquiry *domain.Enquiry) error {
	return db.WithContext(ctx).Create(enquiry).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Enquiry, error) {
	var enquiry domain.Enquiry
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM enquiries WHERE id = ?`,
		id,
	).Scan(&enquiry).Error
	if err != nil {
		return nil, err
	}
	if enquiry.ID == 0 {
		return nil, nil
	}
	return &enquiry, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListEnquiryFilter, page pagination.Pagination) ([]*domain.Enquiry, error) {
	var enquiries []*domain.Enquiry
	stmt := db.WithContext(ctx).Model(&domain.Enquiry{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Country != "" {
		stmt = stmt.Where("destination_country = ?", filter.Country)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err == nil && cursor.CreatedAt != "" {
			// Bind the cursor as time.Time so every dialect normalizes the
			// comparison; the id breaks ties between equal timestamps.
			if after, tsErr := time.Parse(time.RFC3339Nano, cursor.CreatedAt); tsErr == nil {
				if lastID, idErr := snowflake.ParseString(cursor.ID); idErr == nil {
					stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)", after, after, lastID)
				} else {
					stmt = stmt.Where("created_at < ?", after)
				}
			}
		}
	}
	limit := page.PageSize
	if limit <= 0 {
		limit = 10
	}
	err := stmt.
		Order("created_at desc, id desc").
		Limit(limit + 1).
		Find(&enquiries).Error
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, enquiry *domain.Enquiry) error {
	return db.WithContext(ctx).Save(enquiry).Error
}
