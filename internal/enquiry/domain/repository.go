package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListEnquiryFilter struct {
	Status  string
	Country string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, enquiry *Enquiry) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Enquiry, error)
	List(ctx context.Context, db *gorm.DB, filter ListEnquiryFilter, page pagination.Pagination) ([]*Enquiry, error)
	Update(ctx context.Context, db *gorm.DB, enquiry *Enquiry) error
}
