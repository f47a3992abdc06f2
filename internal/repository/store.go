package repository

import (
	"context"

	"github.com/noah-isme/nawa-notice-api/internal/models"
)

// NoticeStore is implemented by every notice backend.
type NoticeStore interface {
	List(ctx context.Context, filter models.NoticeFilter) ([]models.Notice, error)
	GetByID(ctx context.Context, id string) (*models.Notice, error)
	Create(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id string) (*models.Notice, error)
	AttachmentInUse(ctx context.Context, name string) (bool, error)
}

// AdminFinder resolves admin display names.
type AdminFinder interface {
	FindByID(ctx context.Context, id string) (*models.Admin, error)
}

var (
	_ NoticeStore = (*NoticeRepository)(nil)
	_ NoticeStore = (*NoticeMongoRepository)(nil)
	_ AdminFinder = (*AdminRepository)(nil)
	_ AdminFinder = (*AdminMongoRepository)(nil)
)
