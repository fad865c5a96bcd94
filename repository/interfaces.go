// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

// CampaignRepository defines operations for marketing campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Campaign, error)
	ByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign models.Campaign) error
	UpdateStatus(ctx context.Context, id uint, status models.CampaignStatus) error
	ListDueScheduled(ctx context.Context, asOf time.Time, limit int) ([]*models.Campaign, error)
}

// ClientRepository defines operations for contact records
type ClientRepository interface {
	Repository[models.Client, models.ClientFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Client, error)
	ListByGroup(ctx context.Context, groupID uint) ([]*models.Client, error)
	Update(ctx context.Context, client models.Client) error
	Delete(ctx context.Context, id uint) error
}

// TargetGroupRepository defines operations for target groups
type TargetGroupRepository interface {
	Repository[models.TargetGroup, models.TargetGroupFilter]
	ByUUID(ctx context.Context, uuid string) (*models.TargetGroup, error)
	AddClient(ctx context.Context, groupID, clientID uint) error
	RemoveClient(ctx context.Context, groupID, clientID uint) error
	Update(ctx context.Context, group models.TargetGroup) error
	Delete(ctx context.Context, id uint) error
}

// MediaAssetRepository defines operations for media assets
type MediaAssetRepository interface {
	Repository[models.MediaAsset, models.MediaAssetFilter]
	ByUUID(ctx context.Context, uuid string) (*models.MediaAsset, error)
	Delete(ctx context.Context, id uint) error
}

// DispatchRecordRepository defines operations for dispatch audit records
type DispatchRecordRepository interface {
	Repository[models.DispatchRecord, models.DispatchRecordFilter]
	ByCampaignID(ctx context.Context, campaignID uint) ([]*models.DispatchRecord, error)
	CountByCampaignAndStatus(ctx context.Context, campaignID uint, status string) (int64, error)
}
