package repository

import (
	"context"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"gorm.io/gorm"
)

// DispatchRecordRepositoryImpl implements the DispatchRecordRepository interface
type DispatchRecordRepositoryImpl struct {
	*BaseRepository[models.DispatchRecord, models.DispatchRecordFilter]
}

// NewDispatchRecordRepository creates a new dispatch record repository
func NewDispatchRecordRepository(db *gorm.DB) DispatchRecordRepository {
	return &DispatchRecordRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DispatchRecord, models.DispatchRecordFilter](db),
	}
}

// ByCampaignID retrieves every dispatch record of a campaign
func (r *DispatchRecordRepositoryImpl) ByCampaignID(ctx context.Context, campaignID uint) ([]*models.DispatchRecord, error) {
	filter := models.DispatchRecordFilter{CampaignID: &campaignID}
	return r.ByFilter(ctx, filter, "created_at ASC", 0, 0)
}

// CountByCampaignAndStatus counts dispatch records of a campaign with the given status
func (r *DispatchRecordRepositoryImpl) CountByCampaignAndStatus(ctx context.Context, campaignID uint, status string) (int64, error) {
	filter := models.DispatchRecordFilter{CampaignID: &campaignID, Status: &status}
	return r.Count(ctx, filter)
}

// ByFilter retrieves dispatch records based on filter criteria
func (r *DispatchRecordRepositoryImpl) ByFilter(ctx context.Context, filter models.DispatchRecordFilter, orderBy string, limit, offset int) ([]*models.DispatchRecord, error) {
	db := r.getDB(ctx)

	var records []*models.DispatchRecord
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Count returns the number of dispatch records matching the filter
func (r *DispatchRecordRepositoryImpl) Count(ctx context.Context, filter models.DispatchRecordFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var record models.DispatchRecord
	err := r.applyFilter(db.Model(&record), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any dispatch record matching the filter exists
func (r *DispatchRecordRepositoryImpl) Exists(ctx context.Context, filter models.DispatchRecordFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *DispatchRecordRepositoryImpl) applyFilter(db *gorm.DB, filter models.DispatchRecordFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.CampaignID != nil {
		db = db.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.Channel != nil {
		db = db.Where("channel = ?", *filter.Channel)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
