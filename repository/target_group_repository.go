package repository

import (
	"context"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetGroupRepositoryImpl implements the TargetGroupRepository interface
type TargetGroupRepositoryImpl struct {
	*BaseRepository[models.TargetGroup, models.TargetGroupFilter]
}

// NewTargetGroupRepository creates a new target group repository
func NewTargetGroupRepository(db *gorm.DB) TargetGroupRepository {
	return &TargetGroupRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TargetGroup, models.TargetGroupFilter](db),
	}
}

// ByUUID retrieves a target group by UUID
func (r *TargetGroupRepositoryImpl) ByUUID(ctx context.Context, id string) (*models.TargetGroup, error) {
	parsedUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	filter := models.TargetGroupFilter{UUID: &parsedUUID}
	groups, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return groups[0], nil
}

// AddClient links a client to a target group, idempotently
func (r *TargetGroupRepositoryImpl) AddClient(ctx context.Context, groupID, clientID uint) error {
	db := r.getDB(ctx)
	membership := models.ClientGroup{ClientID: clientID, TargetGroupID: groupID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error
}

// RemoveClient removes a client from a target group
func (r *TargetGroupRepositoryImpl) RemoveClient(ctx context.Context, groupID, clientID uint) error {
	db := r.getDB(ctx)
	return db.Where("target_group_id = ? AND client_id = ?", groupID, clientID).
		Delete(&models.ClientGroup{}).Error
}

// Update updates a target group record
func (r *TargetGroupRepositoryImpl) Update(ctx context.Context, group models.TargetGroup) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Save(&group).Error
	if err != nil {
		return err
	}

	return nil
}

// Delete removes a target group and its memberships
func (r *TargetGroupRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	if err = db.Where("target_group_id = ?", id).Delete(&models.ClientGroup{}).Error; err != nil {
		return err
	}

	err = db.Delete(&models.TargetGroup{}, id).Error
	if err != nil {
		return err
	}

	return nil
}

// ByFilter retrieves target groups based on filter criteria
func (r *TargetGroupRepositoryImpl) ByFilter(ctx context.Context, filter models.TargetGroupFilter, orderBy string, limit, offset int) ([]*models.TargetGroup, error) {
	db := r.getDB(ctx)

	var groups []*models.TargetGroup
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

	err := query.Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// Count returns the number of target groups matching the filter
func (r *TargetGroupRepositoryImpl) Count(ctx context.Context, filter models.TargetGroupFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var group models.TargetGroup
	err := r.applyFilter(db.Model(&group), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any target group matching the filter exists
func (r *TargetGroupRepositoryImpl) Exists(ctx context.Context, filter models.TargetGroupFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *TargetGroupRepositoryImpl) applyFilter(db *gorm.DB, filter models.TargetGroupFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Name != nil {
		db = db.Where("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
