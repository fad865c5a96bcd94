package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/google/uuid"
)

// in-memory repositories backing the flow tests

type memUserRepo struct {
	users map[uint]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*models.User)}
}

func (r *memUserRepo) addActive(id uint, email string) *models.User {
	u := &models.User{
		ID:        id,
		UUID:      uuid.New(),
		FullName:  "Test User",
		Email:     email,
		IsActive:  utils.ToPtr(true),
		CreatedAt: utils.UTCNow(),
	}
	r.users[id] = u
	return u
}

func (r *memUserRepo) ByID(ctx context.Context, id uint) (*models.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Save(ctx context.Context, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) SaveBatch(ctx context.Context, users []*models.User) error {
	for _, u := range users {
		r.users[u.ID] = u
	}
	return nil
}

func (r *memUserRepo) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) Exists(ctx context.Context, filter models.UserFilter) (bool, error) {
	return len(r.users) > 0, nil
}

func (r *memUserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ByUUID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.UUID.String() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	if u, ok := r.users[userID]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

type memCampaignRepo struct {
	campaigns []*models.Campaign
	nextID    uint
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{nextID: 1}
}

func (r *memCampaignRepo) ByID(ctx context.Context, id uint) (*models.Campaign, error) {
	for _, c := range r.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCampaignRepo) ByFilter(ctx context.Context, filter models.CampaignFilter, orderBy string, limit, offset int) ([]*models.Campaign, error) {
	matched := r.filtered(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *memCampaignRepo) filtered(filter models.CampaignFilter) []*models.Campaign {
	out := make([]*models.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *memCampaignRepo) Save(ctx context.Context, c *models.Campaign) error {
	c.ID = r.nextID
	r.nextID++
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	r.campaigns = append(r.campaigns, c)
	return nil
}

func (r *memCampaignRepo) SaveBatch(ctx context.Context, campaigns []*models.Campaign) error {
	for _, c := range campaigns {
		if err := r.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *memCampaignRepo) Count(ctx context.Context, filter models.CampaignFilter) (int64, error) {
	return int64(len(r.filtered(filter))), nil
}

func (r *memCampaignRepo) Exists(ctx context.Context, filter models.CampaignFilter) (bool, error) {
	return len(r.filtered(filter)) > 0, nil
}

func (r *memCampaignRepo) ByUUID(ctx context.Context, id string) (*models.Campaign, error) {
	for _, c := range r.campaigns {
		if c.UUID.String() == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCampaignRepo) ByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Campaign, error) {
	return r.ByFilter(ctx, models.CampaignFilter{UserID: &userID}, "", limit, offset)
}

func (r *memCampaignRepo) Update(ctx context.Context, campaign models.Campaign) error {
	for i, c := range r.campaigns {
		if c.ID == campaign.ID {
			campaign.UpdatedAt = utils.UTCNowPtr()
			r.campaigns[i] = &campaign
			return nil
		}
	}
	return ErrCampaignNotFound
}

func (r *memCampaignRepo) UpdateStatus(ctx context.Context, id uint, status models.CampaignStatus) error {
	for _, c := range r.campaigns {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	return ErrCampaignNotFound
}

func (r *memCampaignRepo) ListDueScheduled(ctx context.Context, asOf time.Time, limit int) ([]*models.Campaign, error) {
	out := make([]*models.Campaign, 0)
	for _, c := range r.campaigns {
		if c.Status == models.CampaignStatusScheduled && c.ScheduledAt != nil && !c.ScheduledAt.After(asOf) {
			out = append(out, c)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memClientRepo struct {
	clients map[uint]*models.Client
	groups  map[uint][]uint // group id to client ids
	nextID  uint
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{
		clients: make(map[uint]*models.Client),
		groups:  make(map[uint][]uint),
		nextID:  1,
	}
}

func (r *memClientRepo) add(userID uint, name, email, phone string, groupIDs ...uint) *models.Client {
	c := &models.Client{
		ID:        r.nextID,
		UUID:      uuid.New(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: utils.UTCNow(),
	}
	r.nextID++
	r.clients[c.ID] = c
	for _, g := range groupIDs {
		r.groups[g] = append(r.groups[g], c.ID)
	}
	return c
}

func (r *memClientRepo) ByID(ctx context.Context, id uint) (*models.Client, error) {
	return r.clients[id], nil
}

func (r *memClientRepo) ByFilter(ctx context.Context, filter models.ClientFilter, orderBy string, limit, offset int) ([]*models.Client, error) {
	out := make([]*models.Client, 0, len(r.clients))
	for _, c := range r.clients {
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memClientRepo) Save(ctx context.Context, c *models.Client) error {
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *memClientRepo) SaveBatch(ctx context.Context, clients []*models.Client) error {
	for _, c := range clients {
		if err := r.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *memClientRepo) Count(ctx context.Context, filter models.ClientFilter) (int64, error) {
	if filter.GroupID != nil {
		return int64(len(r.groups[*filter.GroupID])), nil
	}
	return int64(len(r.clients)), nil
}

func (r *memClientRepo) Exists(ctx context.Context, filter models.ClientFilter) (bool, error) {
	n, _ := r.Count(ctx, filter)
	return n > 0, nil
}

func (r *memClientRepo) ByUUID(ctx context.Context, id string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.UUID.String() == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) ListByGroup(ctx context.Context, groupID uint) ([]*models.Client, error) {
	ids := r.groups[groupID]
	out := make([]*models.Client, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClientRepo) Update(ctx context.Context, client models.Client) error {
	r.clients[client.ID] = &client
	return nil
}

func (r *memClientRepo) Delete(ctx context.Context, id uint) error {
	delete(r.clients, id)
	return nil
}

type memGroupRepo struct {
	groups map[uint]*models.TargetGroup
	nextID uint
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{groups: make(map[uint]*models.TargetGroup), nextID: 1}
}

func (r *memGroupRepo) add(userID uint, name string) *models.TargetGroup {
	g := &models.TargetGroup{
		ID:        r.nextID,
		UUID:      uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: utils.UTCNow(),
	}
	r.nextID++
	r.groups[g.ID] = g
	return g
}

func (r *memGroupRepo) ByID(ctx context.Context, id uint) (*models.TargetGroup, error) {
	return r.groups[id], nil
}

func (r *memGroupRepo) ByFilter(ctx context.Context, filter models.TargetGroupFilter, orderBy string, limit, offset int) ([]*models.TargetGroup, error) {
	out := make([]*models.TargetGroup, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g)
	}
	return out, nil
}

func (r *memGroupRepo) Save(ctx context.Context, g *models.TargetGroup) error {
	if g.ID == 0 {
		g.ID = r.nextID
		r.nextID++
	}
	if g.UUID == uuid.Nil {
		g.UUID = uuid.New()
	}
	r.groups[g.ID] = g
	return nil
}

func (r *memGroupRepo) SaveBatch(ctx context.Context, groups []*models.TargetGroup) error {
	for _, g := range groups {
		if err := r.Save(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *memGroupRepo) Count(ctx context.Context, filter models.TargetGroupFilter) (int64, error) {
	return int64(len(r.groups)), nil
}

func (r *memGroupRepo) Exists(ctx context.Context, filter models.TargetGroupFilter) (bool, error) {
	return len(r.groups) > 0, nil
}

func (r *memGroupRepo) ByUUID(ctx context.Context, id string) (*models.TargetGroup, error) {
	for _, g := range r.groups {
		if g.UUID.String() == id {
			return g, nil
		}
	}
	return nil, nil
}

func (r *memGroupRepo) AddClient(ctx context.Context, groupID, clientID uint) error {
	return nil
}

func (r *memGroupRepo) RemoveClient(ctx context.Context, groupID, clientID uint) error {
	return nil
}

func (r *memGroupRepo) Update(ctx context.Context, group models.TargetGroup) error {
	r.groups[group.ID] = &group
	return nil
}

func (r *memGroupRepo) Delete(ctx context.Context, id uint) error {
	delete(r.groups, id)
	return nil
}

type memMediaRepo struct {
	assets map[uint]*models.MediaAsset
	nextID uint
}

func newMemMediaRepo() *memMediaRepo {
	return &memMediaRepo{assets: make(map[uint]*models.MediaAsset), nextID: 1}
}

func (r *memMediaRepo) ByID(ctx context.Context, id uint) (*models.MediaAsset, error) {
	return r.assets[id], nil
}

func (r *memMediaRepo) ByFilter(ctx context.Context, filter models.MediaAssetFilter, orderBy string, limit, offset int) ([]*models.MediaAsset, error) {
	out := make([]*models.MediaAsset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	return out, nil
}

func (r *memMediaRepo) Save(ctx context.Context, a *models.MediaAsset) error {
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	r.assets[a.ID] = a
	return nil
}

func (r *memMediaRepo) SaveBatch(ctx context.Context, assets []*models.MediaAsset) error {
	for _, a := range assets {
		if err := r.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *memMediaRepo) Count(ctx context.Context, filter models.MediaAssetFilter) (int64, error) {
	return int64(len(r.assets)), nil
}

func (r *memMediaRepo) Exists(ctx context.Context, filter models.MediaAssetFilter) (bool, error) {
	return len(r.assets) > 0, nil
}

func (r *memMediaRepo) ByUUID(ctx context.Context, id string) (*models.MediaAsset, error) {
	for _, a := range r.assets {
		if a.UUID.String() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memMediaRepo) Delete(ctx context.Context, id uint) error {
	delete(r.assets, id)
	return nil
}

type memDispatchRepo struct {
	records []*models.DispatchRecord
	nextID  uint
}

func newMemDispatchRepo() *memDispatchRepo {
	return &memDispatchRepo{nextID: 1}
}

func (r *memDispatchRepo) ByID(ctx context.Context, id uint) (*models.DispatchRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *memDispatchRepo) ByFilter(ctx context.Context, filter models.DispatchRecordFilter, orderBy string, limit, offset int) ([]*models.DispatchRecord, error) {
	return r.records, nil
}

func (r *memDispatchRepo) Save(ctx context.Context, rec *models.DispatchRecord) error {
	rec.ID = r.nextID
	r.nextID++
	r.records = append(r.records, rec)
	return nil
}

func (r *memDispatchRepo) SaveBatch(ctx context.Context, recs []*models.DispatchRecord) error {
	for _, rec := range recs {
		if err := r.Save(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *memDispatchRepo) Count(ctx context.Context, filter models.DispatchRecordFilter) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *memDispatchRepo) Exists(ctx context.Context, filter models.DispatchRecordFilter) (bool, error) {
	return len(r.records) > 0, nil
}

func (r *memDispatchRepo) ByCampaignID(ctx context.Context, campaignID uint) ([]*models.DispatchRecord, error) {
	out := make([]*models.DispatchRecord, 0)
	for _, rec := range r.records {
		if rec.CampaignID == campaignID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memDispatchRepo) CountByCampaignAndStatus(ctx context.Context, campaignID uint, status string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.CampaignID == campaignID && strings.EqualFold(rec.Status, status) {
			n++
		}
	}
	return n, nil
}

// stubQueueFlow records Start calls without touching redis

type stubQueueFlow struct {
	started []string
}

func (s *stubQueueFlow) Start(ctx context.Context, req *dto.StartDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error) {
	s.started = append(s.started, req.CampaignUUID)
	return &dto.DispatchQueueResponse{
		Message: "Dispatch session started",
		Queue:   dto.DispatchQueueSnapshot{State: string(QueueActive), Position: 0, Total: 2},
	}, nil
}

func (s *stubQueueFlow) Advance(ctx context.Context, req *dto.AdvanceDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error) {
	return nil, ErrDispatchSessionNotFound
}

func (s *stubQueueFlow) Cancel(ctx context.Context, req *dto.CancelDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error) {
	return nil, ErrDispatchSessionNotFound
}
