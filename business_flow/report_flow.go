package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
	"github.com/xuri/excelize/v2"
)

// ReportFlow exports campaign history with dispatch totals
type ReportFlow interface {
	ExportCampaignReport(ctx context.Context, req *dto.CampaignReportRequest, metadata *ClientMetadata) (string, []byte, error)
}

// ReportFlowImpl implements the report export flow
type ReportFlowImpl struct {
	userRepo     repository.UserRepository
	campaignRepo repository.CampaignRepository
	dispatchRepo repository.DispatchRecordRepository
}

// NewReportFlow creates a new report flow instance
func NewReportFlow(userRepo repository.UserRepository, campaignRepo repository.CampaignRepository, dispatchRepo repository.DispatchRecordRepository) ReportFlow {
	return &ReportFlowImpl{
		userRepo:     userRepo,
		campaignRepo: campaignRepo,
		dispatchRepo: dispatchRepo,
	}
}

const reportBatchSize = 1000

// ExportCampaignReport writes every campaign of the user into one worksheet
// with per-campaign sent and failed dispatch totals
func (f *ReportFlowImpl) ExportCampaignReport(ctx context.Context, req *dto.CampaignReportRequest, metadata *ClientMetadata) (string, []byte, error) {
	if _, err := getUser(ctx, f.userRepo, req.UserID); err != nil {
		return "", nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}

	campaigns, err := f.campaignRepo.ByFilter(ctx, models.CampaignFilter{UserID: &req.UserID}, "created_at DESC", reportBatchSize, 0)
	if err != nil {
		return "", nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to list campaigns", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Campaigns"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"uuid", "title", "status", "platforms", "sent", "failed", "scheduled_at", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, c := range campaigns {
		sent, err := f.dispatchRepo.CountByCampaignAndStatus(ctx, c.ID, models.DispatchStatusSent)
		if err != nil {
			return "", nil, NewBusinessError("DISPATCH_COUNT_FAILED", "Failed to count dispatches", err)
		}
		failed, err := f.dispatchRepo.CountByCampaignAndStatus(ctx, c.ID, models.DispatchStatusFailed)
		if err != nil {
			return "", nil, NewBusinessError("DISPATCH_COUNT_FAILED", "Failed to count dispatches", err)
		}

		scheduledAt := ""
		if c.ScheduledAt != nil {
			scheduledAt = c.ScheduledAt.UTC().Format(time.RFC3339)
		}

		record := []any{
			c.UUID.String(),
			c.Title,
			string(c.Status),
			strings.Join(c.Platforms, ", "),
			sent,
			failed,
			scheduledAt,
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return "campaign_report.xlsx", buf.Bytes(), nil
}
