package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fixmycity/fixmycity-backend/internal/classifier"
	"github.com/fixmycity/fixmycity-backend/internal/config"
	"github.com/fixmycity/fixmycity-backend/internal/dto"
	"github.com/fixmycity/fixmycity-backend/internal/media"
	"github.com/fixmycity/fixmycity-backend/internal/models"
)

// Default page sizes per listing variant.
const (
	DefaultLimitAll       = 10
	DefaultLimitMine      = 20
	DefaultLimitAuthority = 150
)

// ReportService orchestrates the submission pipeline (upload → classify →
// persist) and report CRUD. The pipeline is a sequential best-effort chain:
// an image uploaded before a later step fails stays orphaned at the hosting
// provider.
type ReportService struct {
	db         *gorm.DB
	uploader   media.Uploader
	classifier classifier.Classifier
	maxAge     time.Duration
	now        func() time.Time
}

func NewReportService(db *gorm.DB, uploader media.Uploader, cls classifier.Classifier, cfg *config.Config) *ReportService {
	return &ReportService{
		db:         db,
		uploader:   uploader,
		classifier: cls,
		maxAge:     cfg.ReportMaxAge,
		now:        time.Now,
	}
}

// Submit validates the request, uploads the image, classifies the original
// image data to derive the routing label, and persists the report. An
// uploader failure aborts before anything is written; a classifier failure
// surfaces as an internal error (the uploaded image is not compensated).
func (s *ReportService) Submit(ctx context.Context, owner *models.User, req *dto.SubmitReportRequest) (*models.Report, error) {
	if req.Title == "" {
		return nil, invalid("title is Required")
	}
	if req.Image == "" {
		return nil, invalid("image is Required")
	}
	if req.Place == "" {
		return nil, invalid("place is Required")
	}
	if req.Caption == "" {
		return nil, invalid("caption is Required")
	}
	if req.Rating <= 0 {
		return nil, invalid("rating is Required")
	}
	if req.Lat == "" || req.Lng == "" {
		return nil, invalid("Your Location is required")
	}

	constructedAt := s.now()

	imageURL, err := s.uploader.Upload(ctx, req.Image)
	if err != nil {
		slog.Error("report image upload failed", "user_id", owner.ID.String(), "error", err)
		return nil, ErrImageUpload
	}

	// Classify the original data URL, not the hosted URL.
	prediction, err := s.classifier.Predict(ctx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("classify report image: %w", err)
	}

	reportIsFor := models.NoAuthorityFound
	if prediction.Label != "" && prediction.Label != classifier.Uncertain {
		reportIsFor = prediction.Label
	}

	if s.maxAge > 0 && s.now().Sub(constructedAt) > s.maxAge {
		return nil, ErrStaleSubmission
	}

	report := models.Report{
		ID:          uuid.New(),
		Title:       req.Title,
		Place:       req.Place,
		Caption:     req.Caption,
		ReportIsFor: reportIsFor,
		Image:       imageURL,
		Rating:      req.Rating,
		Lat:         req.Lat,
		Lng:         req.Lng,
		UserID:      owner.ID,
		Responded:   0,
		Comment:     "",
	}
	if len(prediction.Raw) > 0 {
		report.Classification = datatypes.JSON(prediction.Raw)
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// List returns all reports, newest first, with the owner populated.
func (s *ReportService) List(page, limit int) (*dto.ReportPage, error) {
	return s.page(s.db.Model(&models.Report{}), page, limit, "User")
}

// Mine returns the caller's reports, unpopulated.
func (s *ReportService) Mine(userID uuid.UUID, page, limit int) (*dto.ReportPage, error) {
	return s.page(s.db.Model(&models.Report{}).Where("user_id = ?", userID), page, limit)
}

// ForAuthority returns reports routed to the given authority label, with
// owner and responder populated.
func (s *ReportService) ForAuthority(authority string, page, limit int) (*dto.ReportPage, error) {
	return s.page(s.db.Model(&models.Report{}).Where("report_is_for = ?", authority), page, limit, "User", "Responder")
}

// page counts the filtered collection, then fetches one offset window of it.
func (s *ReportService) page(query *gorm.DB, page, limit int, preloads ...string) (*dto.ReportPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimitAll
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	reports := make([]models.Report, 0, limit)
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	return &dto.ReportPage{
		Reports:      reports,
		CurrentPage:  page,
		TotalRecords: total,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Update applies the allow-listed patch fields. The responder is assigned to
// the caller only when not already set: first responder wins, and the field
// is immutable through this path afterwards.
func (s *ReportService) Update(id uuid.UUID, caller *models.User, req *dto.UpdateReportRequest) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, ErrReportNotFound
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Caption != nil {
		updates["caption"] = *req.Caption
	}
	if req.Place != nil {
		updates["place"] = *req.Place
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Responded != nil {
		updates["responded"] = *req.Responded
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}
	if req.ResponseDate != nil {
		updates["response_date"] = *req.ResponseDate
	}
	if req.Lat != nil {
		updates["lat"] = *req.Lat
	}
	if req.Lng != nil {
		updates["lng"] = *req.Lng
	}
	if report.ResponderID == nil {
		updates["responder_id"] = caller.ID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&report).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update report: %w", err)
		}
	}

	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload report: %w", err)
	}
	return &report, nil
}

// Delete removes a report. Only the owner may delete; the hosted image is
// destroyed best-effort when it lives on the recognized hosting provider.
func (s *ReportService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return ErrReportNotFound
	}
	if report.UserID != callerID {
		return ErrNotReportOwner
	}

	if strings.Contains(report.Image, "cloudinary") {
		if err := s.uploader.Destroy(ctx, report.Image); err != nil {
			slog.Error("report image deletion failed", "report_id", id.String(), "error", err)
		}
	}

	if err := s.db.Delete(&report).Error; err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}
