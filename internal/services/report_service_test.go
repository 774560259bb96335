package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fixmycity/fixmycity-backend/internal/classifier"
	"github.com/fixmycity/fixmycity-backend/internal/config"
	"github.com/fixmycity/fixmycity-backend/internal/dto"
	"github.com/fixmycity/fixmycity-backend/internal/models"
)

type fakeUploader struct {
	url        string
	uploadErr  error
	destroyErr error
	uploaded   []string
	destroyed  []string
}

func (f *fakeUploader) Upload(_ context.Context, imageData string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, imageData)
	return f.url, nil
}

func (f *fakeUploader) Destroy(_ context.Context, imageURL string) error {
	f.destroyed = append(f.destroyed, imageURL)
	return f.destroyErr
}

type fakeClassifier struct {
	label      string
	confidence float64
	err        error
	calls      []string
}

func (f *fakeClassifier) Predict(_ context.Context, imageData string) (*classifier.Prediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, imageData)
	raw, _ := json.Marshal(map[string]interface{}{
		"prediction": f.label,
		"confidence": f.confidence,
	})
	return &classifier.Prediction{Label: f.label, Confidence: f.confidence, Raw: raw}, nil
}

const hostedURL = "https://res.cloudinary.com/demo/image/upload/v1/fix-my-city/abc123.jpg"

func newReportService(db *gorm.DB, up *fakeUploader, cls *fakeClassifier) *ReportService {
	return NewReportService(db, up, cls, &config.Config{})
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  email + "TestUser",
		Password:  "hashed",
		Nrc:       email + "-nrc",
		Phone:     email + "-phone",
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func validSubmission() *dto.SubmitReportRequest {
	return &dto.SubmitReportRequest{
		Title:   "Pothole",
		Caption: "Deep pothole on the main road",
		Place:   "Cairo Road",
		Rating:  4,
		Image:   "data:image/png;base64,AAAA",
		Lat:     "-15.4167",
		Lng:     "28.2833",
	}
}

func reportCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	return count
}

func TestSubmit(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	up := &fakeUploader{url: hostedURL}
	cls := &fakeClassifier{label: "RDA", confidence: 0.93}
	svc := newReportService(db, up, cls)

	report, err := svc.Submit(context.Background(), owner, validSubmission())
	require.NoError(t, err)

	assert.Equal(t, "Pothole", report.Title)
	assert.Equal(t, hostedURL, report.Image)
	assert.Equal(t, "RDA", report.ReportIsFor)
	assert.Equal(t, owner.ID, report.UserID)
	assert.Zero(t, report.Responded)
	assert.Empty(t, report.Comment)
	assert.Nil(t, report.ResponderID)
	assert.NotEmpty(t, report.Classification)

	// The classifier sees the original data URL, not the hosted URL.
	require.Len(t, cls.calls, 1)
	assert.Equal(t, "data:image/png;base64,AAAA", cls.calls[0])

	assert.EqualValues(t, 1, reportCount(t, db))
}

func TestSubmitRoutingLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"recognized label", "ZEMA", "ZEMA"},
		{"uncertain marker", classifier.Uncertain, models.NoAuthorityFound},
		{"empty label", "", models.NoAuthorityFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			owner := createUser(t, db, "owner@x.com")
			svc := newReportService(db, &fakeUploader{url: hostedURL}, &fakeClassifier{label: tt.label})

			report, err := svc.Submit(context.Background(), owner, validSubmission())
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.ReportIsFor)
		})
	}
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	svc := newReportService(db, &fakeUploader{url: hostedURL}, &fakeClassifier{label: "RDA"})

	tests := []struct {
		name   string
		mutate func(r *dto.SubmitReportRequest)
		msg    string
	}{
		{"missing title", func(r *dto.SubmitReportRequest) { r.Title = "" }, "title is Required"},
		{"missing image", func(r *dto.SubmitReportRequest) { r.Image = "" }, "image is Required"},
		{"missing place", func(r *dto.SubmitReportRequest) { r.Place = "" }, "place is Required"},
		{"missing caption", func(r *dto.SubmitReportRequest) { r.Caption = "" }, "caption is Required"},
		{"zero rating", func(r *dto.SubmitReportRequest) { r.Rating = 0 }, "rating is Required"},
		{"negative rating", func(r *dto.SubmitReportRequest) { r.Rating = -1 }, "rating is Required"},
		{"missing lat", func(r *dto.SubmitReportRequest) { r.Lat = "" }, "Your Location is required"},
		{"missing lng", func(r *dto.SubmitReportRequest) { r.Lng = "" }, "Your Location is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), owner, req)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.msg, validation.Message)
			assert.Zero(t, reportCount(t, db))
		})
	}
}

func TestSubmitUploadFailure(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	up := &fakeUploader{uploadErr: fmt.Errorf("provider down")}
	svc := newReportService(db, up, &fakeClassifier{label: "RDA"})

	_, err := svc.Submit(context.Background(), owner, validSubmission())
	assert.ErrorIs(t, err, ErrImageUpload)
	assert.Zero(t, reportCount(t, db))
}

func TestSubmitClassifierFailure(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	svc := newReportService(db, &fakeUploader{url: hostedURL}, &fakeClassifier{err: fmt.Errorf("endpoint unreachable")})

	_, err := svc.Submit(context.Background(), owner, validSubmission())
	require.Error(t, err)

	var validation *ValidationError
	assert.False(t, errors.As(err, &validation))
	assert.Zero(t, reportCount(t, db))
}

func TestSubmitStalenessGuard(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	svc := newReportService(db, &fakeUploader{url: hostedURL}, &fakeClassifier{label: "RDA"})
	svc.maxAge = time.Hour

	base := time.Now()
	ticks := []time.Time{base, base.Add(2 * time.Hour)}
	svc.now = func() time.Time {
		next := ticks[0]
		if len(ticks) > 1 {
			ticks = ticks[1:]
		}
		return next
	}

	_, err := svc.Submit(context.Background(), owner, validSubmission())
	assert.ErrorIs(t, err, ErrStaleSubmission)
	assert.Zero(t, reportCount(t, db))
}

func seedReports(t *testing.T, db *gorm.DB, owner *models.User, n int, authority string, start time.Time) []models.Report {
	t.Helper()
	reports := make([]models.Report, 0, n)
	for i := 0; i < n; i++ {
		r := models.Report{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("report-%s-%d", authority, i),
			Place:       "somewhere",
			Caption:     "something broke",
			ReportIsFor: authority,
			Image:       hostedURL,
			Rating:      3,
			Lat:         "-15.4",
			Lng:         "28.3",
			UserID:      owner.ID,
			CreatedAt:   start.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&r).Error)
		reports = append(reports, r)
	}
	return reports
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	other := createUser(t, db, "other@x.com")
	svc := newReportService(db, &fakeUploader{}, &fakeClassifier{})

	base := time.Now().Add(-24 * time.Hour)
	seedReports(t, db, owner, 25, "RDA", base)
	seedReports(t, db, other, 5, "ZEMA", base.Add(time.Hour))

	page, err := svc.List(2, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, page.CurrentPage)
	assert.EqualValues(t, 30, page.TotalRecords)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Reports, 10)

	// Newest first, so page 2 starts at the 11th newest record.
	for i := 1; i < len(page.Reports); i++ {
		assert.False(t, page.Reports[i].CreatedAt.After(page.Reports[i-1].CreatedAt))
	}

	// Owner populated on the general listing.
	require.NotNil(t, page.Reports[0].User)
}

func TestMineCountsFilteredCollection(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	other := createUser(t, db, "other@x.com")
	svc := newReportService(db, &fakeUploader{}, &fakeClassifier{})

	base := time.Now().Add(-24 * time.Hour)
	seedReports(t, db, owner, 7, "RDA", base)
	seedReports(t, db, other, 3, "RDA", base.Add(time.Hour))

	page, err := svc.Mine(owner.ID, 1, DefaultLimitMine)
	require.NoError(t, err)

	assert.EqualValues(t, 7, page.TotalRecords)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Reports, 7)
	for _, r := range page.Reports {
		assert.Equal(t, owner.ID, r.UserID)
		assert.Nil(t, r.User)
	}
}

func TestForAuthority(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	svc := newReportService(db, &fakeUploader{}, &fakeClassifier{})

	base := time.Now().Add(-24 * time.Hour)
	seedReports(t, db, owner, 4, "ZEMA", base)
	seedReports(t, db, owner, 2, "RDA", base.Add(time.Hour))

	page, err := svc.ForAuthority("ZEMA", 1, DefaultLimitAuthority)
	require.NoError(t, err)

	assert.EqualValues(t, 4, page.TotalRecords)
	require.Len(t, page.Reports, 4)
	for _, r := range page.Reports {
		assert.Equal(t, "ZEMA", r.ReportIsFor)
		assert.NotNil(t, r.User)
	}
}

func TestUpdateAllowList(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	responder := createUser(t, db, "responder@x.com")
	svc := newReportService(db, &fakeUploader{}, &fakeClassifier{})

	seeded := seedReports(t, db, owner, 1, "RDA", time.Now())[0]

	title := "Updated Title"
	responded := 1
	comment := "We are on it"
	updated, err := svc.Update(seeded.ID, responder, &dto.UpdateReportRequest{
		Title:     &title,
		Responded: &responded,
		Comment:   &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, 1, updated.Responded)
	assert.Equal(t, "We are on it", updated.Comment)

	// Unlisted fields stay untouched.
	assert.Equal(t, seeded.Caption, updated.Caption)
	assert.Equal(t, seeded.Image, updated.Image)
	assert.Equal(t, seeded.UserID, updated.UserID)
	assert.Equal(t, seeded.ReportIsFor, updated.ReportIsFor)
}

func TestUpdateResponderFirstWriteWins(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	first := createUser(t, db, "first@x.com")
	second := createUser(t, db, "second@x.com")
	svc := newReportService(db, &fakeUploader{}, &fakeClassifier{})

	seeded := seedReports(t, db, owner, 1, "RDA", time.Now())[0]

	comment := "first response"
	updated, err := svc.Update(seeded.ID, first, &dto.UpdateReportRequest{Comment: &comment})
	require.NoError(t, err)
	require.NotNil(t, updated.ResponderID)
	assert.Equal(t, first.ID, *updated.ResponderID)

	comment = "second response"
	updated, err = svc.Update(seeded.ID, second, &dto.UpdateReportRequest{Comment: &comment})
	require.NoError(t, err)
	require.NotNil(t, updated.ResponderID)
	assert.Equal(t, first.ID, *updated.ResponderID)
	assert.Equal(t, "second response", updated.Comment)
}

func TestUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	caller := createUser(t, db, "caller@x.com")
	svc := newReportService(db, &fakeUploader{}, &fakeClassifier{})

	_, err := svc.Update(uuid.New(), caller, &dto.UpdateReportRequest{})
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestDeleteOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	intruder := createUser(t, db, "intruder@x.com")
	up := &fakeUploader{}
	svc := newReportService(db, up, &fakeClassifier{})

	seeded := seedReports(t, db, owner, 1, "RDA", time.Now())[0]

	err := svc.Delete(context.Background(), seeded.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotReportOwner)
	assert.EqualValues(t, 1, reportCount(t, db))
	assert.Empty(t, up.destroyed)

	require.NoError(t, svc.Delete(context.Background(), seeded.ID, owner.ID))
	assert.Zero(t, reportCount(t, db))
	require.Len(t, up.destroyed, 1)
	assert.Equal(t, hostedURL, up.destroyed[0])
}

func TestDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	caller := createUser(t, db, "caller@x.com")
	svc := newReportService(db, &fakeUploader{}, &fakeClassifier{})

	err := svc.Delete(context.Background(), uuid.New(), caller.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestDeleteSkipsUnrecognizedHost(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	up := &fakeUploader{}
	svc := newReportService(db, up, &fakeClassifier{})

	seeded := seedReports(t, db, owner, 1, "RDA", time.Now())[0]
	require.NoError(t, db.Model(&seeded).Update("image", "https://example.com/elsewhere.jpg").Error)

	require.NoError(t, svc.Delete(context.Background(), seeded.ID, owner.ID))
	assert.Empty(t, up.destroyed)
}

func TestDeleteSwallowsDestroyFailure(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@x.com")
	up := &fakeUploader{destroyErr: fmt.Errorf("provider down")}
	svc := newReportService(db, up, &fakeClassifier{})

	seeded := seedReports(t, db, owner, 1, "RDA", time.Now())[0]

	require.NoError(t, svc.Delete(context.Background(), seeded.ID, owner.ID))
	assert.Zero(t, reportCount(t, db))
}
