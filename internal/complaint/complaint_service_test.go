package complaint

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	complainterrors "github.com/ImaneBelmiloudi/hr-management/internal/complaint/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	"github.com/ImaneBelmiloudi/hr-management/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeComplaintRepo struct {
	byID    map[uint]*Complaint
	nextID  uint
	deleted []uint
}

func newFakeComplaintRepo(seed ...*Complaint) *fakeComplaintRepo {
	r := &fakeComplaintRepo{byID: map[uint]*Complaint{}, nextID: 1}
	for _, cp := range seed {
		r.byID[cp.ID] = cp
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
	}
	return r
}

func (r *fakeComplaintRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *fakeComplaintRepo) Create(ctx context.Context, cp *Complaint) error {
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.nextID++
	r.byID[cp.ID] = cp
	return nil
}

func (r *fakeComplaintRepo) FindAll(ctx context.Context, employeeID *uint, status string) ([]Complaint, error) {
	var out []Complaint
	for _, cp := range r.byID {
		if employeeID != nil && cp.EmployeeID != *employeeID {
			continue
		}
		if status != "" && string(cp.Status) != status {
			continue
		}
		out = append(out, *cp)
	}
	return out, nil
}

func (r *fakeComplaintRepo) FindByID(ctx context.Context, id uint) (*Complaint, error) {
	cp, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	dup := *cp
	return &dup, nil
}

func (r *fakeComplaintRepo) FindByIDForUpdate(ctx context.Context, id uint) (*Complaint, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeComplaintRepo) Update(ctx context.Context, cp *Complaint) error {
	dup := *cp
	r.byID[cp.ID] = &dup
	return nil
}

func (r *fakeComplaintRepo) Delete(ctx context.Context, id uint) error {
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeComplaintRepo) CountByEmployeeAndStatus(ctx context.Context, employeeID uint, status Status) (int64, error) {
	return 0, nil
}

func (r *fakeComplaintRepo) CountByStatus(ctx context.Context, status Status) (int64, error) {
	return 0, nil
}

type fakeBlobStorage struct {
	stored  []string
	removed []string
	failing bool
}

func (b *fakeBlobStorage) Store(ctx context.Context, dir, filename string, rd io.Reader) (string, error) {
	if b.failing {
		return "", io.ErrUnexpectedEOF
	}
	path := dir + "/" + filename
	b.stored = append(b.stored, path)
	return path, nil
}

func (b *fakeBlobStorage) Delete(ctx context.Context, path string) error {
	b.removed = append(b.removed, path)
	return nil
}

func (b *fakeBlobStorage) URL(path string) string { return "/storage/" + path }

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (o *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return o }

func (o *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	o.events = append(o.events, event)
	return nil
}

func (o *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (o *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (o *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func employeeActor(employeeID uint) identity.Actor {
	return identity.Actor{UserID: 10, Role: identity.RoleEmployee, EmployeeID: &employeeID}
}

var hrActor = identity.Actor{UserID: 99, Role: identity.RoleRH}

func TestCreateComplaint(t *testing.T) {
	db, _ := newTestDB(t)
	repo := newFakeComplaintRepo()
	svc := NewService(db, repo, &fakeBlobStorage{}, &fakeOutbox{})

	resp, err := svc.Create(context.Background(), employeeActor(7), CreateComplaintRequest{
		Subject:     "Broken chair",
		Description: "The chair at desk 12 collapsed this morning.",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.EmployeeID)
	assert.Equal(t, string(StatusPending), resp.Status)
	assert.Nil(t, resp.AttachmentURL)
}

func TestCreateComplaintWithAttachment(t *testing.T) {
	db, _ := newTestDB(t)
	blobs := &fakeBlobStorage{}
	svc := NewService(db, newFakeComplaintRepo(), blobs, &fakeOutbox{})

	resp, err := svc.Create(context.Background(), employeeActor(7), CreateComplaintRequest{
		Subject:     "Broken chair",
		Description: "Photo attached.",
	}, &AttachmentUpload{Filename: "chair.jpg", Content: strings.NewReader("jpegdata")})

	require.NoError(t, err)
	require.NotNil(t, resp.AttachmentURL)
	assert.Equal(t, "/storage/complaint-attachments/chair.jpg", *resp.AttachmentURL)
	assert.Len(t, blobs.stored, 1)
}

func TestCreateComplaintAttachmentStoreFails(t *testing.T) {
	db, _ := newTestDB(t)
	repo := newFakeComplaintRepo()
	svc := NewService(db, repo, &fakeBlobStorage{failing: true}, &fakeOutbox{})

	_, err := svc.Create(context.Background(), employeeActor(7), CreateComplaintRequest{
		Subject:     "Broken chair",
		Description: "Photo attached.",
	}, &AttachmentUpload{Filename: "chair.jpg", Content: strings.NewReader("jpegdata")})

	assert.ErrorIs(t, err, complainterrors.ErrAttachmentStoreFailed)
	assert.Empty(t, repo.byID)
}

func TestComplaintStatusInReviewLeavesResolutionEmpty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusPending})
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, &fakeBlobStorage{}, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.UpdateStatus(context.Background(), hrActor, 1, UpdateComplaintStatusRequest{
		Status: "in_review",
	})

	require.NoError(t, err)
	assert.Equal(t, string(StatusInReview), resp.Status)
	assert.Nil(t, resp.HandledBy)
	assert.Nil(t, resp.ResolvedAt)
	assert.Nil(t, resp.ResolutionDetails)
	assert.Empty(t, outbox.events)
}

func TestComplaintStatusResolvedStampsHandler(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusInReview})
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, &fakeBlobStorage{}, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.UpdateStatus(context.Background(), hrActor, 1, UpdateComplaintStatusRequest{
		Status:            "resolved",
		ResolutionDetails: "Replaced the chair.",
	})

	require.NoError(t, err)
	assert.Equal(t, string(StatusResolved), resp.Status)
	if assert.NotNil(t, resp.HandledBy) {
		assert.Equal(t, hrActor.UserID, *resp.HandledBy)
	}
	assert.NotNil(t, resp.ResolvedAt)
	if assert.NotNil(t, resp.ResolutionDetails) {
		assert.Equal(t, "Replaced the chair.", *resp.ResolutionDetails)
	}
	if assert.Len(t, outbox.events, 1) {
		assert.Equal(t, "complaint_decided", outbox.events[0].EventType)
	}
}

func TestComplaintCanSkipReview(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusPending})
	svc := NewService(db, repo, &fakeBlobStorage{}, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.UpdateStatus(context.Background(), hrActor, 1, UpdateComplaintStatusRequest{
		Status:            "resolved",
		ResolutionDetails: "Duplicate of an earlier report.",
	})

	require.NoError(t, err)
	assert.Equal(t, string(StatusResolved), resp.Status)
}

func TestComplaintTerminalRequiresResolutionDetails(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusInReview})
	svc := NewService(db, repo, &fakeBlobStorage{}, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.UpdateStatus(context.Background(), hrActor, 1, UpdateComplaintStatusRequest{
		Status: "rejected",
	})
	assert.ErrorIs(t, err, complainterrors.ErrResolutionDetailsRequired)
}

func TestComplaintResolvedIsFinal(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusResolved})
	svc := NewService(db, repo, &fakeBlobStorage{}, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.UpdateStatus(context.Background(), hrActor, 1, UpdateComplaintStatusRequest{
		Status:            "rejected",
		ResolutionDetails: "Reopening.",
	})
	assert.ErrorIs(t, err, complainterrors.ErrInvalidTransition)
}

func TestComplaintStatusByEmployeeDenied(t *testing.T) {
	db, _ := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusPending})
	svc := NewService(db, repo, &fakeBlobStorage{}, &fakeOutbox{})

	_, err := svc.UpdateStatus(context.Background(), employeeActor(7), 1, UpdateComplaintStatusRequest{
		Status: "in_review",
	})
	assert.ErrorIs(t, err, complainterrors.ErrDecideForbidden)
}

func TestUpdateComplaintReplacesAttachment(t *testing.T) {
	db, mock := newTestDB(t)
	old := "complaint-attachments/old.pdf"
	repo := newFakeComplaintRepo(&Complaint{
		ID:             1,
		EmployeeID:     7,
		Status:         StatusPending,
		AttachmentPath: &old,
	})
	blobs := &fakeBlobStorage{}
	svc := NewService(db, repo, blobs, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	subject := "Broken chair, desk 12"
	_, err := svc.Update(context.Background(), employeeActor(7), 1, UpdateComplaintRequest{
		Subject: &subject,
	}, &AttachmentUpload{Filename: "new.pdf", Content: strings.NewReader("pdfdata")})

	require.NoError(t, err)
	// The replaced file is removed only after the row update commits.
	assert.Equal(t, []string{old}, blobs.removed)
	assert.Equal(t, subject, repo.byID[1].Subject)
}

func TestUpdateDecidedComplaint(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusInReview})
	svc := NewService(db, repo, &fakeBlobStorage{}, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	subject := "updated"
	_, err := svc.Update(context.Background(), employeeActor(7), 1, UpdateComplaintRequest{
		Subject: &subject,
	}, nil)
	assert.ErrorIs(t, err, complainterrors.ErrNotPendingUpdate)
}

func TestDeleteComplaintRemovesAttachment(t *testing.T) {
	db, mock := newTestDB(t)
	path := "complaint-attachments/evidence.png"
	repo := newFakeComplaintRepo(&Complaint{
		ID:             1,
		EmployeeID:     7,
		Status:         StatusPending,
		AttachmentPath: &path,
	})
	blobs := &fakeBlobStorage{}
	svc := NewService(db, repo, blobs, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), employeeActor(7), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, repo.deleted)
	assert.Equal(t, []string{path}, blobs.removed)
}

func TestDeleteComplaintByStranger(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newFakeComplaintRepo(&Complaint{ID: 1, EmployeeID: 7, Status: StatusPending})
	svc := NewService(db, repo, &fakeBlobStorage{}, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), employeeActor(8), 1)
	assert.ErrorIs(t, err, complainterrors.ErrDeleteForbidden)
	assert.Empty(t, repo.deleted)
}
