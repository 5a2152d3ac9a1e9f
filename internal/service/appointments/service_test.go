package appointments

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/internal/infra/messaging/notifications"
	appointmentRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/appointment"
	"github.com/m04kA/visa-booking-service/internal/infra/storage/receipts"
	"github.com/m04kA/visa-booking-service/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Appointment, error) {
	args := m.Called(ctx, shortID)
	a, _ := args.Get(0).(*domain.Appointment)
	return a, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Appointment)
	return list, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

type fakeReceipts struct {
	objects map[string]string
}

func (f *fakeReceipts) Open(ctx context.Context, key string) (*receipts.Object, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, receipts.ErrReceiptNotFound
	}
	return &receipts.Object{
		Body:        io.NopCloser(strings.NewReader(body)),
		Size:        int64(len(body)),
		ContentType: "application/pdf",
	}, nil
}

type recordingNotifier struct {
	events []notifications.Event
	err    error
}

func (n *recordingNotifier) Publish(ctx context.Context, event notifications.Event) error {
	n.events = append(n.events, event)
	return n.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, time.December, 20, 15, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo, notifier *recordingNotifier) *Service {
	store := &fakeReceipts{objects: map[string]string{"receipts/a.pdf": "%PDF"}}
	return NewService(repo, store, notifier, time.UTC, nopLogger{}).WithClock(fixedClock{now: testNow})
}

func sampleAppointment(status domain.AppointmentStatus) *domain.Appointment {
	id := uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	return &domain.Appointment{
		ID:                  id,
		ShortID:             domain.ShortIDOf(id),
		FirstName:           "Ana",
		LastName:            "Perez",
		Email:               "ana@example.com",
		PhoneNumber:         "809-555-1234",
		Date:                domain.NewDate(2025, time.December, 24),
		Hour:                15,
		AppointmentTypeID:   1,
		AppointmentTypeName: "Tourist visa",
		ReceiptKey:          "receipts/a.pdf",
		Status:              status,
	}
}

func TestService_GetByShortID(t *testing.T) {
	ctx := context.Background()

	t.Run("formats phone for display", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusPending)
		repo.On("GetByShortID", ctx, a.ShortID).Return(a, nil)

		resp, err := newTestService(repo, &recordingNotifier{}).GetByShortID(ctx, a.ShortID)
		require.NoError(t, err)
		assert.Equal(t, "+1 (809) 555-1234", resp.PhoneNumber)
		assert.Equal(t, 15, resp.AppointmentHour)
		assert.Equal(t, "2025-12-24", resp.AppointmentDate)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := newTestService(&mockRepo{}, &recordingNotifier{}).GetByShortID(ctx, "abc")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByShortID", ctx, "deadbeef").Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := newTestService(repo, &recordingNotifier{}).GetByShortID(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_OpenReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("streams stored file", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusPending)
		repo.On("GetByShortID", ctx, a.ShortID).Return(a, nil)

		obj, err := newTestService(repo, &recordingNotifier{}).OpenReceipt(ctx, a.ShortID)
		require.NoError(t, err)
		defer obj.Body.Close()

		body, err := io.ReadAll(obj.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(body))
	})

	t.Run("missing object", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusPending)
		a.ReceiptKey = "receipts/gone.pdf"
		repo.On("GetByShortID", ctx, a.ShortID).Return(a, nil)

		_, err := newTestService(repo, &recordingNotifier{}).OpenReceipt(ctx, a.ShortID)
		assert.ErrorIs(t, err, ErrReceiptNotFound)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("full record", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusApproved)
		repo.On("GetByID", ctx, a.ID).Return(a, nil)

		resp, err := newTestService(repo, &recordingNotifier{}).GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID.String(), resp.ID)
		assert.Equal(t, "809-555-1234", resp.PhoneNumber)
		assert.True(t, resp.HasReceipt)
		assert.Equal(t, string(domain.StatusApproved), resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockRepo{}
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := newTestService(repo, &recordingNotifier{}).GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_OpenReceiptByID(t *testing.T) {
	ctx := context.Background()

	t.Run("streams stored file", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusDone)
		repo.On("GetByID", ctx, a.ID).Return(a, nil)

		obj, err := newTestService(repo, &recordingNotifier{}).OpenReceiptByID(ctx, a.ID)
		require.NoError(t, err)
		defer obj.Body.Close()

		body, err := io.ReadAll(obj.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(body))
	})

	t.Run("no receipt uploaded", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusPending)
		a.ReceiptKey = ""
		repo.On("GetByID", ctx, a.ID).Return(a, nil)

		_, err := newTestService(repo, &recordingNotifier{}).OpenReceiptByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrReceiptNotFound)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		repo := &mockRepo{}
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := newTestService(repo, &recordingNotifier{}).OpenReceiptByID(ctx, id)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()
	link := " https://meet.example.com/x "

	repo := &mockRepo{}
	a := sampleAppointment(domain.StatusRejected)
	reason := "blurry receipt"
	a.RejectionReason = &reason
	repo.On("GetByID", ctx, a.ID).Return(a, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(u *domain.Appointment) bool {
		return u.Status == domain.StatusApproved && u.RejectionReason == nil
	})).Return(nil)

	notifier := &recordingNotifier{}
	resp, err := newTestService(repo, notifier).Approve(ctx, a.ID, &models.ApproveRequest{MeetingLink: &link})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.MeetingLink)
	assert.Equal(t, "https://meet.example.com/x", *resp.MeetingLink)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, notifications.EventApproved, notifier.events[0].Type)
	repo.AssertExpectations(t)
}

func TestService_ApproveSlotRetaken(t *testing.T) {
	ctx := context.Background()

	repo := &mockRepo{}
	a := sampleAppointment(domain.StatusRejected)
	repo.On("GetByID", ctx, a.ID).Return(a, nil)
	repo.On("Update", ctx, mock.Anything).Return(appointmentRepo.ErrSlotTaken)

	notifier := &recordingNotifier{}
	_, err := newTestService(repo, notifier).Approve(ctx, a.ID, &models.ApproveRequest{})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, notifier.events)
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("reason required", func(t *testing.T) {
		_, err := newTestService(&mockRepo{}, &recordingNotifier{}).Reject(ctx, uuid.New(), &models.RejectRequest{Reason: "  "})
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("done appointment is frozen", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusDone)
		repo.On("GetByID", ctx, a.ID).Return(a, nil)

		_, err := newTestService(repo, &recordingNotifier{}).Reject(ctx, a.ID, &models.RejectRequest{Reason: "late"})
		assert.ErrorIs(t, err, ErrAlreadyDone)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("notification failure does not fail the change", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusPending)
		repo.On("GetByID", ctx, a.ID).Return(a, nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		notifier := &recordingNotifier{err: errors.New("broker down")}
		resp, err := newTestService(repo, notifier).Reject(ctx, a.ID, &models.RejectRequest{Reason: "late"})
		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "late", *resp.RejectionReason)
	})
}

func TestService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("only approved", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusPending)
		repo.On("GetByID", ctx, a.ID).Return(a, nil)

		_, err := newTestService(repo, &recordingNotifier{}).Complete(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotApproved)
	})

	t.Run("approved becomes done", func(t *testing.T) {
		repo := &mockRepo{}
		a := sampleAppointment(domain.StatusApproved)
		repo.On("GetByID", ctx, a.ID).Return(a, nil)
		repo.On("Update", ctx, a).Return(nil)

		resp, err := newTestService(repo, &recordingNotifier{}).Complete(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "done", resp.Status)
		assert.Equal(t, testNow, a.UpdatedAt)
	})
}

func TestService_List_InvalidFilter(t *testing.T) {
	svc := newTestService(&mockRepo{}, &recordingNotifier{})

	_, err := svc.List(context.Background(), &models.ListRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{OrderBy: "phone"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Calendar(t *testing.T) {
	ctx := context.Background()
	month := domain.Month{Year: 2025, Month: time.December}

	early := sampleAppointment(domain.StatusApproved)
	early.Hour = 9
	late := sampleAppointment(domain.StatusPending)
	late.ID = uuid.New()
	other := sampleAppointment(domain.StatusPending)
	other.ID = uuid.New()
	other.Date = domain.NewDate(2025, time.December, 2)

	repo := &mockRepo{}
	repo.On("List", ctx, domain.AppointmentsFilter{Month: &month, OrderBy: domain.OrderByDate, OrderAsc: true}).
		Return([]*domain.Appointment{late, early, other}, nil)

	resp, err := newTestService(repo, &recordingNotifier{}).Calendar(ctx, "2025-12")
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2025-12-02", resp.Days[0].Date)
	assert.Equal(t, "2025-12-24", resp.Days[1].Date)
	require.Len(t, resp.Days[1].Appointments, 2)
	assert.Equal(t, 9, resp.Days[1].Appointments[0].AppointmentHour)
	assert.Equal(t, 15, resp.Days[1].Appointments[1].AppointmentHour)
}

func TestService_CalendarInvalidMonth(t *testing.T) {
	_, err := newTestService(&mockRepo{}, &recordingNotifier{}).Calendar(context.Background(), "2025-13")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
