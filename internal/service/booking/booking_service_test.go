package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/kafka"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ReserveSeat(ctx context.Context, tripID, userID int64, seat int, requested bool) (*domain.Booking, error) {
	args := m.Called(ctx, tripID, userID, seat, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ReleaseSeat(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, username, email string) (*domain.User, error) {
	args := m.Called(ctx, id, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type fakeProducer struct {
	published chan kafka.BookingEvent
}

func (f *fakeProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	f.published <- value.(kafka.BookingEvent)
	return nil
}

func confirmedBooking(id, userID, tripID int64, seat int) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		UserID:     userID,
		TripID:     tripID,
		SeatNumber: &seat,
		Reference:  "ref-123",
		Status:     domain.BookingStatusConfirmed,
		BookedAt:   time.Now(),
	}
}

func TestBookingService_Create_AutoAssign(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	want := confirmedBooking(1, 7, 4, 1)
	repo.On("ReserveSeat", ctx, int64(4), int64(7), 0, false).Return(want, nil).Once()

	got, err := service.Create(ctx, CreateBookingInput{UserID: 7, TripID: 4})

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestBookingService_Create_RequestedSeat(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	want := confirmedBooking(1, 7, 4, 12)
	repo.On("ReserveSeat", ctx, int64(4), int64(7), 12, true).Return(want, nil).Once()

	got, err := service.Create(ctx, CreateBookingInput{UserID: 7, TripID: 4, SeatNumber: "12"})

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestBookingService_Create_InvalidSeatInput(t *testing.T) {
	service := NewBookingService(&MockBookingRepository{}, &MockUserRepository{}, nil, "")

	_, err := service.Create(context.Background(), CreateBookingInput{UserID: 7, TripID: 4, SeatNumber: "front row"})

	assert.ErrorIs(t, err, domain.ErrInvalidSeat)
	var fieldErr *domain.FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "seat_number", fieldErr.Field)
}

func TestBookingService_Create_SeatTakenTagged(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	repo.On("ReserveSeat", ctx, int64(4), int64(7), 5, true).Return(nil, domain.ErrSeatTaken).Once()

	_, err := service.Create(ctx, CreateBookingInput{UserID: 7, TripID: 4, SeatNumber: "5"})

	assert.ErrorIs(t, err, domain.ErrSeatTaken)
	var fieldErr *domain.FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "seat_number", fieldErr.Field)
	repo.AssertExpectations(t)
}

func TestBookingService_Create_RetriesSeatConflict(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	want := confirmedBooking(1, 7, 4, 6)
	repo.On("ReserveSeat", ctx, int64(4), int64(7), 0, false).Return(nil, domain.ErrSeatConflict).Twice()
	repo.On("ReserveSeat", ctx, int64(4), int64(7), 0, false).Return(want, nil).Once()

	got, err := service.Create(ctx, CreateBookingInput{UserID: 7, TripID: 4})

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestBookingService_Create_ContentionAfterRetries(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	repo.On("ReserveSeat", ctx, int64(4), int64(7), 0, false).Return(nil, domain.ErrSeatConflict).Times(3)

	_, err := service.Create(ctx, CreateBookingInput{UserID: 7, TripID: 4})

	assert.ErrorIs(t, err, domain.ErrContention)
	repo.AssertExpectations(t)
}

func TestBookingService_Create_TripNotFound(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	repo.On("ReserveSeat", ctx, int64(99), int64(7), 0, false).Return(nil, domain.ErrTripNotFound).Once()

	_, err := service.Create(ctx, CreateBookingInput{UserID: 7, TripID: 99})

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
	repo.AssertExpectations(t)
}

func TestBookingService_Create_PublishesNotification(t *testing.T) {
	repo := &MockBookingRepository{}
	users := &MockUserRepository{}
	producer := &fakeProducer{published: make(chan kafka.BookingEvent, 1)}
	service := NewBookingService(repo, users, producer, "notifications")

	ctx := context.Background()
	want := confirmedBooking(1, 7, 4, 3)
	repo.On("ReserveSeat", ctx, int64(4), int64(7), 0, false).Return(want, nil).Once()
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Email: "rider@example.com"}, nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{UserID: 7, TripID: 4})
	assert.NoError(t, err)

	select {
	case event := <-producer.published:
		assert.Equal(t, kafka.EventBookingConfirmed, event.Type)
		assert.Equal(t, "rider@example.com", event.Email)
		assert.Equal(t, 3, event.SeatNumber)
	case <-time.After(time.Second):
		t.Fatal("expected a notification event")
	}
}

func TestBookingService_Cancel_ReleasesSeat(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	current := confirmedBooking(10, 7, 4, 5)
	cancelled := *current
	cancelled.SeatNumber = nil
	cancelled.Status = domain.BookingStatusCancelled

	repo.On("GetByID", ctx, int64(10)).Return(current, nil).Once()
	repo.On("ReleaseSeat", ctx, int64(10)).Return(nil).Once()
	repo.On("UpdateStatus", ctx, int64(10), domain.BookingStatusCancelled).Return(&cancelled, nil).Once()

	got, err := service.Cancel(ctx, 7, 10)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)
	assert.True(t, got.Released())
	repo.AssertExpectations(t)
}

func TestBookingService_Cancel_AlreadyCancelled(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	current := confirmedBooking(10, 7, 4, 5)
	current.SeatNumber = nil
	current.Status = domain.BookingStatusCancelled

	repo.On("GetByID", ctx, int64(10)).Return(current, nil).Once()

	got, err := service.Cancel(ctx, 7, 10)

	assert.NoError(t, err)
	assert.Equal(t, current, got)
	repo.AssertNotCalled(t, "ReleaseSeat", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Cancel_ReleaseFailureDoesNotBlock(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	current := confirmedBooking(10, 7, 4, 5)
	cancelled := *current
	cancelled.Status = domain.BookingStatusCancelled

	repo.On("GetByID", ctx, int64(10)).Return(current, nil).Once()
	repo.On("ReleaseSeat", ctx, int64(10)).Return(errors.New("db down")).Once()
	repo.On("UpdateStatus", ctx, int64(10), domain.BookingStatusCancelled).Return(&cancelled, nil).Once()

	got, err := service.Cancel(ctx, 7, 10)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)
	repo.AssertExpectations(t)
}

func TestBookingService_Cancel_NotOwner(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	repo.On("GetByID", ctx, int64(10)).Return(confirmedBooking(10, 99, 4, 5), nil).Once()

	_, err := service.Cancel(ctx, 7, 10)

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	repo.AssertNotCalled(t, "ReleaseSeat", mock.Anything, mock.Anything)
}

func TestBookingService_Delete_ReleasesSeatFirst(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewBookingService(repo, &MockUserRepository{}, nil, "")

	ctx := context.Background()
	repo.On("GetByID", ctx, int64(10)).Return(confirmedBooking(10, 7, 4, 5), nil).Once()
	repo.On("ReleaseSeat", ctx, int64(10)).Return(nil).Once()
	repo.On("Delete", ctx, int64(10)).Return(nil).Once()

	err := service.Delete(ctx, 7, 10)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
