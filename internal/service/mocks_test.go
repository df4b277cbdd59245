package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kottage-backend/internal/domain"
)

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) List(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) GetRoomType(ctx context.Context, propertyID, roomTypeID string) (*domain.RoomType, error) {
	args := m.Called(ctx, propertyID, roomTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}
func (m *MockPropertyRepo) AdjustInventory(ctx context.Context, propertyID, roomTypeID string, delta int32) (int32, error) {
	args := m.Called(ctx, propertyID, roomTypeID, delta)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockPropertyRepo) SetInventory(ctx context.Context, propertyID, roomTypeID string, quantity int32) error {
	args := m.Called(ctx, propertyID, roomTypeID, quantity)
	return args.Error(0)
}

// MockBlockedDateRepo
type MockBlockedDateRepo struct {
	mock.Mock
}

func (m *MockBlockedDateRepo) ListByProperty(ctx context.Context, propertyID, roomTypeID string) ([]domain.BlockedDate, error) {
	args := m.Called(ctx, propertyID, roomTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}
func (m *MockBlockedDateRepo) ListInRange(ctx context.Context, propertyID, roomTypeID, start, end string) (map[string]bool, error) {
	args := m.Called(ctx, propertyID, roomTypeID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}
func (m *MockBlockedDateRepo) Block(ctx context.Context, blocks []domain.BlockedDate) error {
	args := m.Called(ctx, blocks)
	return args.Error(0)
}
func (m *MockBlockedDateRepo) Acquire(ctx context.Context, blocks []domain.BlockedDate) error {
	args := m.Called(ctx, blocks)
	return args.Error(0)
}
func (m *MockBlockedDateRepo) Unblock(ctx context.Context, propertyID, roomTypeID string, dates []string) error {
	args := m.Called(ctx, propertyID, roomTypeID, dates)
	return args.Error(0)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationConfirmation(ctx context.Context, email, guestName string, res *domain.Reservation) error {
	args := m.Called(ctx, email, guestName, res)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationCancellation(ctx context.Context, email, guestName string, res *domain.Reservation) error {
	args := m.Called(ctx, email, guestName, res)
	return args.Error(0)
}
func (m *MockEmailService) SendApprovalRequest(ctx context.Context, ownerEmail, guestName string, res *domain.Reservation) error {
	args := m.Called(ctx, ownerEmail, guestName, res)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationDeclined(ctx context.Context, email, guestName, reason string, res *domain.Reservation) error {
	args := m.Called(ctx, email, guestName, reason, res)
	return args.Error(0)
}
