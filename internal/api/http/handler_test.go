package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kottage-backend/internal/domain"
	"kottage-backend/internal/pricing"
	"kottage-backend/internal/security"
	"kottage-backend/internal/service"
)

// MockReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) ConfirmReservation(ctx context.Context, req service.ConfirmReservationRequest) (*domain.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) ApproveReservation(ctx context.Context, ownerID, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, ownerID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) DeclineReservation(ctx context.Context, ownerID, reservationID, reason string) (*domain.Reservation, error) {
	args := m.Called(ctx, ownerID, reservationID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CancelReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, requesterID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CheckInReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, requesterID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CheckOutReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, requesterID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CompleteReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, requesterID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) MarkNoShow(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) GetReservation(ctx context.Context, requesterID, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, requesterID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) ListPropertyReservations(ctx context.Context, propertyID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationService) ListUserReservations(ctx context.Context, userID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationService) QuoteStay(ctx context.Context, propertyID, roomTypeID, checkIn, checkOut string) (*pricing.Quote, int32, error) {
	args := m.Called(ctx, propertyID, roomTypeID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*pricing.Quote), args.Get(1).(int32), args.Error(2)
}

// MockAvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) GetBlockedDates(ctx context.Context, propertyID, roomTypeID string) ([]domain.BlockedDate, error) {
	args := m.Called(ctx, propertyID, roomTypeID)
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}
func (m *MockAvailabilityService) BlockDates(ctx context.Context, actorID, propertyID, roomTypeID string, dates []string, reason domain.BlockReason) error {
	args := m.Called(ctx, actorID, propertyID, roomTypeID, dates, reason)
	return args.Error(0)
}
func (m *MockAvailabilityService) UnblockDates(ctx context.Context, actorID, propertyID, roomTypeID string, dates []string) error {
	args := m.Called(ctx, actorID, propertyID, roomTypeID, dates)
	return args.Error(0)
}
func (m *MockAvailabilityService) MaxCheckoutDate(ctx context.Context, propertyID, roomTypeID, checkIn string) (string, bool, error) {
	args := m.Called(ctx, propertyID, roomTypeID, checkIn)
	return args.String(0), args.Bool(1), args.Error(2)
}

const testSecret = "0123456789abcdef0123456789abcdef"

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := security.NewTokenManager(testSecret).GenerateAccessToken(userID, "", nil)
	require.NoError(t, err)
	return "Bearer " + token
}

func newTestRouter(reservations service.ReservationService, availability service.AvailabilityService) http.Handler {
	return NewRouter(reservations, availability, security.NewTokenManager(testSecret))
}

func TestRouter_Auth(t *testing.T) {
	reservations := new(MockReservationService)
	router := newTestRouter(reservations, new(MockAvailabilityService))

	t.Run("missing token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/reservations/res-1", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/reservations/res-1", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("claims reach the handler", func(t *testing.T) {
		reservations.On("GetReservation", mock.Anything, "guest-1", "res-1").
			Return(&domain.Reservation{ID: "res-1"}, nil)

		req := httptest.NewRequest("GET", "/api/v1/reservations/res-1", nil)
		req.Header.Set("Authorization", bearerFor(t, "guest-1"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		reservations.AssertCalled(t, "GetReservation", mock.Anything, "guest-1", "res-1")
	})
}

func TestHandleCreate_StatusMapping(t *testing.T) {
	body := func() *bytes.Buffer {
		b, _ := json.Marshal(createReservationRequest{
			RoomTypeID: "r1",
			CheckIn:    "2026-07-01",
			CheckOut:   "2026-07-04",
			Guests:     []domain.Guest{{Name: "Guest"}},
		})
		return bytes.NewBuffer(b)
	}
	post := func(router http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/properties/p1/reservations", body())
		req.Header.Set("Authorization", bearerFor(t, "guest-1"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("created", func(t *testing.T) {
		reservations := new(MockReservationService)
		reservations.On("ConfirmReservation", mock.Anything, mock.Anything).
			Return(&domain.Reservation{ID: "res-1", Status: domain.ReservationStatusConfirmed}, nil)

		rr := post(newTestRouter(reservations, new(MockAvailabilityService)))
		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp reservationResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "res-1", resp.Reservation.ID)
		assert.Empty(t, resp.Warning)
	})

	t.Run("availability conflict is 409", func(t *testing.T) {
		reservations := new(MockReservationService)
		reservations.On("ConfirmReservation", mock.Anything, mock.Anything).
			Return(nil, domain.ErrRangeBlocked)

		rr := post(newTestRouter(reservations, new(MockAvailabilityService)))
		assert.Equal(t, http.StatusConflict, rr.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "availability_conflict", resp.Code)
	})

	t.Run("validation failure is 400", func(t *testing.T) {
		reservations := new(MockReservationService)
		reservations.On("ConfirmReservation", mock.Anything, mock.Anything).
			Return(nil, domain.ErrInvalidRequest)

		rr := post(newTestRouter(reservations, new(MockAvailabilityService)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store failure is 502", func(t *testing.T) {
		reservations := new(MockReservationService)
		reservations.On("ConfirmReservation", mock.Anything, mock.Anything).
			Return(nil, domain.ErrPersistence)

		rr := post(newTestRouter(reservations, new(MockAvailabilityService)))
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("partial commit still creates, with a warning", func(t *testing.T) {
		res := &domain.Reservation{ID: "res-1", Status: domain.ReservationStatusConfirmed}
		reservations := new(MockReservationService)
		reservations.On("ConfirmReservation", mock.Anything, mock.Anything).
			Return(res, &domain.PartialCommitError{
				ReservationID: "res-1",
				FailedWrites:  []string{"inventory_decrement"},
				Err:           errors.New("store down"),
			})

		rr := post(newTestRouter(reservations, new(MockAvailabilityService)))
		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp reservationResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "res-1", resp.Reservation.ID)
		assert.Contains(t, resp.Warning, "inventory_decrement")
	})
}

func TestPublicEndpoints(t *testing.T) {
	t.Run("blocked dates need no token", func(t *testing.T) {
		availability := new(MockAvailabilityService)
		availability.On("GetBlockedDates", mock.Anything, "p1", "").
			Return([]domain.BlockedDate{{PropertyID: "p1", RoomTypeID: "r1", Date: "2026-07-01"}}, nil)

		rr := httptest.NewRecorder()
		router := newTestRouter(new(MockReservationService), availability)
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/properties/p1/blocked-dates", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("max checkout", func(t *testing.T) {
		availability := new(MockAvailabilityService)
		availability.On("MaxCheckoutDate", mock.Anything, "p1", "r1", "2026-07-05").
			Return("2026-07-09", true, nil)

		rr := httptest.NewRecorder()
		router := newTestRouter(new(MockReservationService), availability)
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/properties/p1/rooms/r1/max-checkout?check_in=2026-07-05", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "2026-07-09", resp["max_checkout_date"])
		assert.Equal(t, true, resp["stay_possible"])
	})

	t.Run("quote", func(t *testing.T) {
		reservations := new(MockReservationService)
		reservations.On("QuoteStay", mock.Anything, "p1", "r1", "2026-07-01", "2026-07-04").
			Return(&pricing.Quote{OriginalCents: 20000, FinalCents: 16000, SavingsCents: 4000, PromotionApplied: true}, int32(3), nil)

		rr := httptest.NewRecorder()
		router := newTestRouter(reservations, new(MockAvailabilityService))
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/properties/p1/rooms/r1/quote?check_in=2026-07-01&check_out=2026-07-04", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp quoteResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int32(16000), resp.NightlyRateCents)
		assert.Equal(t, int32(3), resp.Nights)
	})
}
