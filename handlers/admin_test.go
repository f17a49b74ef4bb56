package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"localserve/models"

	"github.com/gin-gonic/gin"
)

// stubBookingService records the list query it receives; the remaining
// operations are unused by the admin listing handler.
type stubBookingService struct {
	listQuery *models.ListBookingsQuery
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResponse, error) {
	return nil, nil
}

func (s *stubBookingService) RetryPaymentOrder(ctx context.Context, bookingID string) (*models.GatewayOrder, error) {
	return nil, nil
}

func (s *stubBookingService) ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (*models.PaymentResult, error) {
	return nil, nil
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, bookingID string, req models.UpdateStatusRequest) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ManualAssign(ctx context.Context, bookingID, providerID string) (*models.Booking, *models.Provider, error) {
	return nil, nil, nil
}

func (s *stubBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ListBookings(ctx context.Context, q models.ListBookingsQuery) ([]models.Booking, int64, error) {
	s.listQuery = &q
	return []models.Booking{}, 0, nil
}

func listBookings(t *testing.T, query string) (*stubBookingService, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &stubBookingService{}
	h := NewAdminHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/bookings"+query, nil)
	h.ListBookings(c)
	return svc, w
}

func TestListBookings_Defaults(t *testing.T) {
	svc, w := listBookings(t, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.listQuery == nil {
		t.Fatal("service not called")
	}
	if svc.listQuery.Skip != 0 || svc.listQuery.Limit != 50 {
		t.Errorf("skip/limit = %d/%d, want 0/50", svc.listQuery.Skip, svc.listQuery.Limit)
	}
}

func TestListBookings_Pagination(t *testing.T) {
	svc, w := listBookings(t, "?skip=20&limit=10")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.listQuery.Skip != 20 || svc.listQuery.Limit != 10 {
		t.Errorf("skip/limit = %d/%d, want 20/10", svc.listQuery.Skip, svc.listQuery.Limit)
	}
}

func TestListBookings_RejectsBadPagination(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"non-numeric limit", "?limit=abc"},
		{"zero limit", "?limit=0"},
		{"negative limit", "?limit=-5"},
		{"non-numeric skip", "?skip=x"},
		{"negative skip", "?skip=-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, w := listBookings(t, tc.query)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if svc.listQuery != nil {
				t.Error("service called despite rejected query")
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] == "" {
				t.Error("error message missing from response")
			}
		})
	}
}
