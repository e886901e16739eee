package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/shareit-backend/internal/booking"
	"github.com/avdeyev/shareit-backend/internal/pkg/request"
	"github.com/avdeyev/shareit-backend/internal/sharer"
)

const (
	sharerID  = "0b07a6ba-67d5-4cd5-8ab9-50b0531c4d22"
	bookingID = "8f8c3f10-33cf-4c52-a2f8-3a2a0f1f1a10"
	itemID    = "4b3f9b52-bb88-49ac-92a7-7f0d9f6f2a31"
)

// stubService lets each test pin the behavior of a single method.
type stubService struct {
	create func(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error)
	decide func(ctx context.Context, bookingID, actorID string, approve bool) (*booking.Booking, error)
	get    func(ctx context.Context, bookingID, actorID string) (*booking.Booking, error)
	list   func(ctx context.Context, userID string, state booking.State, page request.PageParams) ([]*booking.Booking, error)
}

func (s *stubService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	return s.create(ctx, req)
}

func (s *stubService) Decide(ctx context.Context, id, actorID string, approve bool) (*booking.Booking, error) {
	return s.decide(ctx, id, actorID, approve)
}

func (s *stubService) GetByID(ctx context.Context, id, actorID string) (*booking.Booking, error) {
	return s.get(ctx, id, actorID)
}

func (s *stubService) ListByBooker(ctx context.Context, userID string, state booking.State, page request.PageParams) ([]*booking.Booking, error) {
	return s.list(ctx, userID, state, page)
}

func (s *stubService) ListByOwner(ctx context.Context, userID string, state booking.State, page request.PageParams) ([]*booking.Booking, error) {
	return s.list(ctx, userID, state, page)
}

func newRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/v1")
	RegisterRoutes(g, NewHandler(svc), sharer.Required())
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(sharer.Header, sharerID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking() *booking.Booking {
	start := time.Date(2023, 6, 2, 10, 0, 0, 0, time.UTC)
	return &booking.Booking{
		ID:         bookingID,
		ItemID:     itemID,
		ItemName:   "drill",
		BookerID:   sharerID,
		BookerName: "Alice",
		Start:      start,
		End:        start.Add(2 * time.Hour),
		Status:     booking.StatusWaiting,
		CreatedAt:  start.Add(-time.Hour),
	}
}

func TestHandlerCreate(t *testing.T) {
	t.Run("created booking is returned with item and booker tags", func(t *testing.T) {
		svc := &stubService{
			create: func(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
				assert.Equal(t, sharerID, req.UserID)
				assert.Equal(t, itemID, req.ItemID)
				return sampleBooking(), nil
			},
		}

		w := do(newRouter(svc), http.MethodPost, "/v1/bookings",
			`{"item_id":"`+itemID+`","start":"2023-06-02T10:00:00Z","end":"2023-06-02T12:00:00Z"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, bookingID, resp.ID)
		assert.Equal(t, "drill", resp.Item.Name)
		assert.Equal(t, "Alice", resp.Booker.Name)
		assert.Equal(t, "WAITING", resp.Status)
	})

	t.Run("domain errors map to their status", func(t *testing.T) {
		svc := &stubService{
			create: func(_ context.Context, _ booking.CreateRequest) (*booking.Booking, error) {
				return nil, booking.ErrSelfBooking
			},
		}

		w := do(newRouter(svc), http.MethodPost, "/v1/bookings",
			`{"item_id":"`+itemID+`","start":"2023-06-02T10:00:00Z","end":"2023-06-02T12:00:00Z"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &stubService{}
		w := do(newRouter(svc), http.MethodPost, "/v1/bookings", `{"item_id":"not-a-uuid"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing sharer header", func(t *testing.T) {
		svc := &stubService{}
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlerDecide(t *testing.T) {
	t.Run("approved flag is forwarded", func(t *testing.T) {
		var gotApprove bool
		svc := &stubService{
			decide: func(_ context.Context, id, actorID string, approve bool) (*booking.Booking, error) {
				assert.Equal(t, bookingID, id)
				assert.Equal(t, sharerID, actorID)
				gotApprove = approve
				b := sampleBooking()
				b.Status = booking.StatusApproved
				return b, nil
			},
		}

		w := do(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotApprove)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Status)
	})

	t.Run("approved must be boolean", func(t *testing.T) {
		svc := &stubService{}
		w := do(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=maybe", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("repeated decision", func(t *testing.T) {
		svc := &stubService{
			decide: func(_ context.Context, _, _ string, _ bool) (*booking.Booking, error) {
				return nil, booking.ErrSameStatus
			},
		}
		w := do(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=true", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-owner", func(t *testing.T) {
		svc := &stubService{
			decide: func(_ context.Context, _, _ string, _ bool) (*booking.Booking, error) {
				return nil, booking.ErrNotOwner
			},
		}
		w := do(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=true", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandlerGet(t *testing.T) {
	t.Run("invalid id short-circuits", func(t *testing.T) {
		called := false
		svc := &stubService{
			get: func(_ context.Context, _, _ string) (*booking.Booking, error) {
				called = true
				return nil, nil
			},
		}
		w := do(newRouter(svc), http.MethodGet, "/v1/bookings/42", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})

	t.Run("access denied", func(t *testing.T) {
		svc := &stubService{
			get: func(_ context.Context, _, _ string) (*booking.Booking, error) {
				return nil, booking.ErrAccessDenied
			},
		}
		w := do(newRouter(svc), http.MethodGet, "/v1/bookings/"+bookingID, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandlerListing(t *testing.T) {
	t.Run("state and paging are parsed and forwarded", func(t *testing.T) {
		svc := &stubService{
			list: func(_ context.Context, userID string, state booking.State, page request.PageParams) ([]*booking.Booking, error) {
				assert.Equal(t, sharerID, userID)
				assert.Equal(t, booking.StateCurrent, state)
				assert.Equal(t, request.PageParams{From: 5, Size: 20}, page)
				return []*booking.Booking{sampleBooking()}, nil
			},
		}

		w := do(newRouter(svc), http.MethodGet, "/v1/bookings?state=current&from=5&size=20", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp []BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, bookingID, resp[0].ID)
	})

	t.Run("state defaults to ALL and paging to 0/10", func(t *testing.T) {
		svc := &stubService{
			list: func(_ context.Context, _ string, state booking.State, page request.PageParams) ([]*booking.Booking, error) {
				assert.Equal(t, booking.StateAll, state)
				assert.Equal(t, request.PageParams{From: 0, Size: 10}, page)
				return nil, nil
			},
		}
		w := do(newRouter(svc), http.MethodGet, "/v1/bookings/owner", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown state is a 400", func(t *testing.T) {
		svc := &stubService{}
		w := do(newRouter(svc), http.MethodGet, "/v1/bookings?state=UNSUPPORTED", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
