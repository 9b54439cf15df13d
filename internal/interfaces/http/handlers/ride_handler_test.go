package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/interfaces/http/middleware"
	"ridetogether.backend/internal/usecases"
)

func newRideRouter(t *testing.T, repo *rideRepoStub, authed *entities.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewRideHandler(usecases.NewRideUsecase(repo))

	r := gin.New()
	r.GET("/rides", h.List)
	r.GET("/rides/filter", h.Filter)
	r.GET("/rides/:id", h.Get)
	if authed != nil {
		r.POST("/rides", asUser(authed), h.Create)
		r.GET("/rides/myrides", asUser(authed), h.ListMine)
		r.GET("/rides/admin/all", asUser(authed), h.AdminList)
		r.DELETE("/rides/admin/:id", asUser(authed), h.AdminDelete)
		r.PUT("/rides/:id/flag", asUser(authed), h.Flag)
		r.PUT("/rides/:id/moderate", asUser(authed), h.Moderate)
	} else {
		r.POST("/rides", h.Create)
	}
	return r
}

func validRidePayload() gin.H {
	return gin.H{
		"startingPoint":          "Avondale",
		"destination":            "NUST Campus",
		"isNustDest":             true,
		"stops":                  []string{"Westgate Mall"},
		"rideFrequency":          "weekly",
		"daysAvailable":          []string{"Monday", "Wednesday"},
		"tripType":               "one-way",
		"departureTime":          "07:30",
		"price":                  "3.50",
		"vehicleType":            "car",
		"vehicleDetails":         "White Honda Fit",
		"passengerCapacity":      "3",
		"userName":               "Tariro Moyo",
		"studentId":              "N02412345K",
		"phoneNumber":            "+263771234567",
		"preferredContactMethod": "whatsapp",
		"shareContactConsent":    true,
	}
}

func TestRideCreate(t *testing.T) {
	rider := &entities.User{ID: uuid.New(), Username: "tariro"}

	t.Run("posts a listing", func(t *testing.T) {
		var created *entities.Ride
		repo := &rideRepoStub{
			createFn: func(_ context.Context, ride *entities.Ride) error {
				ride.ID = uuid.New()
				created = ride
				return nil
			},
		}
		r := newRideRouter(t, repo, rider)

		w := postJSON(t, r, "/rides", validRidePayload())

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, created)
		require.Equal(t, rider.ID, created.Rider)
		require.Equal(t, entities.RideActive, created.Status)
		require.Equal(t, entities.ModerationApproved, created.ModerationStatus)
	})

	t.Run("surfaces validation failures", func(t *testing.T) {
		r := newRideRouter(t, &rideRepoStub{}, rider)

		payload := validRidePayload()
		payload["isNustDest"] = false

		w := postJSON(t, r, "/rides", payload)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		require.Equal(t, domainerrors.CodeValidation, body["code"])
		require.Equal(t, "either starting point or destination must be NUST", body["message"])
	})

	t.Run("requires authentication", func(t *testing.T) {
		r := newRideRouter(t, &rideRepoStub{}, nil)

		w := postJSON(t, r, "/rides", validRidePayload())

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRideList(t *testing.T) {
	repo := &rideRepoStub{
		listActiveFn: func(_ context.Context, limit int) ([]*entities.Ride, error) {
			require.Equal(t, usecases.PublicListingCap, limit)
			return []*entities.Ride{{ID: uuid.New()}, {ID: uuid.New()}}, nil
		},
	}
	r := newRideRouter(t, repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/rides", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(2), body["count"])
}

func TestRideFilter_ParsesQuery(t *testing.T) {
	var got *entities.RideFilter
	repo := &rideRepoStub{
		filterFn: func(_ context.Context, filter *entities.RideFilter) ([]*entities.Ride, error) {
			got = filter
			return []*entities.Ride{}, nil
		},
	}
	r := newRideRouter(t, repo, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/rides/filter?startingPoint=Avondale&isNustDest=true&vehicleType=car&daysAvailable=Monday,%20Wednesday,", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	require.Equal(t, "Avondale", got.StartingPoint)
	require.NotNil(t, got.IsNustDest)
	require.True(t, *got.IsNustDest)
	require.Equal(t, "car", got.VehicleType)
	require.Equal(t, []string{"Monday", "Wednesday"}, got.DaysAvailable)
}

func TestRideGet(t *testing.T) {
	ride := &entities.Ride{ID: uuid.New(), StartingPoint: "Avondale"}
	repo := &rideRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.Ride, error) {
			if id == ride.ID {
				return ride, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	r := newRideRouter(t, repo, nil)

	t.Run("returns a listing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rides/"+ride.ID.String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Avondale", decodeBody(t, w)["ride"].(map[string]any)["startingPoint"])
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rides/not-a-uuid", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reports missing listings", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rides/"+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRideUpdate_UsesLoadedRide(t *testing.T) {
	rider := &entities.User{ID: uuid.New()}
	ride := &entities.Ride{
		ID:     uuid.New(),
		Rider:  rider.ID,
		Price:  "3.50",
		Status: entities.RideActive,
	}
	repo := &rideRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.Ride, error) {
			clone := *ride
			return &clone, nil
		},
		updateFn: func(_ context.Context, updated *entities.Ride) error {
			*ride = *updated
			return nil
		},
	}
	h := NewRideHandler(usecases.NewRideUsecase(repo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/rides/:id", asUser(rider), func(c *gin.Context) {
		c.Set(middleware.RideKey, ride)
	}, h.Update)

	raw, err := json.Marshal(gin.H{"price": "4.00"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/rides/"+ride.ID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "4.00", ride.Price)
	require.Equal(t, "4.00", decodeBody(t, w)["ride"].(map[string]any)["price"])
}

func TestRideAdminList_Pagination(t *testing.T) {
	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	repo := &rideRepoStub{
		listAllFn: func(_ context.Context, limit, offset int) ([]*entities.Ride, int64, error) {
			require.Equal(t, 10, limit)
			require.Equal(t, 10, offset)
			return []*entities.Ride{{ID: uuid.New()}}, 25, nil
		},
	}
	r := newRideRouter(t, repo, admin)

	req := httptest.NewRequest(http.MethodGet, "/rides/admin/all?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	meta := decodeBody(t, w)["pagination"].(map[string]any)
	require.Equal(t, float64(2), meta["page"])
	require.Equal(t, float64(25), meta["totalCount"])
	require.Equal(t, float64(3), meta["totalPages"])
}

func TestRideFlag(t *testing.T) {
	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	ride := &entities.Ride{ID: uuid.New(), Status: entities.RideActive}
	repo := &rideRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.Ride, error) {
			clone := *ride
			return &clone, nil
		},
		updateFn: func(_ context.Context, updated *entities.Ride) error {
			*ride = *updated
			return nil
		},
	}
	r := newRideRouter(t, repo, admin)

	t.Run("records the flag", func(t *testing.T) {
		raw, err := json.Marshal(gin.H{"reason": "price gouging"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/rides/"+ride.ID.String()+"/flag", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, ride.IsFlagged)
		require.Equal(t, "price gouging", ride.FlagReason)
		require.Equal(t, admin.ID.String(), ride.LastModeratedBy.String)
		require.Equal(t, entities.RideActive, ride.Status)
	})

	t.Run("requires a reason", func(t *testing.T) {
		raw, err := json.Marshal(gin.H{})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/rides/"+ride.ID.String()+"/flag", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRideModerate_RejectCancelsListing(t *testing.T) {
	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	ride := &entities.Ride{ID: uuid.New(), Status: entities.RideActive, ModerationStatus: entities.ModerationPending, IsFlagged: true}
	repo := &rideRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.Ride, error) {
			clone := *ride
			return &clone, nil
		},
		updateFn: func(_ context.Context, updated *entities.Ride) error {
			*ride = *updated
			return nil
		},
	}
	r := newRideRouter(t, repo, admin)

	raw, err := json.Marshal(gin.H{"moderationStatus": "rejected", "adminNotes": "duplicate listing"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/rides/"+ride.ID.String()+"/moderate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, entities.ModerationRejected, ride.ModerationStatus)
	require.Equal(t, entities.RideCancelled, ride.Status)
	require.False(t, ride.IsFlagged)
	require.Equal(t, "duplicate listing", ride.AdminNotes)
}

func TestRideAdminDelete(t *testing.T) {
	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	var deleted uuid.UUID
	repo := &rideRepoStub{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	r := newRideRouter(t, repo, admin)

	target := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/rides/admin/"+target.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, target, deleted)
}
