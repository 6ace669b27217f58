package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillip-england/shipdesk/internal/model"
)

func newBackend(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.WithToken("abc.def.ghi").Companies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc.def.ghi", gotAuth)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var present bool
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"token":"t","role":"CUSTOMER"}`))
	})

	_, err := c.Login(context.Background(), "ana", "secret1")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestWithTokenDoesNotMutateParent(t *testing.T) {
	parent := New("http://example.invalid")
	child := parent.WithToken("x")
	assert.Empty(t, parent.token)
	assert.Equal(t, "x", child.token)
}

func TestDoClassifiesStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(t *testing.T, err error)
		message string
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"message":"token expired"}`,
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) },
			message: "Session expired. Please login again.",
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrForbidden) },
			message: "You do not have permission to perform this action.",
		},
		{
			name:   "backend message",
			status: http.StatusBadRequest,
			body:   `{"status":400,"message":"Weight must be positive","validationErrors":{"weight":"must be positive"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusBadRequest, apiErr.Status)
				assert.Equal(t, "must be positive", apiErr.ValidationErrors["weight"])
			},
			message: "Weight must be positive",
		},
		{
			name:   "error field fallback",
			status: http.StatusConflict,
			body:   `{"error":"Conflict"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				assert.True(t, errors.As(err, &apiErr))
			},
			message: "Conflict",
		},
		{
			name:   "generic fallback",
			status: http.StatusInternalServerError,
			body:   `{"status":500}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				assert.True(t, errors.As(err, &apiErr))
			},
			message: "An error occurred",
		},
		{
			name:   "unreadable error body",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				var netErr *NetworkError
				assert.True(t, errors.As(err, &netErr))
			},
			message: "Network error. Please check your connection.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			err := c.Do(context.Background(), http.MethodGet, "/api/shipments", nil, nil)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.message, MessageOf(err))
		})
	}
}

func TestDoNoContentLeavesOutUntouched(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	out := &model.Company{Name: "untouched"}
	require.NoError(t, c.Do(context.Background(), http.MethodDelete, "/api/companies/1", nil, out))
	assert.Equal(t, "untouched", out.Name)
}

func TestDoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, WithTimeout(time.Second)).DeleteShipment(context.Background(), 3)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "Network error. Please check your connection.", MessageOf(err))
}

func TestDoMalformedSuccessBodyIsNetworkError(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	_, err := c.Shipments(context.Background())
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestStatusUpdateSendsPatch(t *testing.T) {
	var method, path string
	var body model.StatusUpdateRequest
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"id":9,"status":"IN_TRANSIT"}`))
	})

	s, err := c.UpdateShipmentStatus(context.Background(), 9, model.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/api/shipments/9/status", path)
	assert.Equal(t, model.StatusInTransit, body.Status)
	assert.Equal(t, model.StatusInTransit, s.Status)
}

func TestRevenueEncodesQuery(t *testing.T) {
	var query string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"totalRevenue":125.5,"deliveredShipmentsCount":4}`))
	})

	rev, err := c.Revenue(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "endDate=2024-01-31&startDate=2024-01-01", query)
	assert.Equal(t, int64(4), rev.DeliveredShipmentsCount)
}

func TestObserverSeesOutcome(t *testing.T) {
	var outcomes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithObserver(func(method, outcome string, _ time.Duration) {
		outcomes = append(outcomes, method+" "+outcome)
	}))
	_, _ = c.Offices(context.Background())
	assert.Equal(t, []string{"GET unauthorized"}, outcomes)
}
