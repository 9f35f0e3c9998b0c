package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"turfbook/config"
	"turfbook/infras/jwt"
	jwtMocks "turfbook/infras/jwt/mocks"
	"turfbook/infras/otel/mocks"
	"turfbook/permissions"
	cacheMocks "turfbook/shared/cache/mocks"
	"turfbook/shared/constant"
	"turfbook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func echoRequester(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(userID))
}

func newAuthRouter(t *testing.T) (http.Handler, *jwtMocks.MockJWT) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), cfg)

	router := chi.NewRouter()
	router.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Get("/turfs/{id}/slots", echoRequester)
		r.Post("/turfs", echoRequester)
		r.Post("/slots/{id}/reservations", echoRequester)
	})

	return router, jwtService
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		claims     *jwt.Claims
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "public route", method: http.MethodGet, path: "/v1/turfs/t1/slots", wantStatus: http.StatusOK},
		{name: "missing header", method: http.MethodPost, path: "/v1/slots/s1/reservations", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", method: http.MethodPost, path: "/v1/slots/s1/reservations", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{
			name: "expired token", method: http.MethodPost, path: "/v1/slots/s1/reservations", header: "Bearer token",
			err: jwt.ErrExpiredToken, wantStatus: http.StatusUnauthorized,
		},
		{
			name: "user reserves", method: http.MethodPost, path: "/v1/slots/s1/reservations", header: "Bearer token",
			claims: &jwt.Claims{UserID: "user-1", Role: constant.RoleUser}, wantStatus: http.StatusOK, wantBody: "user-1",
		},
		{
			name: "user cannot create turf", method: http.MethodPost, path: "/v1/turfs", header: "Bearer token",
			claims: &jwt.Claims{UserID: "user-1", Role: constant.RoleUser}, wantStatus: http.StatusForbidden,
		},
		{
			name: "admin creates turf", method: http.MethodPost, path: "/v1/turfs", header: "Bearer token",
			claims: &jwt.Claims{UserID: "owner-1", Role: constant.RoleAdmin}, wantStatus: http.StatusOK, wantBody: "owner-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := newAuthRouter(t)

			if tt.claims != nil || tt.err != nil {
				jwtService.EXPECT().ValidateToken("token").Return(tt.claims, tt.err)
			}

			request := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				request.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	router, _ := newAuthRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/v1/turfs", nil)
	request.Header.Set(constant.RequestHeaderAPIKey, "internal-key")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	request = httptest.NewRequest(http.MethodPost, "/v1/turfs", nil)
	request.Header.Set(constant.RequestHeaderAPIKey, "wrong")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func newLimitedRouter(t *testing.T) (http.Handler, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)

	router := chi.NewRouter()
	router.Use(app.Tracing, app.RateLimit())
	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	return router, redisCache
}

func TestRateLimit(t *testing.T) {
	t.Run("first request", func(t *testing.T) {
		router, redisCache := newLimitedRouter(t)

		redisCache.EXPECT().Increment(gomock.Any(), "limiter:192.0.2.1:unknown", 60).Return(int64(1), nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Equal(t, "2", recorder.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("forwarded client", func(t *testing.T) {
		router, redisCache := newLimitedRouter(t)

		redisCache.EXPECT().Increment(gomock.Any(), "limiter:203.0.113.7:probe", 60).Return(int64(2), nil)

		request := httptest.NewRequest(http.MethodGet, "/ping", nil)
		request.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")
		request.Header.Set(constant.RequestHeaderUserAgent, "probe")

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Equal(t, "0", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		router, redisCache := newLimitedRouter(t)

		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(3), nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	})

	t.Run("cache down", func(t *testing.T) {
		router, redisCache := newLimitedRouter(t)

		redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}
