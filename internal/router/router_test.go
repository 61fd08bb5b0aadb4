package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/jiamizhongshifu/xiaozhou/app/middleware"
	generativeAI "github.com/jiamizhongshifu/xiaozhou/internal/api/generative_ai"
	"github.com/jiamizhongshifu/xiaozhou/internal/api/planner"
	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := planner.NewServiceImpl(generativeAI.OfflineGenerator{}, nil, nil, planner.Options{Source: "offline"}, logger)
	return SetupRouter(&Config{PlannerHandler: planner.NewHandlerImpl(service, logger)})
}

func TestPing(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestGenerateRouteSetsSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries/generate",
		strings.NewReader(`{"destination":"悉尼","duration":2}`))
	rec := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get(appMiddleware.SessionHeader))
	assert.NoError(t, err)

	var resp types.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Days, 2)
}

func TestRoutesAreMounted(t *testing.T) {
	router := newTestRouter()
	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/v1/itineraries", "", http.StatusOK},
		{http.MethodGet, "/api/v1/itineraries/" + uuid.NewString(), "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/itineraries/parse", `{"itinerary":"### 第1天\n上午: 参观故宫"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/itineraries/validate:batch", `{"items":[{"itinerary":"","params":{"destination":"北京"}}]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/chat", `{"message":"hello"}`, http.StatusOK},
		{http.MethodDelete, "/api/v1/itineraries", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
