package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repos "github.com/yungbote/neurobridge-profiling/internal/data/repos/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/data/repos/testutil"
	httpH "github.com/yungbote/neurobridge-profiling/internal/http/handlers"
	httpMW "github.com/yungbote/neurobridge-profiling/internal/http/middleware"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/observability"
	"github.com/yungbote/neurobridge-profiling/internal/services"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (a *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func newTestRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cat, err := catalog.Default()
	require.NoError(t, err)
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	auth := services.NewAuthService(log, "router-test-secret", time.Hour)
	svc := services.NewProfilingService(db, log, profiling.NewEngine(cat, log), repos.NewSessionRepo(db, log),
		services.NewProfilingNotifier(log, nil), metrics)

	r := NewRouter(RouterConfig{
		Log:              log,
		Metrics:          metrics,
		AuthMiddleware:   httpMW.NewAuthMiddleware(log, auth),
		ProfilingHandler: httpH.NewProfilingHandler(svc),
		HealthHandler:    httpH.NewHealthHandler(db, nil),
	})
	return r, auth
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func TestProfilingAPI_EndToEnd(t *testing.T) {
	r, auth := newTestRouter(t)
	token, err := auth.IssueAccessToken(uuid.New())
	require.NoError(t, err)
	api := &apiClient{t: t, router: r, token: token}

	rec := api.do(http.MethodGet, "/api/profiling/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	qs := decode[struct {
		Questions []catalog.Question `json:"questions"`
	}](t, rec)
	assert.Len(t, qs.Questions, 22)

	rec = api.do(http.MethodPost, "/api/profiling/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Session struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"session"`
	}](t, rec)
	assert.Equal(t, "created", created.Session.Status)
	base := "/api/profiling/sessions/" + created.Session.ID

	rec = api.do(http.MethodPost, base+"/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "insufficient_responses", decode[errorBody](t, rec).Error.Code)

	rec = api.do(http.MethodPost, base+"/responses", map[string]string{"question_id": "iv_1", "value": "zz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_option", decode[errorBody](t, rec).Error.Code)

	answers := [][2]string{
		{"iv_1", "a"}, {"iv_2", "a"}, {"iv_3", "d"}, {"iv_4", "a"},
		{"ws_1", "b"}, {"ws_2", "b"}, {"ws_3", "b"}, {"ws_4", "b"},
		{"ap_1", "a"}, {"ap_2", "a"}, {"ap_4", "a"}, {"te_1", "d"},
	}
	for _, a := range answers {
		rec = api.do(http.MethodPost, base+"/responses", map[string]string{"question_id": a[0], "value": a[1]})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = api.do(http.MethodGet, base+"/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, decode[struct {
		Answered int `json:"answered"`
	}](t, rec).Answered)

	rec = api.do(http.MethodPost, base+"/difficulty", map[string]string{"difficulty": "mythic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodPost, base+"/difficulty", map[string]string{"difficulty": "beginner"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decode[struct {
		TechScore int `json:"tech_score"`
	}](t, rec).TechScore)

	rec = api.do(http.MethodGet, base+"/blueprint", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, base+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[struct {
		PrimaryTrack struct {
			Key string `json:"key"`
		} `json:"primary_track"`
		Recommendations []struct {
			Rank int `json:"rank"`
		} `json:"recommendations"`
	}](t, rec)
	assert.Equal(t, "web_development", res.PrimaryTrack.Key)
	assert.Len(t, res.Recommendations, 5)

	rec = api.do(http.MethodPost, base+"/complete", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, base+"/blueprint", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bp := decode[struct {
		ValueStatement string   `json:"value_statement"`
		NextSteps      []string `json:"next_steps"`
	}](t, rec)
	assert.NotEmpty(t, bp.ValueStatement)
	assert.Len(t, bp.NextSteps, 5)

	rec = api.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `profiling_sessions_completed_total{confidence=`)
}

func TestProfilingAPI_AuthAndOwnership(t *testing.T) {
	r, auth := newTestRouter(t)

	anon := &apiClient{t: t, router: r}
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodGet, "/api/profiling/questions", nil).Code)
	assert.Equal(t, http.StatusOK, anon.do(http.MethodGet, "/healthcheck", nil).Code)
	assert.Equal(t, http.StatusOK, anon.do(http.MethodGet, "/readyz", nil).Code)

	ownerToken, err := auth.IssueAccessToken(uuid.New())
	require.NoError(t, err)
	otherToken, err := auth.IssueAccessToken(uuid.New())
	require.NoError(t, err)
	owner := &apiClient{t: t, router: r, token: ownerToken}
	other := &apiClient{t: t, router: r, token: otherToken}

	rec := owner.do(http.MethodPost, "/api/profiling/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}](t, rec).Session.ID

	assert.Equal(t, http.StatusOK, owner.do(http.MethodGet, "/api/profiling/sessions/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, other.do(http.MethodGet, "/api/profiling/sessions/"+id, nil).Code)
	assert.Equal(t, http.StatusBadRequest, owner.do(http.MethodGet, "/api/profiling/sessions/not-a-uuid", nil).Code)

	rec = owner.do(http.MethodGet, "/api/profiling/questions/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_question", decode[errorBody](t, rec).Error.Code)

	rec = owner.do(http.MethodGet, fmt.Sprintf("/api/profiling/modules/%s/questions", catalog.ModuleTechnicalExposure), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[struct {
		Questions []catalog.Question `json:"questions"`
	}](t, rec).Questions, 6)
}
