package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mapty/workout-tracker/internal/domain"
	"mapty/workout-tracker/internal/repository/file"
	"mapty/workout-tracker/internal/service"
	"mapty/workout-tracker/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, locator service.Locator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slot, err := file.NewFsSlotRepository(afero.NewMemMapFs(), "/slots")
	require.NoError(t, err)
	app := service.NewApp(service.NewStore(slot, "workouts", 0), service.NewFactory(), service.NewViews(), 0)

	router := gin.New()
	router.Use(RequestLogger())
	SetupRoutes(router, app, locator)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestPing(t *testing.T) {
	rr := do(newRouter(t, nil), http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())
}

func TestLocateWithoutPosition(t *testing.T) {
	rr := do(newRouter(t, nil), http.MethodPost, "/api/v1/map/locate", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), service.NoticeNoPosition)
}

func TestLocateFallsBackToDefault(t *testing.T) {
	router := newRouter(t, view.FixedLocator{Coords: domain.Coordinates{Lat: 38.7, Lng: -9.1}})

	rr := do(router, http.MethodPost, "/api/v1/map/locate", "")
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[view.MapState](t, rr)
	assert.True(t, state.Loaded)
	assert.Equal(t, 38.7, state.Center.Lat)
	assert.Equal(t, 13, state.Zoom)
}

func TestClickBeforeMapLoads(t *testing.T) {
	rr := do(newRouter(t, nil), http.MethodPost, "/api/v1/map/click", `{"lat":1,"lng":2}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestWorkoutLifecycle(t *testing.T) {
	router := newRouter(t, nil)

	rr := do(router, http.MethodPost, "/api/v1/map/locate", `{"lat":39,"lng":-12}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, http.MethodPost, "/api/v1/workouts", `{"type":"running","distance":"5.2","duration":"24","cadence":"178"}`)
	require.Equal(t, http.StatusConflict, rr.Code)

	rr = do(router, http.MethodPost, "/api/v1/map/click", `{"lat":39.01,"lng":-12.02}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[view.FormState](t, rr).Visible)

	rr = do(router, http.MethodPut, "/api/v1/form/type", `{"type":"cycling"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "elevation", decode[view.FormState](t, rr).ExtraField)

	rr = do(router, http.MethodPost, "/api/v1/workouts", `{"type":"cycling","distance":"-27","duration":"95","elevation":"523"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), service.NoticeInvalidInput)

	rr = do(router, http.MethodPost, "/api/v1/workouts", `{"type":"cycling","distance":27,"duration":"95","elevation":523}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[WorkoutResponse](t, rr)
	require.NotNil(t, created.Speed)
	assert.InDelta(t, 17.05, *created.Speed, 0.01)
	assert.Nil(t, created.Pace)
	assert.Equal(t, domain.Coordinates{Lat: 39.01, Lng: -12.02}, created.Coords)

	rr = do(router, http.MethodGet, "/api/v1/workouts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	items := decode[[]view.Summary](t, rr)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
	assert.Equal(t, "km/h", items[0].DerivedUnit)

	rr = do(router, http.MethodGet, "/api/v1/workouts/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, http.MethodPost, "/api/v1/workouts/"+created.ID+"/activate", "")
	require.Equal(t, http.StatusOK, rr.Code)
	activated := decode[ActivateResponse](t, rr)
	assert.Equal(t, 1, activated.Workout.InteractionCount)
	assert.Equal(t, created.Coords, activated.Map.Center)
	require.Len(t, activated.Map.Markers, 1)

	rr = do(router, http.MethodPost, "/api/v1/workouts/nope/activate", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(router, http.MethodDelete, "/api/v1/workouts", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(router, http.MethodGet, "/api/v1/workouts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(router, http.MethodGet, "/api/v1/workouts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateWorkoutRejectsMalformedBody(t *testing.T) {
	router := newRouter(t, nil)
	rr := do(router, http.MethodPost, "/api/v1/workouts", `{"distance":true}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFormValueUnmarshal(t *testing.T) {
	var req CreateWorkoutRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type":"running","distance":5.5,"duration":"24","cadence":null}`), &req))
	assert.Equal(t, FormValue("5.5"), req.Distance)
	assert.Equal(t, FormValue("24"), req.Duration)
	assert.Equal(t, FormValue(""), req.Cadence)
}
