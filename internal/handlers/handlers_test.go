package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/models"
	"checklist_manager/internal/redis"
	"checklist_manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminUser = &models.User{ID: 1, Username: "admin", Role: string(models.RoleAdmin)}
	doerUser  = &models.User{ID: 3, Username: "ravi", Role: string(models.RoleDoer)}
)

type fakeResolver struct{}

func (fakeResolver) ResolveAuthContext(_ context.Context, id uint) (*services.AuthContext, error) {
	switch id {
	case adminUser.ID:
		return services.NewAuthContext(adminUser, true, []models.User{*doerUser}), nil
	case doerUser.ID:
		return services.NewAuthContext(doerUser, false, nil), nil
	default:
		return nil, services.ErrUnknownActor
	}
}

type fakeChecklistService struct {
	services.ChecklistService
	generate    func(req checklist.Request) (*services.GenerateResult, error)
	lastQuery   services.ListQuery
	rows        []checklist.Row
	statusCalls []string
	statusErr   error
}

func (f *fakeChecklistService) Generate(_ context.Context, _ *services.AuthContext, req checklist.Request) (*services.GenerateResult, error) {
	return f.generate(req)
}

func (f *fakeChecklistService) List(_ context.Context, _ *services.AuthContext, q services.ListQuery, _ time.Time) ([]checklist.Row, error) {
	f.lastQuery = q
	return f.rows, nil
}

func (f *fakeChecklistService) UpdateStatus(_ context.Context, _ *services.AuthContext, id uint, status string, at time.Time) (*models.ChecklistSubtask, error) {
	f.statusCalls = append(f.statusCalls, status)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	delay := "On Time"
	return &models.ChecklistSubtask{ID: id, Status: status, PlannedDate: at, DelayDuration: &delay}, nil
}

type fakeFlash struct {
	stored map[string]*redis.FlashMessage
}

func (f *fakeFlash) PushFlash(_ context.Context, owner string, msg *redis.FlashMessage, _ time.Duration) error {
	f.stored[owner] = msg
	return nil
}

func (f *fakeFlash) PopFlash(_ context.Context, owner string) (*redis.FlashMessage, error) {
	msg, ok := f.stored[owner]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	delete(f.stored, owner)
	return msg, nil
}

type fakeHolidayService struct {
	services.HolidayService
	added []string
}

func (f *fakeHolidayService) ListHolidays(context.Context) ([]models.Holiday, error) {
	return []models.Holiday{{ID: 1, Name: "Republic Day", Date: time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)}}, nil
}

func (f *fakeHolidayService) AddHoliday(_ context.Context, date, name string) (*models.Holiday, error) {
	if date == "bad" {
		return nil, checklist.ErrValidation
	}
	f.added = append(f.added, date)
	return &models.Holiday{ID: 2, Name: name}, nil
}

func (f *fakeHolidayService) DeleteHoliday(_ context.Context, date string) error {
	return services.ErrHolidayNotFound
}

type testServer struct {
	router    *gin.Engine
	checklist *fakeChecklistService
	flash     *fakeFlash
	holidays  *fakeHolidayService
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)
	ts := &testServer{
		router:    gin.New(),
		checklist: &fakeChecklistService{},
		flash:     &fakeFlash{stored: map[string]*redis.FlashMessage{}},
		holidays:  &fakeHolidayService{},
	}
	ch := NewChecklistHandler(ts.checklist, ts.flash, time.Minute)
	ch.now = func() time.Time { return time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC) }
	Register(ts.router, fakeResolver{}, ch, NewHolidayHandler(ts.holidays))
	return ts
}

func (ts *testServer) do(method, path string, actor uint, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != 0 {
		req.Header.Set(ActorHeader, jsonNumber(actor))
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func jsonNumber(n uint) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRequireActor(t *testing.T) {
	ts := newTestServer()

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/checklist", 0, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/checklist", 42, nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/healthz", 0, nil).Code)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer()
	ts.checklist.generate = func(req checklist.Request) (*services.GenerateResult, error) {
		assert.Equal(t, "weekly", req.Frequency)
		return &services.GenerateResult{Created: 2, SkippedDates: []string{}}, nil
	}

	w := ts.do(http.MethodPost, "/api/checklist/generate", adminUser.ID, checklist.Request{
		AssigneeID: doerUser.ID, StartDate: "2024-01-01", EndDate: "2024-01-08", Frequency: "weekly", Duration: "00:30:00", Description: "Audit",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["created"])
	assert.Equal(t, "2 subtasks generated", body["message"])

	flash := ts.do(http.MethodGet, "/api/flash", adminUser.ID, nil)
	require.Equal(t, http.StatusOK, flash.Code)
	assert.Equal(t, "success", decode(t, flash)["level"])
	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodGet, "/api/flash", adminUser.ID, nil).Code)
}

func TestGenerate_EmptyAndErrors(t *testing.T) {
	ts := newTestServer()
	ts.checklist.generate = func(req checklist.Request) (*services.GenerateResult, error) {
		switch req.Description {
		case "sunday":
			return &services.GenerateResult{SkippedDates: []string{"2024-01-07 (Sunday)"}}, nil
		case "forbidden":
			return nil, services.ErrForbiddenAssignee
		default:
			return nil, checklist.ErrValidation
		}
	}

	w := ts.do(http.MethodPost, "/api/checklist/generate", doerUser.ID, checklist.Request{Description: "sunday"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.NoSubtasksMessage, decode(t, w)["message"])
	assert.Equal(t, "warning", ts.flash.stored["3"].Level)

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, "/api/checklist/generate", doerUser.ID, checklist.Request{Description: "forbidden"}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/checklist/generate", doerUser.ID, checklist.Request{Description: "x"}).Code)
}

func TestList(t *testing.T) {
	ts := newTestServer()
	ts.checklist.rows = []checklist.Row{{Subtask: models.ChecklistSubtask{ID: 5}, IsDelayed: true, DelayDisplay: "1 D 0:00:00"}}

	w := ts.do(http.MethodGet, "/api/checklist?assignee_id=3&status=pending&sort=delay&order=desc&from=2024-01-01", adminUser.ID, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
	assert.Equal(t, services.ListQuery{AssigneeID: 3, Status: "pending", From: "2024-01-01", Sort: "delay", Desc: true}, ts.checklist.lastQuery)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/checklist?assignee_id=abc", adminUser.ID, nil).Code)
}

func TestUpdateStatus(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPatch, "/api/checklist/9/status", doerUser.ID, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "On Time", decode(t, w)["delay_display"])

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPatch, "/api/checklist/x/status", doerUser.ID, gin.H{"status": "completed"}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPatch, "/api/checklist/9/status", doerUser.ID, gin.H{}).Code)

	ts.checklist.statusErr = checklist.ErrInvalidTransition
	assert.Equal(t, http.StatusConflict, ts.do(http.MethodPatch, "/api/checklist/9/status", doerUser.ID, gin.H{"status": "completed"}).Code)
	ts.checklist.statusErr = services.ErrSubtaskNotFound
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPatch, "/api/checklist/9/status", doerUser.ID, gin.H{"status": "completed"}).Code)
}

func TestHolidays(t *testing.T) {
	ts := newTestServer()

	list := ts.do(http.MethodGet, "/api/holidays", doerUser.ID, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Len(t, decode(t, list)["holidays"], 1)

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, "/api/holidays", doerUser.ID, gin.H{"date": "2024-08-15"}).Code)
	assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/holidays", adminUser.ID, gin.H{"date": "2024-08-15", "name": "Independence Day"}).Code)
	assert.Equal(t, []string{"2024-08-15"}, ts.holidays.added)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/holidays", adminUser.ID, gin.H{"date": "bad"}).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/holidays/2024-01-01", adminUser.ID, nil).Code)
}
