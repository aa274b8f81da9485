package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookverse/internal/scheduler"
)

type stubScheduler struct {
	runs int
	next time.Time
}

func (s *stubScheduler) IsRunning() bool               { return true }
func (s *stubScheduler) GetNextRunTime() *time.Time    { return &s.next }
func (s *stubScheduler) LastRun() *scheduler.RunStatus { return &scheduler.RunStatus{Status: "success"} }
func (s *stubScheduler) RunNow()                       { s.runs++ }

func TestScheduleController(t *testing.T) {
	serve := func(controller *ScheduleController, method, target string) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/api/schedule", controller.GetStatus)
		router.POST("/api/schedule/run", controller.RunNow)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(method, target, nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("reports disabled scheduler", func(t *testing.T) {
		controller := NewScheduleController(nil, "")

		w := serve(controller, "GET", "/api/schedule")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"enabled": false}`, w.Body.String())

		w = serve(controller, "POST", "/api/schedule/run")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("reports active scheduler", func(t *testing.T) {
		stub := &stubScheduler{next: time.Date(2025, 3, 2, 3, 0, 0, 0, time.UTC)}
		controller := NewScheduleController(stub, "0 3 * * *")

		w := serve(controller, "GET", "/api/schedule")
		require.Equal(t, http.StatusOK, w.Code)

		var status ScheduleStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.True(t, status.Enabled)
		assert.Equal(t, "0 3 * * *", status.Schedule)
		assert.Equal(t, stub.next, status.NextRun.UTC())
		assert.Equal(t, "success", status.LastRun.Status)

		w = serve(controller, "POST", "/api/schedule/run")
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, 1, stub.runs)
	})
}
