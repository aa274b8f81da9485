package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookverse/internal/scheduler"
)

type ImportScheduler interface {
	IsRunning() bool
	GetNextRunTime() *time.Time
	LastRun() *scheduler.RunStatus
	RunNow()
}

type ScheduleStatus struct {
	Enabled  bool                 `json:"enabled"`
	Schedule string               `json:"schedule,omitempty"`
	NextRun  *time.Time           `json:"next_run,omitempty"`
	LastRun  *scheduler.RunStatus `json:"last_run,omitempty"`
}

type ScheduleController struct {
	scheduler ImportScheduler
	schedule  string
}

func NewScheduleController(s ImportScheduler, schedule string) *ScheduleController {
	return &ScheduleController{scheduler: s, schedule: schedule}
}

func (controller *ScheduleController) GetStatus(c *gin.Context) {
	if controller.scheduler == nil {
		c.IndentedJSON(http.StatusOK, ScheduleStatus{})
		return
	}
	c.IndentedJSON(http.StatusOK, ScheduleStatus{
		Enabled:  controller.scheduler.IsRunning(),
		Schedule: controller.schedule,
		NextRun:  controller.scheduler.GetNextRunTime(),
		LastRun:  controller.scheduler.LastRun(),
	})
}

// RunNow starts a scheduled run in the background.
func (controller *ScheduleController) RunNow(c *gin.Context) {
	if controller.scheduler == nil {
		respondError(c, http.StatusConflict, "scheduler_disabled", "scheduler is not configured")
		return
	}
	controller.scheduler.RunNow()
	c.JSON(http.StatusAccepted, SuccessResponse{Message: "scheduled import started"})
}
