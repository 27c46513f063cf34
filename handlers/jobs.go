package handlers

import (
	"errors"
	"net/http"

	"slotserve/scheduler"

	"github.com/gin-gonic/gin"
)

// JobsHandler exposes scheduler introspection and manual triggering for
// operational testing.
type JobsHandler struct {
	Sched *scheduler.Scheduler
}

// NewJobsHandler builds a handler over the scheduler.
func NewJobsHandler(sched *scheduler.Scheduler) *JobsHandler {
	return &JobsHandler{Sched: sched}
}

// ListJobs returns the job table snapshot without triggering execution.
func (h *JobsHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.Sched.Status()})
}

// RunJob invokes one job synchronously, bypassing its schedule.
func (h *JobsHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	result, err := h.Sched.RunManually(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "job run failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": name, "result": result})
}
