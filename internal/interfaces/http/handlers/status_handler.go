package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solhycool/visualizations/internal/application/pipeline"
	"github.com/solhycool/visualizations/internal/application/watch"
)

// RunSource exposes the pipeline's run history.
type RunSource interface {
	LastRun() *pipeline.RunStatus
	Runs() int
	Publishers() []string
}

// GateSource exposes the watch gate.
type GateSource interface {
	State() watch.State
	Timings() (changeDelay, cooldown time.Duration)
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	State       string              `json:"state,omitempty"`
	ChangeDelay string              `json:"change_delay,omitempty"`
	Cooldown    string              `json:"cooldown,omitempty"`
	Runs        int                 `json:"runs"`
	Publishers  []string            `json:"publishers"`
	LastRun     *pipeline.RunStatus `json:"last_run"`
}

// StatusHandler reports the last pipeline run and the gate state.
type StatusHandler struct {
	runs RunSource
	gate GateSource
}

// NewStatusHandler creates a StatusHandler. gate may be nil for one-shot
// processes that never watch.
func NewStatusHandler(runs RunSource, gate GateSource) *StatusHandler {
	return &StatusHandler{runs: runs, gate: gate}
}

// Status handles GET /status.
func (h *StatusHandler) Status(c *gin.Context) {
	resp := StatusResponse{
		Runs:       h.runs.Runs(),
		Publishers: h.runs.Publishers(),
		LastRun:    h.runs.LastRun(),
	}
	if resp.Publishers == nil {
		resp.Publishers = []string{}
	}
	if h.gate != nil {
		delay, cooldown := h.gate.Timings()
		resp.State = h.gate.State().String()
		resp.ChangeDelay = delay.String()
		resp.Cooldown = cooldown.String()
	}
	c.JSON(http.StatusOK, resp)
}

// LastRun handles GET /status/last-run. 404 before the first run.
func (h *StatusHandler) LastRun(c *gin.Context) {
	last := h.runs.LastRun()
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run yet"})
		return
	}
	c.JSON(http.StatusOK, last)
}

//Personal.AI order the ending
