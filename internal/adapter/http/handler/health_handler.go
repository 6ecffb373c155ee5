package handler

import (
	"net/http"

	"cloud-connectivity-check/internal/core/domain"
	"cloud-connectivity-check/internal/core/ports"
	"cloud-connectivity-check/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

type checkStatus struct {
	Status     string   `json:"status"`
	Details    []string `json:"details,omitempty"`
	ErrorCode  string   `json:"error_code,omitempty"`
	Kind       string   `json:"kind,omitempty"`
	Error      string   `json:"error,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

type healthReport struct {
	Status string                 `json:"status"`
	RunID  string                 `json:"run_id"`
	Checks map[string]checkStatus `json:"checks"`
}

// HealthHandler serves the connectivity report over HTTP.
type HealthHandler struct {
	svc ports.CheckService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(svc ports.CheckService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health runs every check. 200 when all pass, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.svc.Run(c.Request.Context())

	body := healthReport{
		Status: statusHealthy,
		RunID:  report.RunID.String(),
		Checks: make(map[string]checkStatus, len(report.Results)),
	}
	for _, res := range report.Results {
		body.Checks[string(res.Check)] = toCheckStatus(res)
	}

	code := http.StatusOK
	if !report.Healthy() {
		body.Status = statusDegraded
		code = http.StatusServiceUnavailable
	}
	response.JSON(c, code, body)
}

// Check runs a single check named by the :check path parameter.
func (h *HealthHandler) Check(c *gin.Context) {
	res, err := h.svc.RunOne(c.Request.Context(), domain.CheckName(c.Param("check")))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !res.OK && res.Err != nil {
		response.Error(c, res.Err)
		return
	}
	response.OK(c, toCheckStatus(res))
}

// Live reports process liveness without touching any dependency.
func Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func toCheckStatus(res domain.Result) checkStatus {
	st := checkStatus{
		Status:     statusHealthy,
		Details:    res.Details,
		DurationMS: res.Duration.Milliseconds(),
	}
	if !res.OK {
		st.Status = "unhealthy"
		if res.Err != nil {
			st.ErrorCode = res.Err.Code
			st.Kind = string(res.Err.Kind)
			st.Error = res.Err.Error()
		}
	}
	return st
}
