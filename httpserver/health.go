package httpserver

import (
	"net/http"
	"os"

	"github.com/shirou/gopsutil/process"
)

const serviceVersion = "1.0.0"

type healthResponse struct {
	Status        string  `json:"status"`
	Service       string  `json:"service"`
	Version       string  `json:"version"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float32 `json:"memory_percent"`
}

// GET /api/health
// Process metrics are best effort: the endpoint stays healthy even when
// they cannot be read.
func (rt *Router) handleHealth(w http.ResponseWriter, _ *http.Request) error {
	resp := healthResponse{
		Status:  "healthy",
		Service: "med-lab",
		Version: serviceVersion,
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpu, err := p.CPUPercent(); err == nil {
			resp.CPUPercent = cpu
		}
		if ram, err := p.MemoryPercent(); err == nil {
			resp.MemoryPercent = ram
		}
	}

	return respondJSON(w, http.StatusOK, resp)
}
