package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/darrylwest/service-uptime/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string    `json:"status"`
	Service       string    `json:"service,omitempty"`
	InstanceID    string    `json:"instance_id,omitempty"`
	Uptime        string    `json:"uptime"`
	UptimeSeconds uint64    `json:"uptime_seconds"`
	StartedAt     time.Time `json:"started_at"`
	Version       string    `json:"version,omitempty"`
	Commit        string    `json:"commit,omitempty"`
	BuildDate     string    `json:"build_date,omitempty"`
	GoVersion     string    `json:"go_version,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	up := d.Status.Uptime
	return func(w http.ResponseWriter, r *http.Request) {
		secs := up.Seconds()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(healthzResponse{
			Status:        "ok",
			Service:       d.ServiceName,
			InstanceID:    d.InstanceID,
			Uptime:        up.Get().String(),
			UptimeSeconds: secs,
			StartedAt:     up.StartedAt(),
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
		})
	}
}
