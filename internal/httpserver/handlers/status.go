package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/darrylwest/service-uptime/internal/httpserver/deps"
	"github.com/darrylwest/service-uptime/internal/logger"
	"github.com/darrylwest/service-uptime/pkg/status"
)

type statusResponse struct {
	Service         string `json:"service" yaml:"service"`
	InstanceID      string `json:"instance_id" yaml:"instance_id"`
	Version         string `json:"version" yaml:"version"`
	Text            string `json:"text" yaml:"text"`
	status.Snapshot `yaml:",inline"`
}

type instanceSnapshot struct {
	InstanceID string `json:"instance_id"`
	Text       string `json:"text"`
	status.Snapshot
}

type fleetResponse struct {
	Instances []instanceSnapshot `json:"instances"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Status renders this instance's ServiceStatus. ?format selects text
// (default), json or yaml.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Status.Snapshot()
		w.Header().Set("Cache-Control", "no-store")

		switch format := r.URL.Query().Get("format"); format {
		case "", "text":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(snap.String() + "\n"))

		case "json":
			writeJSON(w, http.StatusOK, newStatusResponse(d, snap))

		case "yaml":
			data, err := yaml.Marshal(newStatusResponse(d, snap))
			if err != nil {
				d.Logger.Error("failed to marshal status", logger.Error(err))
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to render status"})
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(data)

		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported format: " + format})
		}
	}
}

// Fleet lists the snapshots published by every live instance, sorted by instance ID.
func Fleet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Store == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "snapshot store disabled"})
			return
		}

		snaps, err := d.Store.GetAllSnapshots(r.Context())
		if err != nil {
			d.Logger.Error("failed to read fleet snapshots", logger.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "snapshot store unavailable"})
			return
		}

		resp := fleetResponse{Instances: make([]instanceSnapshot, 0, len(snaps))}
		for id, snap := range snaps {
			resp.Instances = append(resp.Instances, instanceSnapshot{InstanceID: id, Text: snap.String(), Snapshot: snap})
		}
		sort.Slice(resp.Instances, func(i, j int) bool {
			return resp.Instances[i].InstanceID < resp.Instances[j].InstanceID
		})

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, resp)
	}
}

func newStatusResponse(d deps.Deps, snap status.Snapshot) statusResponse {
	return statusResponse{
		Service:    d.ServiceName,
		InstanceID: d.InstanceID,
		Version:    d.Version,
		Text:       snap.String(),
		Snapshot:   snap,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
