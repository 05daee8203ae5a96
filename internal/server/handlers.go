package server

import (
	"encoding/json"
	"net/http"

	"github.com/shirou/gopsutil/v3/mem"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "ok",
		"version": Version,
		"service": "pulse",
	}

	if memStat, err := mem.VirtualMemory(); err == nil {
		response["memory_used_percent"] = memStat.UsedPercent
	} else {
		s.log.Debug().Err(err).Msg("Failed to read memory stats")
	}

	s.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
