package handlers

import (
	"net/http"
	"runtime"
	"time"
)

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string                 `json:"status"`
	LastLoad      string                 `json:"last_load"`
	DataAgeHours  float64                `json:"data_age_hours"`
	Uptime        string                 `json:"uptime"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Data          map[string]interface{} `json:"data"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck returns server health derived from catalog state: unhealthy
// when no drug records are loaded, degraded while a reload is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	catalog := h.store.GetCatalog()
	loadedAt := h.store.GetLoadedAt()
	uptime := time.Since(h.store.GetServerStartTime())
	dataAge := time.Since(loadedAt)

	var healthStatus string
	var httpStatus int
	switch {
	case catalog.DrugCount() == 0:
		healthStatus = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case h.store.IsReloading():
		healthStatus = "degraded"
		httpStatus = http.StatusOK
	default:
		healthStatus = "healthy"
		httpStatus = http.StatusOK
	}

	engines := h.extractor.EngineNames()
	if engines == nil {
		engines = []string{}
	}

	response := HealthResponse{
		Status:        healthStatus,
		LastLoad:      loadedAt.Format(time.RFC3339),
		DataAgeHours:  dataAge.Hours(),
		Uptime:        formatUptimeHuman(uptime),
		UptimeSeconds: uptime.Seconds(),
		Data: map[string]interface{}{
			"api_version":  "1.0",
			"drugs":        catalog.DrugCount(),
			"interactions": catalog.InteractionCount(),
			"alternatives": catalog.AlternativeCount(),
			"conditions":   len(catalog.ConditionNames()),
			"dosages":      catalog.DosageCount(),
			"is_reloading": h.store.IsReloading(),
			"ocr_engines":  engines,
		},
		System: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}
