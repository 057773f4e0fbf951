// Package handlers provides HTTP request handlers for the prescriptions API
// endpoints: prescription image analysis, interaction checks, dosage and
// safety reports, catalog browsing, health checks, and response formatting
// with proper input validation and error handling.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ManolyaGambira/prescriptions-api/interfaces"
	"github.com/ManolyaGambira/prescriptions-api/logging"
)

// Disclaimer is attached to every analysis response. The service reports
// reference data, it does not give medical advice.
const Disclaimer = "Educational information only, not medical advice. Consult a doctor or pharmacist before making any medication decision."

// NoInteractionNote qualifies an empty interaction result: absence of a
// configured pair is not evidence of safety.
const NoInteractionNote = "No known interactions found in the reference data. This does not guarantee the combination is safe."

// ExtractionFailedMessage is returned when no OCR engine produced text.
const ExtractionFailedMessage = "Could not read any text from the image. Try a sharper photo with better lighting, or a typed prescription."

// Handler implements the HTTP endpoints with injected dependencies.
type Handler struct {
	store     interfaces.CatalogStore
	extractor interfaces.TextExtractor
}

// NewHandler creates a handler with injected dependencies.
func NewHandler(store interfaces.CatalogStore, extractor interfaces.TextExtractor) *Handler {
	return &Handler{
		store:     store,
		extractor: extractor,
	}
}

// RespondWithJSON writes a JSON response
func (h *Handler) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *Handler) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
