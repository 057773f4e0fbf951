package handlers

import (
	"io"
	"net/http"

	"github.com/ManolyaGambira/prescriptions-api/crossref"
	"github.com/ManolyaGambira/prescriptions-api/logging"
	"github.com/ManolyaGambira/prescriptions-api/metrics"
	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
	"github.com/ManolyaGambira/prescriptions-api/validation"
)

// maxMultipartMemory is how much of the upload is kept in memory before
// spilling to disk; the request size middleware bounds the total.
const maxMultipartMemory = 10 << 20

// GuidanceReport is the age-band dosage guidance for one matched drug.
type GuidanceReport struct {
	Dose    string `json:"dose,omitempty"`
	Max     string `json:"max,omitempty"`
	Warning string `json:"warning,omitempty"`
	Note    string `json:"note,omitempty"`
}

// MedicationReport is one matched drug with its dosage guidance.
type MedicationReport struct {
	entities.MatchedDrug
	Guidance GuidanceReport `json:"dosage_guidance"`
}

// AnalyzeResponse is the full prescription analysis. Text carries the raw
// OCR output so clients can show what was actually read.
type AnalyzeResponse struct {
	Text            string                    `json:"text"`
	Age             int                       `json:"age"`
	AgeBand         entities.AgeBand          `json:"age_band"`
	Message         string                    `json:"message,omitempty"`
	Medications     []MedicationReport        `json:"medications"`
	Interactions    []entities.Interaction    `json:"interactions"`
	InteractionNote string                    `json:"interaction_note,omitempty"`
	Alternatives    []entities.AlternativeSet `json:"alternatives"`
	Disclaimer      string                    `json:"disclaimer"`
}

// Analyze handles POST /analyze: multipart image + age. Extraction failure
// is a 200 with an explanatory message, never a 5xx; only malformed input
// is rejected.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Expected multipart form with an image file and an age field")
		return
	}

	age, err := validation.ParseAge(r.FormValue("age"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Could not read image file")
		return
	}
	if len(image) == 0 {
		h.RespondWithError(w, http.StatusBadRequest, "Image file is empty")
		return
	}

	response := AnalyzeResponse{
		Age:          age,
		AgeBand:      crossref.AgeBand(age),
		Medications:  []MedicationReport{},
		Interactions: []entities.Interaction{},
		Alternatives: []entities.AlternativeSet{},
		Disclaimer:   Disclaimer,
	}

	text := h.extractor.ExtractText(r.Context(), image)
	if text == "" {
		metrics.RecordAnalysis("no_text")
		response.Message = ExtractionFailedMessage
		h.RespondWithJSON(w, http.StatusOK, response)
		return
	}
	response.Text = text

	catalog := h.store.GetCatalog()
	matches := h.store.GetMatcher().Find(text)
	if len(matches) == 0 {
		metrics.RecordAnalysis("no_matches")
		response.Message = "No known medications were recognized in the extracted text."
		h.RespondWithJSON(w, http.StatusOK, response)
		return
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
		report := MedicationReport{MatchedDrug: m}
		if entry, band, ok := crossref.DosageFor(catalog, m.Name, age); ok {
			report.Guidance = GuidanceReport{
				Dose:    entry.Dose,
				Max:     entry.Max,
				Warning: entry.Warning,
			}
		} else {
			report.Guidance = GuidanceReport{
				Note: "No dosage guidance available for the " + string(band) + " age group",
			}
		}
		response.Medications = append(response.Medications, report)
	}

	if found := crossref.Interactions(catalog, names); len(found) > 0 {
		response.Interactions = found
	} else {
		response.InteractionNote = NoInteractionNote
	}
	if alts := crossref.Alternatives(catalog, names); len(alts) > 0 {
		response.Alternatives = alts
	}

	metrics.RecordAnalysis("analyzed")
	logging.Info("Prescription analyzed",
		"medications", len(response.Medications),
		"interactions", len(response.Interactions),
		"text_length", len(text))

	h.RespondWithJSON(w, http.StatusOK, response)
}
