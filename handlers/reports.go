package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ManolyaGambira/prescriptions-api/crossref"
	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
	"github.com/ManolyaGambira/prescriptions-api/validation"
)

// commonInteractionLimit caps the interaction listing in the single-drug
// dosage report.
const commonInteractionLimit = 5

// InteractionsRequest is the POST /interactions body. Drugs is a free-text
// list split on commas, semicolons and newlines.
type InteractionsRequest struct {
	Drugs string `json:"drugs"`
}

// InteractionsResponse reports the configured interactions among the
// recognized input drugs.
type InteractionsResponse struct {
	Drugs        []string               `json:"drugs"`
	Unrecognized []string               `json:"unrecognized,omitempty"`
	Interactions []entities.Interaction `json:"interactions"`
	Note         string                 `json:"note,omitempty"`
	Disclaimer   string                 `json:"disclaimer"`
}

// CheckInteractions handles POST /interactions.
func (h *Handler) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	var req InteractionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	names, err := validation.ParseDrugList(req.Drugs)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog := h.store.GetCatalog()
	known, unknown := crossref.Partition(catalog, names)

	response := InteractionsResponse{
		Drugs:        names,
		Unrecognized: unknown,
		Interactions: []entities.Interaction{},
		Disclaimer:   Disclaimer,
	}

	if found := crossref.Interactions(catalog, known); len(found) > 0 {
		response.Interactions = found
	} else {
		response.Note = NoInteractionNote
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// DosageResponse is the single-drug report: age-band guidance plus the
// drug's alternatives and its most common configured interactions.
type DosageResponse struct {
	Drug               string                 `json:"drug"`
	Age                int                    `json:"age"`
	AgeBand            entities.AgeBand       `json:"age_band"`
	Dosage             *GuidanceReport        `json:"dosage,omitempty"`
	Message            string                 `json:"message,omitempty"`
	Alternatives       []string               `json:"alternatives"`
	CommonInteractions []entities.Interaction `json:"common_interactions"`
	Disclaimer         string                 `json:"disclaimer"`
}

// DosageInfo handles GET /dosage/{drug}?age=N.
func (h *Handler) DosageInfo(w http.ResponseWriter, r *http.Request) {
	drug := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "drug")))
	if err := validation.ValidateName(drug); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	age, err := validation.ParseAge(r.URL.Query().Get("age"))
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog := h.store.GetCatalog()
	if _, ok := catalog.Drug(drug); !ok {
		h.RespondWithError(w, http.StatusNotFound, "Unknown drug: "+drug)
		return
	}

	response := DosageResponse{
		Drug:               drug,
		Age:                age,
		AgeBand:            crossref.AgeBand(age),
		Alternatives:       []string{},
		CommonInteractions: []entities.Interaction{},
		Disclaimer:         Disclaimer,
	}

	if entry, _, ok := crossref.DosageFor(catalog, drug, age); ok {
		response.Dosage = &GuidanceReport{
			Dose:    entry.Dose,
			Max:     entry.Max,
			Warning: entry.Warning,
		}
	} else {
		response.Message = "No dosage guidance available for the " + string(response.AgeBand) + " age group"
	}

	if alts := catalog.Alternatives(drug); len(alts) > 0 {
		response.Alternatives = alts
	}
	if common := crossref.CommonInteractions(catalog, drug, commonInteractionLimit); len(common) > 0 {
		response.CommonInteractions = common
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// SafetyRequest is the POST /safety body: a free-text drug list and a
// free-text condition list.
type SafetyRequest struct {
	Drugs      string `json:"drugs"`
	Conditions string `json:"conditions"`
}

// SafetyResponse reports condition contraindications for the input drugs.
type SafetyResponse struct {
	Drugs        []string                 `json:"drugs"`
	Unrecognized []string                 `json:"unrecognized,omitempty"`
	Conditions   []string                 `json:"conditions"`
	Warnings     []crossref.ConditionFlag `json:"warnings"`
	Note         string                   `json:"note,omitempty"`
	Disclaimer   string                   `json:"disclaimer"`
}

// SafetyCheck handles POST /safety. Unknown condition names are ignored;
// unknown drug names still take part in literal-name checks and are also
// reported as unrecognized.
func (h *Handler) SafetyCheck(w http.ResponseWriter, r *http.Request) {
	var req SafetyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	drugs, err := validation.ParseDrugList(req.Drugs)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	conditions, err := validation.ParseConditionList(req.Conditions)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog := h.store.GetCatalog()
	_, unknown := crossref.Partition(catalog, drugs)

	response := SafetyResponse{
		Drugs:        drugs,
		Unrecognized: unknown,
		Conditions:   conditions,
		Warnings:     []crossref.ConditionFlag{},
		Disclaimer:   Disclaimer,
	}
	if response.Conditions == nil {
		response.Conditions = []string{}
	}

	if flags := crossref.Safety(catalog, drugs, conditions); len(flags) > 0 {
		response.Warnings = flags
	} else {
		response.Note = "No contraindications found in the reference data for these drugs and conditions."
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}
