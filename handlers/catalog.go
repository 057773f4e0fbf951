package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
	"github.com/ManolyaGambira/prescriptions-api/validation"
)

// ListDrugs handles GET /drugs: the full drug catalog with per-class
// counts, in table declaration order. Backs the client's catalog panel.
func (h *Handler) ListDrugs(w http.ResponseWriter, r *http.Request) {
	catalog := h.store.GetCatalog()

	drugs := make([]entities.DrugRecord, 0, catalog.DrugCount())
	for _, name := range catalog.DrugNames() {
		if record, ok := catalog.Drug(name); ok {
			drugs = append(drugs, record)
		}
	}

	response := map[string]interface{}{
		"count":   len(drugs),
		"classes": catalog.ClassCounts(),
		"drugs":   drugs,
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// DrugDetail is the GET /drugs/{name} payload: the record plus everything
// the catalog knows about the drug.
type DrugDetail struct {
	entities.DrugRecord
	Alternatives []string                  `json:"alternatives"`
	Interactions []entities.Interaction    `json:"interactions"`
	Dosage       *entities.DosageGuideline `json:"dosage,omitempty"`
}

// GetDrug handles GET /drugs/{name}.
func (h *Handler) GetDrug(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "name")))
	if err := validation.ValidateName(name); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog := h.store.GetCatalog()
	record, ok := catalog.Drug(name)
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Unknown drug: "+name)
		return
	}

	detail := DrugDetail{
		DrugRecord:   record,
		Alternatives: []string{},
		Interactions: []entities.Interaction{},
	}
	if alts := catalog.Alternatives(name); len(alts) > 0 {
		detail.Alternatives = alts
	}
	if found := catalog.InteractionsFor(name); len(found) > 0 {
		detail.Interactions = found
	}
	if guideline, ok := catalog.Dosage(name); ok {
		detail.Dosage = guideline
	}

	h.RespondWithJSON(w, http.StatusOK, detail)
}

// ListConditions handles GET /conditions: the supported condition rules in
// table declaration order.
func (h *Handler) ListConditions(w http.ResponseWriter, r *http.Request) {
	catalog := h.store.GetCatalog()

	conditions := make([]entities.ConditionRule, 0)
	for _, name := range catalog.ConditionNames() {
		if rule, ok := catalog.Condition(name); ok {
			conditions = append(conditions, rule)
		}
	}

	response := map[string]interface{}{
		"count":      len(conditions),
		"conditions": conditions,
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}
