// Package entities defines the reference-data types for the prescriptions API:
// drug records, interaction pairs, alternative sets, condition rules and
// age-band dosage guidelines. All of them are immutable once loaded.
package entities

// Severity is the qualitative risk tag of an interaction pair.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// Valid reports whether s is one of the three known severity tags.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityModerate, SeverityHigh:
		return true
	}
	return false
}

// AgeBand is the dosage bracket derived from a patient age.
type AgeBand string

const (
	BandChild   AgeBand = "child"
	BandAdult   AgeBand = "adult"
	BandElderly AgeBand = "elderly"
)

// DrugRecord is one entry of the drug metadata table. Name is the canonical
// lowercase key every other table refers to.
type DrugRecord struct {
	Name    string `json:"name"`
	Class   string `json:"class"`
	Generic string `json:"generic"`
}

// Interaction is a configured drug-pair interaction. Drugs holds exactly two
// member names; lookup is order-independent.
type Interaction struct {
	Drugs    [2]string `json:"drugs"`
	Severity Severity  `json:"severity"`
	Effect   string    `json:"effect"`
}

// AlternativeSet maps one drug to its configured substitutes. The relation is
// directional: A listing B does not imply B lists A.
type AlternativeSet struct {
	Drug         string   `json:"drug"`
	Alternatives []string `json:"alternatives"`
}

// ConditionRule pairs a medical condition with the drug names and class tags
// to avoid under it. The avoid list mixes both namespaces.
type ConditionRule struct {
	Condition string   `json:"condition"`
	Avoid     []string `json:"avoid"`
	Reason    string   `json:"reason"`
}

// DosageEntry is the guidance text for one (drug, age band) cell. All values
// are documentation strings, not computable quantities.
type DosageEntry struct {
	Dose    string `json:"dose"`
	Max     string `json:"max"`
	Warning string `json:"warning"`
}

// DosageGuideline is one drug's row of the dosage table, one entry per band.
type DosageGuideline struct {
	Drug    string       `json:"drug"`
	Child   *DosageEntry `json:"child,omitempty"`
	Adult   *DosageEntry `json:"adult,omitempty"`
	Elderly *DosageEntry `json:"elderly,omitempty"`
}

// Band returns the entry for the given age band, or nil when the drug has no
// guidance for that band.
func (g *DosageGuideline) Band(band AgeBand) *DosageEntry {
	switch band {
	case BandChild:
		return g.Child
	case BandAdult:
		return g.Adult
	case BandElderly:
		return g.Elderly
	}
	return nil
}

// MatchedDrug is one drug mention found in extracted text, enriched with the
// best-effort dose and frequency. Transient, built per analysis request.
type MatchedDrug struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Class     string `json:"class"`
	Generic   string `json:"generic"`
}
