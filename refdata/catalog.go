// Package refdata loads and validates the static reference tables of the
// prescriptions API: drug metadata, pairwise interactions, alternatives,
// condition rules and age-band dosage guidelines. The tables ship embedded
// in the binary and can be overridden per file from a data directory.
package refdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
)

// allowedClasses is the closed set of therapeutic class tags. A drug record
// carrying any other tag fails the load.
var allowedClasses = map[string]bool{
	"5ari": true, "ace_inhibitor": true, "alpha_blocker": true,
	"analgesic": true, "antibiotic": true, "anticholinergic": true,
	"anticoagulant": true, "anticonvulsant": true, "antidepressant": true,
	"antidiabetic": true, "antidiarrheal": true, "antiemetic": true,
	"antifibrinolytic": true, "antifungal": true, "antihistamine": true,
	"antiplatelet": true, "antipsychotic": true, "antitussive": true,
	"antiviral": true, "arb": true, "benzodiazepine": true,
	"beta_blocker": true, "bronchodilator": true, "calcium_blocker": true,
	"cholinesterase": true, "corticosteroid": true, "diuretic": true,
	"dpp4_inhibitor": true, "h2_blocker": true, "insulin": true,
	"laba": true, "leukotriene": true, "mineral": true, "nsaid": true,
	"opioid": true, "painkiller": true, "pde5_inhibitor": true,
	"ppi": true, "prokinetic": true, "prostaglandin": true,
	"sglt2_inhibitor": true, "ssri": true, "statin": true,
	"sulfonylurea": true, "supplement": true, "thiazolidinedione": true,
	"thyroid": true, "vitamin": true,
}

// QualityReport summarizes cross-table findings from a catalog build.
// Hazard labels are interaction members or avoid tokens that are neither a
// drug record nor a class tag (e.g. "alcohol", "nitrates", "contrast dye");
// they stay in the data as free-text hazards rather than drug entities.
type QualityReport struct {
	HazardLabels           []string
	AlternativeOnlyNames   []string
	DrugsWithoutDosage     int
	DrugsWithoutDosageList []string
}

// Catalog is the immutable set of reference tables. Built once per load,
// read-only thereafter; swapped whole on reload.
type Catalog struct {
	drugs     map[string]entities.DrugRecord
	drugOrder []string

	// interactions holds every pair under both orderings, so a single
	// directional lookup is always enough.
	interactions map[string]entities.Interaction
	forward      []entities.Interaction

	alternatives   map[string][]string
	alternativeLen int

	conditions     map[string]entities.ConditionRule
	conditionOrder []string

	dosages map[string]*entities.DosageGuideline

	report QualityReport
}

// NewEmptyCatalog returns a catalog with no data. Containers start with one
// so lookups before the first load return "no data" instead of panicking.
func NewEmptyCatalog() *Catalog {
	return &Catalog{
		drugs:        map[string]entities.DrugRecord{},
		interactions: map[string]entities.Interaction{},
		alternatives: map[string][]string{},
		conditions:   map[string]entities.ConditionRule{},
		dosages:      map[string]*entities.DosageGuideline{},
	}
}

// pairKey builds the lookup key for one ordering of an interaction pair.
func pairKey(a, b string) string {
	return a + "|" + b
}

func buildCatalog(drugs []entities.DrugRecord, interactions []entities.Interaction,
	alternatives []entities.AlternativeSet, conditions []entities.ConditionRule,
	dosages []entities.DosageGuideline) (*Catalog, error) {

	c := NewEmptyCatalog()

	hazards := map[string]bool{}
	altOnly := map[string]bool{}

	for _, d := range drugs {
		name := strings.ToLower(strings.TrimSpace(d.Name))
		if name == "" {
			return nil, fmt.Errorf("drug record with empty name")
		}
		if _, dup := c.drugs[name]; dup {
			return nil, fmt.Errorf("duplicate drug record: %q", name)
		}
		if !allowedClasses[d.Class] {
			return nil, fmt.Errorf("drug %q has unknown class tag %q", name, d.Class)
		}
		if d.Generic == "" {
			return nil, fmt.Errorf("drug %q has empty generic name", name)
		}
		d.Name = name
		c.drugs[name] = d
		c.drugOrder = append(c.drugOrder, name)
	}

	// classify a referenced token: known drug, class tag, or hazard label
	classify := func(token string) {
		if _, ok := c.drugs[token]; ok {
			return
		}
		if allowedClasses[token] {
			return
		}
		hazards[token] = true
	}

	for _, in := range interactions {
		a := strings.ToLower(strings.TrimSpace(in.Drugs[0]))
		b := strings.ToLower(strings.TrimSpace(in.Drugs[1]))
		if a == "" || b == "" {
			return nil, fmt.Errorf("interaction with empty member: %v", in.Drugs)
		}
		if a == b {
			return nil, fmt.Errorf("interaction pairing %q with itself", a)
		}
		if !in.Severity.Valid() {
			return nil, fmt.Errorf("interaction (%s, %s) has invalid severity %q", a, b, in.Severity)
		}
		if _, dup := c.interactions[pairKey(a, b)]; dup {
			return nil, fmt.Errorf("duplicate interaction pair (%s, %s)", a, b)
		}
		in.Drugs = [2]string{a, b}
		// store both orderings so lookup is order-independent
		c.interactions[pairKey(a, b)] = in
		c.interactions[pairKey(b, a)] = in
		c.forward = append(c.forward, in)
		classify(a)
		classify(b)
	}

	for _, alt := range alternatives {
		drug := strings.ToLower(strings.TrimSpace(alt.Drug))
		if _, ok := c.drugs[drug]; !ok {
			return nil, fmt.Errorf("alternatives entry for unknown drug %q", drug)
		}
		if _, dup := c.alternatives[drug]; dup {
			return nil, fmt.Errorf("duplicate alternatives entry for %q", drug)
		}
		names := make([]string, 0, len(alt.Alternatives))
		for _, a := range alt.Alternatives {
			a = strings.ToLower(strings.TrimSpace(a))
			names = append(names, a)
			if _, ok := c.drugs[a]; !ok {
				altOnly[a] = true
			}
		}
		c.alternatives[drug] = names
		c.alternativeLen++
	}

	for _, cond := range conditions {
		name := strings.ToLower(strings.TrimSpace(cond.Condition))
		if name == "" {
			return nil, fmt.Errorf("condition rule with empty name")
		}
		if _, dup := c.conditions[name]; dup {
			return nil, fmt.Errorf("duplicate condition rule %q", name)
		}
		for _, token := range cond.Avoid {
			classify(token)
		}
		cond.Condition = name
		c.conditions[name] = cond
		c.conditionOrder = append(c.conditionOrder, name)
	}

	for i := range dosages {
		g := dosages[i]
		drug := strings.ToLower(strings.TrimSpace(g.Drug))
		if _, ok := c.drugs[drug]; !ok {
			return nil, fmt.Errorf("dosage guideline for unknown drug %q", drug)
		}
		if _, dup := c.dosages[drug]; dup {
			return nil, fmt.Errorf("duplicate dosage guideline for %q", drug)
		}
		g.Drug = drug
		c.dosages[drug] = &g
	}

	for _, name := range c.drugOrder {
		if _, ok := c.dosages[name]; !ok {
			c.report.DrugsWithoutDosage++
			c.report.DrugsWithoutDosageList = append(c.report.DrugsWithoutDosageList, name)
		}
	}
	c.report.HazardLabels = sortedKeys(hazards)
	c.report.AlternativeOnlyNames = sortedKeys(altOnly)

	return c, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Drug returns the metadata record for a canonical lowercase name.
func (c *Catalog) Drug(name string) (entities.DrugRecord, bool) {
	d, ok := c.drugs[name]
	return d, ok
}

// DrugNames returns every drug name in table declaration order. The matcher
// iterates this so match output order is deterministic.
func (c *Catalog) DrugNames() []string {
	out := make([]string, len(c.drugOrder))
	copy(out, c.drugOrder)
	return out
}

// DrugCount returns the number of drug records.
func (c *Catalog) DrugCount() int { return len(c.drugOrder) }

// Interaction looks up the pair (a, b) in either ordering.
func (c *Catalog) Interaction(a, b string) (entities.Interaction, bool) {
	in, ok := c.interactions[pairKey(a, b)]
	return in, ok
}

// Interactions returns the configured pairs, one entry per pair, in table
// declaration order.
func (c *Catalog) Interactions() []entities.Interaction {
	out := make([]entities.Interaction, len(c.forward))
	copy(out, c.forward)
	return out
}

// InteractionCount returns the number of configured pairs (not doubled by
// the reverse orderings).
func (c *Catalog) InteractionCount() int { return len(c.forward) }

// InteractionsFor returns every configured pair that names the given drug,
// in table declaration order.
func (c *Catalog) InteractionsFor(drug string) []entities.Interaction {
	var out []entities.Interaction
	for _, in := range c.forward {
		if in.Drugs[0] == drug || in.Drugs[1] == drug {
			out = append(out, in)
		}
	}
	return out
}

// Alternatives returns the configured substitutes for a drug, or nil when
// none are configured. The relation is directional: a drug listed as an
// alternative need not have an entry of its own.
func (c *Catalog) Alternatives(drug string) []string {
	alts, ok := c.alternatives[drug]
	if !ok {
		return nil
	}
	out := make([]string, len(alts))
	copy(out, alts)
	return out
}

// AlternativeCount returns the number of drugs with an alternatives entry.
func (c *Catalog) AlternativeCount() int { return c.alternativeLen }

// Condition returns the rule for a condition name.
func (c *Catalog) Condition(name string) (entities.ConditionRule, bool) {
	r, ok := c.conditions[name]
	return r, ok
}

// ConditionNames returns the condition names in table declaration order.
func (c *Catalog) ConditionNames() []string {
	out := make([]string, len(c.conditionOrder))
	copy(out, c.conditionOrder)
	return out
}

// Dosage returns the dosage guideline row for a drug.
func (c *Catalog) Dosage(drug string) (*entities.DosageGuideline, bool) {
	g, ok := c.dosages[drug]
	return g, ok
}

// DosageCount returns the number of drugs with dosage guidance.
func (c *Catalog) DosageCount() int { return len(c.dosages) }

// ClassCounts returns how many drugs carry each class tag.
func (c *Catalog) ClassCounts() map[string]int {
	counts := make(map[string]int)
	for _, name := range c.drugOrder {
		counts[c.drugs[name].Class]++
	}
	return counts
}

// Report returns the quality findings from the catalog build.
func (c *Catalog) Report() QualityReport { return c.report }
