// Package crossref implements the pure lookup logic over the reference
// catalog: pairwise interaction checks, alternative suggestions, condition
// contraindications and age-band dosage selection. Every function is a pure
// function of its inputs and the catalog; nothing here touches I/O.
package crossref

import (
	"github.com/ManolyaGambira/prescriptions-api/refdata"
	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
)

// Age thresholds for dosage banding.
const (
	childAgeLimit   = 18
	elderlyAgeStart = 65
)

// AgeBand maps a patient age to its dosage band.
func AgeBand(age int) entities.AgeBand {
	switch {
	case age < childAgeLimit:
		return entities.BandChild
	case age >= elderlyAgeStart:
		return entities.BandElderly
	default:
		return entities.BandAdult
	}
}

// Partition splits the input names into catalog drugs and unrecognized
// names, preserving input order. Unrecognized names still take part in
// literal-name condition checks, but never in interaction or class lookups.
func Partition(catalog *refdata.Catalog, names []string) (known, unknown []string) {
	for _, name := range names {
		if _, ok := catalog.Drug(name); ok {
			known = append(known, name)
		} else {
			unknown = append(unknown, name)
		}
	}
	return known, unknown
}

// Interactions returns every configured interaction among the unordered
// pairs of the input drugs, in input pair order. Names absent from the
// interaction map contribute nothing; an empty result means no configured
// interaction was found, not that the combination is safe.
func Interactions(catalog *refdata.Catalog, drugs []string) []entities.Interaction {
	var found []entities.Interaction
	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			if drugs[i] == drugs[j] {
				continue
			}
			if in, ok := catalog.Interaction(drugs[i], drugs[j]); ok {
				found = append(found, in)
			}
		}
	}
	return found
}

// Alternatives returns the configured substitutes for each input drug that
// has an alternatives entry, in input order. The relation is directional:
// a drug listed as someone's alternative need not have an entry itself.
func Alternatives(catalog *refdata.Catalog, drugs []string) []entities.AlternativeSet {
	var found []entities.AlternativeSet
	for _, drug := range drugs {
		if alts := catalog.Alternatives(drug); len(alts) > 0 {
			found = append(found, entities.AlternativeSet{Drug: drug, Alternatives: alts})
		}
	}
	return found
}

// ConditionFlag is one (drug, condition) contraindication hit.
type ConditionFlag struct {
	Drug      string `json:"drug"`
	Condition string `json:"condition"`
	Reason    string `json:"reason"`
}

// Safety flags every input drug whose name or class tag appears in the
// avoid list of one of the input conditions. Drugs missing from the
// catalog have no class and can only be flagged by literal name. Unknown
// condition names are skipped, not errors.
func Safety(catalog *refdata.Catalog, drugs, conditions []string) []ConditionFlag {
	var flags []ConditionFlag
	for _, condName := range conditions {
		rule, ok := catalog.Condition(condName)
		if !ok {
			continue
		}
		avoid := make(map[string]bool, len(rule.Avoid))
		for _, token := range rule.Avoid {
			avoid[token] = true
		}
		for _, drug := range drugs {
			hit := avoid[drug]
			if !hit {
				if record, known := catalog.Drug(drug); known {
					hit = avoid[record.Class]
				}
			}
			if hit {
				flags = append(flags, ConditionFlag{
					Drug:      drug,
					Condition: rule.Condition,
					Reason:    rule.Reason,
				})
			}
		}
	}
	return flags
}

// DosageFor selects the dosage entry for a drug at the band derived from
// age. The second return is the band itself; ok is false when the drug has
// no guideline row or no entry for that band.
func DosageFor(catalog *refdata.Catalog, drug string, age int) (*entities.DosageEntry, entities.AgeBand, bool) {
	band := AgeBand(age)
	guideline, ok := catalog.Dosage(drug)
	if !ok {
		return nil, band, false
	}
	entry := guideline.Band(band)
	if entry == nil {
		return nil, band, false
	}
	return entry, band, true
}

// CommonInteractions returns up to limit configured pairs naming the drug,
// in table declaration order. Used by the single-drug dosage report.
func CommonInteractions(catalog *refdata.Catalog, drug string, limit int) []entities.Interaction {
	found := catalog.InteractionsFor(drug)
	if len(found) > limit {
		found = found[:limit]
	}
	return found
}
