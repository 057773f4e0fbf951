// Package matcher scans free OCR text for reference drug mentions and pulls
// a best-effort dose and frequency for each match. Matching is a
// case-insensitive word-boundary test per drug name; there is no fuzzy or
// edit-distance correction, so a garbled name is simply not found.
package matcher

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ManolyaGambira/prescriptions-api/refdata"
	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
)

// Sentinels reported when no dose or frequency could be extracted. They
// distinguish "searched and found nothing" from real data values.
const (
	DosageNotSpecified    = "Not specified"
	FrequencyAsPrescribed = "As prescribed"
)

const doseUnits = `mg|ml|mcg|units|gm|g|tab|tabs|cap|caps|unit`

// frequencyVocabulary lists the recognized dosing codes in priority order:
// three-segment morning-noon-night codes first, then pharmacy abbreviations.
// The first code present anywhere in the text wins.
var frequencyVocabulary = []string{
	"1-0-0", "0-1-0", "0-0-1", "1-1-0", "1-0-1", "0-1-1", "1-1-1",
	"od", "hs", "bd", "tds", "qid", "stat", "prn",
}

var frequencyPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(frequencyVocabulary))
	for i, code := range frequencyVocabulary {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(code) + `\b`)
	}
	return patterns
}()

// drugPatterns holds the precompiled expressions for one reference drug.
type drugPatterns struct {
	name string
	// mention is the word-boundary presence test; multi-word names are
	// matched as a whole phrase.
	mention *regexp.Regexp
	// doseAfter matches "<drug> [:\-]* <number> [unit]".
	doseAfter *regexp.Regexp
	// doseBefore matches "<number> <unit> <drug>".
	doseBefore *regexp.Regexp
}

// Matcher is compiled once per catalog load and shared by all requests.
type Matcher struct {
	catalog  *refdata.Catalog
	patterns []drugPatterns
	folder   cases.Caser
}

// New compiles the mention and dose patterns for every drug in the catalog,
// in table declaration order, which fixes the output order of Find.
func New(catalog *refdata.Catalog) *Matcher {
	names := catalog.DrugNames()
	patterns := make([]drugPatterns, 0, len(names))

	for _, name := range names {
		quoted := regexp.QuoteMeta(name)
		patterns = append(patterns, drugPatterns{
			name:       name,
			mention:    regexp.MustCompile(`\b` + quoted + `\b`),
			doseAfter:  regexp.MustCompile(quoted + `\s*[:\-]*\s*(\d+(?:\.\d+)?)\s*(` + doseUnits + `)?`),
			doseBefore: regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(` + doseUnits + `)\s*` + quoted),
		})
	}

	return &Matcher{
		catalog:  catalog,
		patterns: patterns,
		folder:   cases.Fold(),
	}
}

// Find returns the reference drugs mentioned in text, each at most once,
// in catalog declaration order.
//
// The dose and frequency searches deliberately run over the full text
// rather than a window around the mention, matching the historical
// behavior: when several drugs and several numbers share one text, a dose
// can be attributed to the wrong drug.
func (m *Matcher) Find(text string) []entities.MatchedDrug {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := m.folder.String(text)

	frequency := ""
	var found []entities.MatchedDrug
	seen := make(map[string]bool)

	for _, p := range m.patterns {
		if seen[p.name] || !p.mention.MatchString(lower) {
			continue
		}
		seen[p.name] = true

		dosage := DosageNotSpecified
		if sub := p.doseAfter.FindStringSubmatch(lower); sub != nil && sub[1] != "" {
			unit := sub[2]
			if unit == "" {
				unit = "mg"
			}
			dosage = sub[1] + " " + unit
		} else if sub := p.doseBefore.FindStringSubmatch(lower); sub != nil {
			dosage = sub[1] + " " + sub[2]
		}

		// same full-text frequency scan for every match, so compute once
		if frequency == "" {
			frequency = findFrequency(lower)
		}

		record, _ := m.catalog.Drug(p.name)
		found = append(found, entities.MatchedDrug{
			Name:      p.name,
			Dosage:    dosage,
			Frequency: frequency,
			Class:     record.Class,
			Generic:   record.Generic,
		})
	}

	return found
}

func findFrequency(lower string) string {
	for i, pattern := range frequencyPatterns {
		if pattern.MatchString(lower) {
			return strings.ToUpper(frequencyVocabulary[i])
		}
	}
	return FrequencyAsPrescribed
}
