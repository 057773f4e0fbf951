package matcher

import (
	"testing"

	"github.com/ManolyaGambira/prescriptions-api/refdata"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()

	catalog, err := refdata.NewLoader("").Load()
	if err != nil {
		t.Fatalf("Failed to load embedded reference data: %v", err)
	}
	return New(catalog)
}

func TestFindDeduplicatesMentions(t *testing.T) {
	m := newTestMatcher(t)

	found := m.Find("Take Aspirin 100mg od, then aspirin again in the evening")
	if len(found) != 1 {
		t.Fatalf("Expected 1 match, got %d: %v", len(found), found)
	}

	got := found[0]
	if got.Name != "aspirin" {
		t.Errorf("Expected name 'aspirin', got %q", got.Name)
	}
	if got.Dosage != "100 mg" {
		t.Errorf("Expected dosage '100 mg', got %q", got.Dosage)
	}
	if got.Frequency != "OD" {
		t.Errorf("Expected frequency 'OD', got %q", got.Frequency)
	}
	if got.Class != "nsaid" {
		t.Errorf("Expected class 'nsaid', got %q", got.Class)
	}
}

func TestFindEmptyText(t *testing.T) {
	m := newTestMatcher(t)

	testCases := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
		{"no known drugs", "take two of the blue pills daily"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if found := m.Find(tc.text); len(found) != 0 {
				t.Errorf("Expected no matches, got %v", found)
			}
		})
	}
}

func TestFindReturnsCatalogOrder(t *testing.T) {
	m := newTestMatcher(t)

	// amoxicillin is declared before ibuprofen in the drug table, the
	// mention order in the text must not matter
	found := m.Find("ibuprofen after food, amoxicillin three times daily")
	if len(found) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(found), found)
	}
	if found[0].Name != "amoxicillin" || found[1].Name != "ibuprofen" {
		t.Errorf("Expected catalog order [amoxicillin ibuprofen], got [%s %s]",
			found[0].Name, found[1].Name)
	}
}

func TestFindWordBoundary(t *testing.T) {
	m := newTestMatcher(t)

	// "aspirins" must not match "aspirin" but "aspirin," must
	found := m.Find("aspirins are in the cabinet")
	for _, f := range found {
		if f.Name == "aspirin" {
			t.Error("Matched 'aspirin' inside 'aspirins'")
		}
	}

	found = m.Find("take aspirin, with water")
	if len(found) != 1 || found[0].Name != "aspirin" {
		t.Errorf("Expected aspirin match before punctuation, got %v", found)
	}
}

func TestFindDoseExtraction(t *testing.T) {
	m := newTestMatcher(t)

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"name then number with unit", "aspirin 100mg", "100 mg"},
		{"colon separator", "aspirin: 75 mg", "75 mg"},
		{"hyphen separator", "aspirin - 81mg", "81 mg"},
		{"unit defaults to mg", "aspirin 100", "100 mg"},
		{"decimal dose", "aspirin 2.5 mg", "2.5 mg"},
		{"number and unit before name", "100 mg aspirin", "100 mg"},
		{"ml unit", "aspirin 5ml", "5 ml"},
		{"no dose", "take aspirin as needed", "Not specified"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			found := m.Find(tc.text)
			if len(found) != 1 {
				t.Fatalf("Expected 1 match, got %d: %v", len(found), found)
			}
			if found[0].Dosage != tc.want {
				t.Errorf("Expected dosage %q, got %q", tc.want, found[0].Dosage)
			}
		})
	}
}

func TestFindFrequencyExtraction(t *testing.T) {
	m := newTestMatcher(t)

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"segment code", "aspirin 1-0-1", "1-0-1"},
		{"abbreviation uppercased", "aspirin tds", "TDS"},
		{"stat", "aspirin stat", "STAT"},
		{"vocabulary order wins", "aspirin od, pattern 1-0-0 noted", "1-0-0"},
		{"no frequency", "aspirin with breakfast", "As prescribed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			found := m.Find(tc.text)
			if len(found) != 1 {
				t.Fatalf("Expected 1 match, got %d: %v", len(found), found)
			}
			if found[0].Frequency != tc.want {
				t.Errorf("Expected frequency %q, got %q", tc.want, found[0].Frequency)
			}
		})
	}
}

// The dose and frequency searches run over the full text, not a window
// around the mention. These tests pin that behavior down so a change to it
// is a deliberate one.

func TestFindDoseUsesFirstMatchInText(t *testing.T) {
	m := newTestMatcher(t)

	found := m.Find("aspirin 200mg in the morning, reduce to aspirin 100mg later")
	if len(found) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(found))
	}
	if found[0].Dosage != "200 mg" {
		t.Errorf("Expected first dose '200 mg', got %q", found[0].Dosage)
	}
}

func TestFindFrequencySharedAcrossDrugs(t *testing.T) {
	m := newTestMatcher(t)

	// The od belongs to aspirin in a clinical reading, but the scan is
	// unscoped and reports it for metformin too
	found := m.Find("aspirin od and metformin 500mg")
	if len(found) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(found), found)
	}
	for _, f := range found {
		if f.Frequency != "OD" {
			t.Errorf("Expected shared frequency 'OD' for %s, got %q", f.Name, f.Frequency)
		}
	}
}

func TestFindMultiWordName(t *testing.T) {
	m := newTestMatcher(t)

	found := m.Find("amoxicillin-clavulanic acid 625mg bd for 7 days")

	names := make(map[string]bool)
	for _, f := range found {
		names[f.Name] = true
	}

	if !names["amoxicillin-clavulanic acid"] {
		t.Errorf("Expected multi-word match, got %v", found)
	}
	// The hyphen is a word boundary, so the plain name matches inside the
	// combination name as well. Both entries are reported.
	if !names["amoxicillin"] {
		t.Errorf("Expected embedded 'amoxicillin' match, got %v", found)
	}
}
