package refdata

import (
	"slices"
	"strings"
	"testing"

	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	catalog, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Failed to load embedded reference data: %v", err)
	}
	return catalog
}

func TestLoadEmbeddedData(t *testing.T) {
	catalog := loadTestCatalog(t)

	if catalog.DrugCount() == 0 {
		t.Fatal("Expected drug records, got none")
	}
	if catalog.InteractionCount() == 0 {
		t.Error("Expected interaction pairs, got none")
	}
	if catalog.AlternativeCount() == 0 {
		t.Error("Expected alternatives entries, got none")
	}
	if len(catalog.ConditionNames()) == 0 {
		t.Error("Expected condition rules, got none")
	}
	if catalog.DosageCount() != catalog.DrugCount() {
		t.Errorf("Expected dosage guidance for every drug, got %d of %d",
			catalog.DosageCount(), catalog.DrugCount())
	}
}

func TestInteractionLookupIsOrderIndependent(t *testing.T) {
	catalog := loadTestCatalog(t)

	for _, in := range catalog.Interactions() {
		a, b := in.Drugs[0], in.Drugs[1]

		forward, ok := catalog.Interaction(a, b)
		if !ok {
			t.Errorf("Pair (%s, %s) not found in forward order", a, b)
			continue
		}
		reverse, ok := catalog.Interaction(b, a)
		if !ok {
			t.Errorf("Pair (%s, %s) not found in reverse order", b, a)
			continue
		}

		if forward.Severity != reverse.Severity || forward.Effect != reverse.Effect {
			t.Errorf("Pair (%s, %s) differs between orderings", a, b)
		}
	}
}

func TestEmbeddedInteractionPairsAreUnique(t *testing.T) {
	catalog := loadTestCatalog(t)

	seen := make(map[string][2]string)
	for _, in := range catalog.Interactions() {
		a, b := in.Drugs[0], in.Drugs[1]
		key := a + "|" + b
		if b < a {
			key = b + "|" + a
		}
		if prev, dup := seen[key]; dup {
			t.Errorf("Pair (%s, %s) also shipped as (%s, %s)", a, b, prev[0], prev[1])
		}
		seen[key] = [2]string{a, b}
	}

	// The shipped tables once listed this pair under both orderings,
	// which made every embedded load fail the duplicate check.
	forward, ok := catalog.Interaction("clopidogrel", "omeprazole")
	if !ok {
		t.Fatal("Expected a configured clopidogrel/omeprazole pair")
	}
	reverse, _ := catalog.Interaction("omeprazole", "clopidogrel")
	if forward.Effect != reverse.Effect {
		t.Errorf("Expected one entry behind both orderings, got %q and %q",
			forward.Effect, reverse.Effect)
	}
}

func TestAlternativesStayAsymmetric(t *testing.T) {
	catalog := loadTestCatalog(t)

	alts := catalog.Alternatives("amlodipine")
	if !slices.Contains(alts, "diltiazem") {
		t.Fatalf("Expected amlodipine alternatives to contain diltiazem, got %v", alts)
	}

	if got := catalog.Alternatives("diltiazem"); got != nil {
		t.Errorf("Expected no alternatives entry for diltiazem, got %v", got)
	}
	if _, ok := catalog.Drug("diltiazem"); ok {
		t.Error("Expected diltiazem to stay alternative-only, but it has a drug record")
	}
	if !slices.Contains(catalog.Report().AlternativeOnlyNames, "diltiazem") {
		t.Error("Expected diltiazem in the alternative-only quality report")
	}
}

func TestHazardLabelClassification(t *testing.T) {
	catalog := loadTestCatalog(t)
	report := catalog.Report()

	if !slices.Contains(report.HazardLabels, "alcohol") {
		t.Errorf("Expected 'alcohol' among hazard labels, got %v", report.HazardLabels)
	}

	// A hazard label is by definition neither a drug record nor a class tag
	for _, label := range report.HazardLabels {
		if _, ok := catalog.Drug(label); ok {
			t.Errorf("Hazard label %q is a drug record", label)
		}
		if allowedClasses[label] {
			t.Errorf("Hazard label %q is a class tag", label)
		}
	}
}

func TestDrugNamesPreserveDeclarationOrder(t *testing.T) {
	catalog := loadTestCatalog(t)

	names := catalog.DrugNames()
	if names[0] != "amoxicillin" {
		t.Errorf("Expected first drug 'amoxicillin', got %q", names[0])
	}

	// The returned slice must be a copy
	names[0] = "mutated"
	if catalog.DrugNames()[0] != "amoxicillin" {
		t.Error("DrugNames returned a mutable reference to internal state")
	}
}

func validDrugs() []entities.DrugRecord {
	return []entities.DrugRecord{
		{Name: "aspirin", Class: "nsaid", Generic: "aspirin"},
		{Name: "warfarin", Class: "anticoagulant", Generic: "warfarin"},
	}
}

func TestBuildCatalogRejectsBadData(t *testing.T) {
	testCases := []struct {
		name         string
		drugs        []entities.DrugRecord
		interactions []entities.Interaction
		alternatives []entities.AlternativeSet
		dosages      []entities.DosageGuideline
		wantErr      string
	}{
		{
			name:    "unknown class tag",
			drugs:   []entities.DrugRecord{{Name: "aspirin", Class: "painmed", Generic: "aspirin"}},
			wantErr: "unknown class tag",
		},
		{
			name: "duplicate drug record",
			drugs: []entities.DrugRecord{
				{Name: "aspirin", Class: "nsaid", Generic: "aspirin"},
				{Name: "Aspirin", Class: "nsaid", Generic: "aspirin"},
			},
			wantErr: "duplicate drug record",
		},
		{
			name:  "self interaction",
			drugs: validDrugs(),
			interactions: []entities.Interaction{
				{Drugs: [2]string{"aspirin", "aspirin"}, Severity: "high", Effect: "n/a"},
			},
			wantErr: "with itself",
		},
		{
			name:  "duplicate interaction pair",
			drugs: validDrugs(),
			interactions: []entities.Interaction{
				{Drugs: [2]string{"aspirin", "warfarin"}, Severity: "high", Effect: "bleeding"},
				{Drugs: [2]string{"aspirin", "warfarin"}, Severity: "low", Effect: "bleeding"},
			},
			wantErr: "duplicate interaction pair",
		},
		{
			name:  "invalid severity",
			drugs: validDrugs(),
			interactions: []entities.Interaction{
				{Drugs: [2]string{"aspirin", "warfarin"}, Severity: "severe", Effect: "bleeding"},
			},
			wantErr: "invalid severity",
		},
		{
			name:         "alternatives for unknown drug",
			drugs:        validDrugs(),
			alternatives: []entities.AlternativeSet{{Drug: "tylenol", Alternatives: []string{"aspirin"}}},
			wantErr:      "unknown drug",
		},
		{
			name:    "dosage for unknown drug",
			drugs:   validDrugs(),
			dosages: []entities.DosageGuideline{{Drug: "tylenol"}},
			wantErr: "unknown drug",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildCatalog(tc.drugs, tc.interactions, tc.alternatives, nil, tc.dosages)
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestBuildCatalogMaterializesBothOrderings(t *testing.T) {
	catalog, err := buildCatalog(
		validDrugs(),
		[]entities.Interaction{
			{Drugs: [2]string{"warfarin", "aspirin"}, Severity: "high", Effect: "Severe bleeding risk"},
		},
		nil, nil, nil,
	)
	if err != nil {
		t.Fatalf("buildCatalog failed: %v", err)
	}

	if catalog.InteractionCount() != 1 {
		t.Errorf("Expected 1 configured pair, got %d", catalog.InteractionCount())
	}
	if _, ok := catalog.Interaction("aspirin", "warfarin"); !ok {
		t.Error("Reverse ordering not found")
	}
	if _, ok := catalog.Interaction("warfarin", "aspirin"); !ok {
		t.Error("Forward ordering not found")
	}
}

func TestInteractionsForFiltersByMember(t *testing.T) {
	catalog := loadTestCatalog(t)

	for _, in := range catalog.InteractionsFor("warfarin") {
		if in.Drugs[0] != "warfarin" && in.Drugs[1] != "warfarin" {
			t.Errorf("Pair %v does not name warfarin", in.Drugs)
		}
	}
	if len(catalog.InteractionsFor("warfarin")) == 0 {
		t.Error("Expected configured pairs for warfarin")
	}
}
