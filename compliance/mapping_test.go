package compliance

import (
	"testing"

	"github.com/mmdatafocus/practice_backend/models"
)

func TestComplianceTypesForService_ExactMatch(t *testing.T) {
	rules := ComplianceTypesForService("Confirmation Statement")
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Type != models.ComplianceTypeConfirmationStatement {
		t.Fatalf("expected confirmation statement, got %s", rules[0].Type)
	}
	if rules[0].Source != models.ComplianceSourceCompaniesHouse {
		t.Fatalf("expected Companies House source, got %s", rules[0].Source)
	}
}

func TestComplianceTypesForService_ExactMatchMultipleObligations(t *testing.T) {
	rules := ComplianceTypesForService("Limited Company Package")
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
}

func TestComplianceTypesForService_KeywordFallback(t *testing.T) {
	cases := []struct {
		kind     string
		expected []models.ComplianceType
	}{
		{"Year-end accounts prep", []models.ComplianceType{models.ComplianceTypeAnnualAccounts}},
		{"Company secretarial duties", []models.ComplianceType{models.ComplianceTypeConfirmationStatement}},
		{"CT600 preparation", []models.ComplianceType{models.ComplianceTypeCorporationTax}},
		{"Quarterly VAT filing", []models.ComplianceType{models.ComplianceTypeVATReturn}},
		{"Accounts + VAT bundle", []models.ComplianceType{
			models.ComplianceTypeAnnualAccounts,
			models.ComplianceTypeVATReturn,
		}},
	}
	for _, tc := range cases {
		rules := ComplianceTypesForService(tc.kind)
		if len(rules) != len(tc.expected) {
			t.Fatalf("%q: expected %d rules, got %d", tc.kind, len(tc.expected), len(rules))
		}
		for i, want := range tc.expected {
			if rules[i].Type != want {
				t.Fatalf("%q rule %d: expected %s, got %s", tc.kind, i, want, rules[i].Type)
			}
		}
	}
}

func TestComplianceTypesForService_UnknownKindYieldsNothing(t *testing.T) {
	if rules := ComplianceTypesForService("Business coaching"); len(rules) != 0 {
		t.Fatalf("expected no rules, got %d", len(rules))
	}
}

func TestComplianceTypesForService_ExactWinsOverKeywords(t *testing.T) {
	// "VAT Returns" also matches the vat keyword; the catalogue entry must
	// be returned verbatim, not accumulated twice.
	if rules := ComplianceTypesForService("VAT Returns"); len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
}
