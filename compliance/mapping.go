package compliance

import (
	"strings"

	"github.com/mmdatafocus/practice_backend/models"
)

// mappingTableVersion is bumped whenever the exact-match catalogue below
// changes, so data backfills can record which table derived an item.
const mappingTableVersion = 3

// ObligationRule is one filing obligation a service kind gives rise to.
type ObligationRule struct {
	Type        models.ComplianceType
	Description string
	Source      models.ComplianceSource
}

// serviceKindRules is the exact-match catalogue. Keys are the service kinds
// operators pick from the standard list; a kind can yield several
// obligations (e.g. a full company-secretarial engagement).
var serviceKindRules = map[string][]ObligationRule{
	"Annual Accounts": {
		{models.ComplianceTypeAnnualAccounts, "Annual accounts filing", models.ComplianceSourceCompaniesHouse},
	},
	"Statutory Accounts": {
		{models.ComplianceTypeAnnualAccounts, "Annual accounts filing", models.ComplianceSourceCompaniesHouse},
	},
	"Confirmation Statement": {
		{models.ComplianceTypeConfirmationStatement, "Confirmation statement", models.ComplianceSourceCompaniesHouse},
	},
	"Company Secretarial": {
		{models.ComplianceTypeConfirmationStatement, "Confirmation statement", models.ComplianceSourceCompaniesHouse},
	},
	"Corporation Tax": {
		{models.ComplianceTypeCorporationTax, "Corporation tax return (CT600)", models.ComplianceSourceHMRC},
	},
	"CT600": {
		{models.ComplianceTypeCorporationTax, "Corporation tax return (CT600)", models.ComplianceSourceHMRC},
	},
	"VAT Returns": {
		{models.ComplianceTypeVATReturn, "VAT return", models.ComplianceSourceHMRC},
	},
	"VAT": {
		{models.ComplianceTypeVATReturn, "VAT return", models.ComplianceSourceHMRC},
	},
	"Self Assessment": {
		{models.ComplianceTypeSelfAssessment, "Self assessment return", models.ComplianceSourceHMRC},
	},
	"Payroll": {
		{models.ComplianceTypePayrollRTI, "RTI payroll submissions", models.ComplianceSourceHMRC},
	},
	"Limited Company Package": {
		{models.ComplianceTypeAnnualAccounts, "Annual accounts filing", models.ComplianceSourceCompaniesHouse},
		{models.ComplianceTypeConfirmationStatement, "Confirmation statement", models.ComplianceSourceCompaniesHouse},
		{models.ComplianceTypeCorporationTax, "Corporation tax return (CT600)", models.ComplianceSourceHMRC},
	},
}

// keywordRule is the fallback pass for informally named services. Predicates
// are tested in order against the lower-cased kind; every match contributes
// its obligations, so a kind like "accounts + vat" yields both.
type keywordRule struct {
	match func(string) bool
	rules []ObligationRule
}

var keywordRules = []keywordRule{
	{
		match: func(k string) bool { return strings.Contains(k, "account") },
		rules: []ObligationRule{
			{models.ComplianceTypeAnnualAccounts, "Annual accounts filing", models.ComplianceSourceCompaniesHouse},
		},
	},
	{
		match: func(k string) bool {
			return strings.Contains(k, "confirmation") || strings.Contains(k, "secretarial")
		},
		rules: []ObligationRule{
			{models.ComplianceTypeConfirmationStatement, "Confirmation statement", models.ComplianceSourceCompaniesHouse},
		},
	},
	{
		match: func(k string) bool {
			return strings.Contains(k, "corporation") || strings.Contains(k, "ct600")
		},
		rules: []ObligationRule{
			{models.ComplianceTypeCorporationTax, "Corporation tax return (CT600)", models.ComplianceSourceHMRC},
		},
	},
	{
		match: func(k string) bool { return strings.Contains(k, "vat") },
		rules: []ObligationRule{
			{models.ComplianceTypeVATReturn, "VAT return", models.ComplianceSourceHMRC},
		},
	},
}

// ComplianceTypesForService maps a service kind to its filing obligations.
// Exact catalogue entries win; otherwise keyword predicates accumulate.
// A kind matching nothing generates no obligations.
func ComplianceTypesForService(kind string) []ObligationRule {
	if rules, ok := serviceKindRules[kind]; ok {
		return rules
	}

	lower := strings.ToLower(kind)
	var out []ObligationRule
	for _, kr := range keywordRules {
		if kr.match(lower) {
			out = append(out, kr.rules...)
		}
	}
	return out
}
