// Package service holds the pure decision logic of the loan workflow:
// field extraction, intent routing, the verification gate, risk scoring
// and the underwriting engines. External lookups happen only through
// narrow collaborator ports with deterministic fallbacks.
package service

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// minLoanAmount filters out incidental small numbers (ages, counts)
	// when scanning free text for a requested loan amount.
	minLoanAmount = 1000

	// Plausible monthly salary range used by the fallback scan.
	minSalary = 5000
	maxSalary = 500000

	lakh = 100000
)

var (
	numberPattern     = regexp.MustCompile(`[\d,]+`)
	lakhPattern       = regexp.MustCompile(`(\d+)\s*lakh`)
	labeledSalaryExpr = regexp.MustCompile(`(?:salary|earn|income|monthly)\s*(?:is|of)?\s*(\d[\d,]*)`)
)

// Match is the result of a best-effort field extraction. A miss is a
// normal outcome, never an error.
type Match struct {
	Value int64
	Found bool
}

func matched(v int64) Match { return Match{Value: v, Found: true} }

// ExtractLoanAmount scans free text for a requested loan amount. The first
// number of at least 1000 wins; an explicit "<N> lakh" mention overrides
// it with N * 100000.
func ExtractLoanAmount(text string) Match {
	result := Match{}
	for _, token := range numberPattern.FindAllString(text, -1) {
		n, err := parseAmount(token)
		if err != nil {
			continue
		}
		if n >= minLoanAmount {
			result = matched(n)
			break
		}
	}

	if m := lakhPattern.FindStringSubmatch(strings.ToLower(text)); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			result = matched(n * lakh)
		}
	}
	return result
}

// ExtractSalary scans free text for a monthly salary. A labeled mention
// ("salary is 50000", "earn 30000") takes precedence; otherwise the first
// freestanding number in a plausible salary range is used.
func ExtractSalary(text string) Match {
	lower := strings.ToLower(text)
	if m := labeledSalaryExpr.FindStringSubmatch(lower); m != nil {
		if n, err := parseAmount(m[1]); err == nil {
			return matched(n)
		}
	}

	for _, token := range numberPattern.FindAllString(text, -1) {
		n, err := parseAmount(token)
		if err != nil {
			continue
		}
		if n >= minSalary && n <= maxSalary {
			return matched(n)
		}
	}
	return Match{}
}

func parseAmount(token string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(token, ",", ""), 10, 64)
}
