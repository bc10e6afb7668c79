package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"golang.org/x/text/width"
)

// DefaultRegion is the region hint used for numbers written without a country code
const DefaultRegion = "RU"

// phoneCandidatePattern finds juxtaposed russian numbers: a +7/8/7 prefix followed by ten digits
// with optional separators in between.
var phoneCandidatePattern = regexp.MustCompile(`(?:\+\s*7|8|7)[\s\-().]*\d(?:[\s\-().]*\d){9}`)

// phoneValidator tries to turn one rewrite variant into a canonical E.164 number
type phoneValidator func(variant string) (string, bool)

// PhoneNormalizer turns raw phone cells into normalized E.164 candidates
type PhoneNormalizer struct {
	// StructuralFallback accepts +7/7/8 followed by ten digits even when the
	// number metadata rejects it (unknown area codes and the like).
	StructuralFallback bool
	validators         []phoneValidator
}

// NewPhoneNormalizer creates a normalizer with the standard validation passes
func NewPhoneNormalizer(structuralFallback bool) *PhoneNormalizer {
	return &PhoneNormalizer{
		StructuralFallback: structuralFallback,
		validators: []phoneValidator{
			validateForRegion,
			validateInternational,
			validateRegionIsRU,
			validateLooksRussian,
		},
	}
}

// DefaultPhoneNormalizer is used by the package level helpers
var DefaultPhoneNormalizer = NewPhoneNormalizer(true)

// ParsePhones parses a raw cell with the default normalizer
func ParsePhones(raw string) []models.ParsedPhone {
	return DefaultPhoneNormalizer.Parse(raw)
}

// Parse splits a raw cell into candidates and normalizes each of them.
// Candidates that fail every pass are kept with IsValid=false.
func (n *PhoneNormalizer) Parse(raw string) []models.ParsedPhone {
	candidates := SplitPhoneCandidates(raw)
	phones := make([]models.ParsedPhone, 0, len(candidates))
	for _, candidate := range candidates {
		phones = append(phones, n.normalizeCandidate(candidate))
	}
	return phones
}

// NormalizePhone returns the first valid normalized number of the cell, or the
// first candidate's normalized form when none is valid. ok is false when the
// cell yields no candidates at all.
func (n *PhoneNormalizer) NormalizePhone(raw string) (normalized string, ok bool) {
	phones := n.Parse(raw)
	if len(phones) == 0 {
		return "", false
	}
	for _, p := range phones {
		if p.IsValid {
			return p.Normalized, true
		}
	}
	return phones[0].Normalized, true
}

func (n *PhoneNormalizer) normalizeCandidate(candidate string) (result models.ParsedPhone) {
	result = models.ParsedPhone{Normalized: candidate, Original: candidate}

	// a malformed cell is recorded as invalid, never raised
	defer func() {
		if r := recover(); r != nil {
			result = models.ParsedPhone{Normalized: candidate, Original: candidate}
		}
	}()

	for _, variant := range phoneVariants(candidate) {
		for _, validate := range n.validators {
			if formatted, ok := validate(variant); ok {
				result.Normalized = formatted
				result.IsValid = true
				return result
			}
		}
	}

	if n.StructuralFallback {
		if formatted, ok := structuralRussianNumber(candidate); ok {
			result.Normalized = formatted
			result.IsValid = true
		}
	}
	return result
}

// SplitPhoneCandidates splits a cell on commas when it holds at least two
// non-empty segments, otherwise extracts juxtaposed numbers, otherwise returns
// the whole trimmed cell.
func SplitPhoneCandidates(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.Contains(raw, ",") {
		var segments []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				segments = append(segments, part)
			}
		}
		if len(segments) >= 2 {
			return segments
		}
	}

	var found []string
	for _, run := range candidateRuns(raw) {
		for _, loc := range run {
			found = append(found, strings.TrimSpace(raw[loc[0]:loc[1]]))
		}
	}
	if len(found) > 0 {
		return found
	}
	return []string{raw}
}

// candidateRuns groups pattern matches into runs of back-to-back numbers and keeps
// only the runs bounded on both sides; a run glued to other digits is a slice of a
// longer (foreign) number. A match starting with '+' always opens a new run.
func candidateRuns(raw string) [][][]int {
	var runs [][][]int
	prevEnd := -1
	for _, loc := range phoneCandidatePattern.FindAllStringIndex(raw, -1) {
		if len(runs) > 0 && loc[0] == prevEnd && raw[loc[0]] != '+' {
			runs[len(runs)-1] = append(runs[len(runs)-1], loc)
		} else {
			runs = append(runs, [][]int{loc})
		}
		prevEnd = loc[1]
	}

	bounded := runs[:0]
	for _, run := range runs {
		start, end := run[0][0], run[len(run)-1][1]
		leftOK := start == 0 || raw[start] == '+' || !(isDigit(raw[start-1]) || raw[start-1] == '+')
		rightOK := end == len(raw) || !isDigit(raw[end])
		if leftOK && rightOK {
			bounded = append(bounded, run)
		}
	}
	return bounded
}

// phoneVariants builds the ordered, de-duplicated rewrite variants of a candidate
func phoneVariants(candidate string) []string {
	raw := strings.TrimSpace(candidate)
	digits := OnlyDigits(raw)

	variants := []string{
		raw,
		rewriteRussianPrefix(raw),
		localizePhone(raw),
		digits,
		rewriteRussianPrefix(digits),
	}

	seen := make(map[string]struct{}, len(variants))
	unique := variants[:0]
	for _, v := range variants {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}

// rewriteRussianPrefix rewrites a leading 8 or bare 7 into +7
func rewriteRussianPrefix(s string) string {
	switch {
	case strings.HasPrefix(s, "8"):
		return "+7" + s[1:]
	case strings.HasPrefix(s, "7"):
		return "+" + s
	}
	return ""
}

// localizePhone folds full-width characters to ASCII and drops separators,
// keeping a leading plus.
func localizePhone(s string) string {
	s = width.Narrow.String(strings.TrimSpace(s))
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '(', r == ')', r == '.':
		default:
			// letters (extensions, notes) end the number
			return b.String()
		}
	}
	return b.String()
}

func validateForRegion(variant string) (string, bool) {
	num, err := phonenumbers.Parse(variant, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

func validateInternational(variant string) (string, bool) {
	num, err := phonenumbers.Parse(variant, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

func validateRegionIsRU(variant string) (string, bool) {
	num, err := phonenumbers.Parse(variant, DefaultRegion)
	if err != nil || phonenumbers.GetRegionCodeForNumber(num) != DefaultRegion {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// validateLooksRussian accepts a +7 number with a ten digit national part
// starting like a russian geographic or mobile code.
func validateLooksRussian(variant string) (string, bool) {
	num, err := phonenumbers.Parse(variant, DefaultRegion)
	if err != nil || num.GetCountryCode() != 7 {
		return "", false
	}
	national := phonenumbers.GetNationalSignificantNumber(num)
	if len(national) != 10 || !strings.ContainsRune("3489", rune(national[0])) {
		return "", false
	}
	return "+7" + national, true
}

// structuralRussianNumber accepts 7/8 followed by ten digits on shape alone
func structuralRussianNumber(candidate string) (string, bool) {
	digits := OnlyDigits(candidate)
	if len(digits) == 11 && (digits[0] == '7' || digits[0] == '8') {
		return "+7" + digits[1:], true
	}
	return "", false
}

// OnlyDigits strips every non-digit character
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range width.Narrow.String(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskPhone masks the middle of a phone number for logging (e.g. "+79161234567" -> "+7916***4567")
func MaskPhone(phone string) string {
	runes := []rune(phone)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:5]) + "***" + string(runes[len(runes)-4:])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
