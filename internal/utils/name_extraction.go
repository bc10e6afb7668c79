package utils

import (
	"strings"

	"github.com/prefeitura-rio/app-contacts/internal/models"
	"golang.org/x/text/cases"
)

// patronymicSuffixes are trailing tokens of turkic patronymics ("Мамедов Эльчин Исмаил оглы")
var patronymicSuffixes = []string{
	"оглы", "оглу", "огли", "улы", "уулу",
	"кызы", "гызы", "кизи", "гизи",
	"ogly", "oglu", "ogli", "uly", "uulu",
	"kyzy", "gyzy", "kizi", "gizi", "qizi",
}

var suffixFolder = cases.Fold()

var foldedSuffixes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(patronymicSuffixes))
	for _, s := range patronymicSuffixes {
		m[suffixFolder.String(s)] = struct{}{}
	}
	return m
}()

// IsPatronymicSuffix reports whether token is one of the excluded patronymic suffixes
func IsPatronymicSuffix(token string) bool {
	_, ok := foldedSuffixes[suffixFolder.String(strings.TrimSpace(token))]
	return ok
}

// ParseFullName splits "Last First Middle" into its components.
// One token is a last name, two are last+first, three add the middle name.
// Longer names keep the first three tokens.
func ParseFullName(fullName *string) models.ParsedName {
	if fullName == nil {
		return models.ParsedName{}
	}

	parts := strings.Fields(*fullName)
	switch len(parts) {
	case 0:
		return models.ParsedName{}
	case 1:
		return models.ParsedName{LastName: &parts[0]}
	case 2:
		return models.ParsedName{LastName: &parts[0], FirstName: &parts[1]}
	case 3:
		return models.ParsedName{LastName: &parts[0], FirstName: &parts[1], MiddleName: &parts[2]}
	}

	// TODO: confirm whether a non-suffix fourth token belongs to the middle name;
	// both branches truncate to three tokens today.
	if IsPatronymicSuffix(parts[3]) {
		return models.ParsedName{LastName: &parts[0], FirstName: &parts[1], MiddleName: &parts[2]}
	}
	return models.ParsedName{LastName: &parts[0], FirstName: &parts[1], MiddleName: &parts[2]}
}

// MaskName masks a full name for privacy (e.g., "Иванов Иван Иванович" -> "Иванов И*** И*******")
func MaskName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	masked := []string{parts[0]}
	for _, p := range parts[1:] {
		r := []rune(p)
		masked = append(masked, string(r[:1])+strings.Repeat("*", len(r)-1))
	}
	return strings.Join(masked, " ")
}
