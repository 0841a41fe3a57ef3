// Package rules is the fixed table of field predicates. Each predicate takes
// the string form of one field and reports whether it is well-formed. The
// predicates are pure: they never look at another field, never panic and
// keep no state.
package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aanand-mishra/userinfo-validator/internal/types"
)

// Rule pairs a field with its predicate. Tag is the name the predicate is
// registered under in go-playground/validator.
type Rule struct {
	Field types.FieldName
	Tag   string
	Check func(string) bool
}

// Table lists one Rule per field, in types.FieldOrder.
var Table = []Rule{
	{Field: types.FieldTelephone, Tag: "telephone", Check: Telephone},
	{Field: types.FieldHeight, Tag: "height", Check: Height},
	{Field: types.FieldNationalID, Tag: "snils", Check: NationalID},
	{Field: types.FieldPassportSeries, Tag: "passport_series", Check: PassportSeries},
	{Field: types.FieldInstitution, Tag: "university", Check: Institution},
	{Field: types.FieldAge, Tag: "age", Check: Age},
	{Field: types.FieldAcademicDegree, Tag: "academic_degree", Check: AcademicDegree},
	{Field: types.FieldWorldview, Tag: "worldview", Check: Worldview},
	{Field: types.FieldAddress, Tag: "address", Check: Address},
}

var (
	telephoneRe      = regexp.MustCompile(`^\+7-\(\d{3}\)-\d{3}-\d{2}-\d{2}$`)
	heightRe         = regexp.MustCompile(`^[0-2]\.\d{2}$`)
	nationalIDRe     = regexp.MustCompile(`^\d{11}$`)
	passportSeriesRe = regexp.MustCompile(`^\d{2}\s+\d{2}$`)
	institutionRe    = regexp.MustCompile(`^.*([Уу]нивер|[Аа]кадем|[TТт]ех|[Ии]нститут|им\.|[Ии]сслед|[А-Я]{2,}).*$`)
	// Word characters are Unicode-aware here: addresses are written in Cyrillic.
	addressRe = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_\s.\-]* \p{Nd}+$`)
)

// Degree names a record's academic degree must start with.
var degrees = []string{
	"Бакалавр",
	"Кандидат наук",
	"Специалист",
	"Магистр",
	"Доктор наук",
}

// Worldview suffixes: "-изм" (-ism) and "-анство" (-anity).
var worldviewSuffixes = []string{"изм", "анство"}

const (
	minAge = 14
	maxAge = 100 // exclusive
)

// Telephone accepts numbers written as +7-(DDD)-DDD-DD-DD.
func Telephone(s string) bool { return telephoneRe.MatchString(s) }

// Height accepts D.DD with a leading digit of 0, 1 or 2.
func Height(s string) bool { return heightRe.MatchString(s) }

// NationalID accepts exactly eleven digits.
func NationalID(s string) bool { return nationalIDRe.MatchString(s) }

// PassportSeries accepts two digits, whitespace, two digits.
func PassportSeries(s string) bool { return passportSeriesRe.MatchString(s) }

// Institution accepts names that look like a university, institute,
// academy, technical or research body, carry the "им." marker, or contain
// an uppercase abbreviation.
func Institution(s string) bool { return institutionRe.MatchString(s) }

// Age accepts integers in [14, 100). Anything that does not parse is
// rejected rather than reported as an error.
func Age(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return n >= minAge && n < maxAge
}

// AcademicDegree accepts strings starting with a known degree name.
func AcademicDegree(s string) bool {
	for _, d := range degrees {
		if strings.HasPrefix(s, d) {
			return true
		}
	}
	return false
}

// Worldview accepts strings ending in "изм" or "анство".
func Worldview(s string) bool {
	for _, suffix := range worldviewSuffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// Address accepts a street made of word characters, whitespace, dots and
// hyphens, followed by a space and a house number.
func Address(s string) bool { return addressRe.MatchString(s) }
