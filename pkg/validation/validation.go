package validation

import (
	"unicode"
	"unicode/utf8"
)

const countryCodeLength = 2

// Validation messages returned to API callers
const (
	MsgMissingCity           = "missing city parameter"
	MsgInvalidCityCharacters = "invalid city: contains non-alphabetical, non-space values"

	MsgMissingCountry         = "missing country parameter"
	MsgCountryTooLong         = "invalid country: larger than two"
	MsgCountryTooShort        = "invalid country: shorter than two"
	MsgCountryNotLowercase    = "invalid country: not an alphabetical lowercase value"
	MsgCountryNotAlphabetical = "invalid country: contains non-alphabetical values"
)

// ValidateCity checks a city query value. A nil city means the parameter was not supplied.
func ValidateCity(city *string) []string {
	if city == nil {
		return []string{MsgMissingCity}
	}

	for _, r := range *city {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return []string{MsgInvalidCityCharacters}
		}
	}
	return []string{}
}

// ValidateCountry checks a country code query value. Length, case and alphabet checks
// are independent and accumulate in that order.
func ValidateCountry(country *string) []string {
	if country == nil {
		return []string{MsgMissingCountry}
	}

	errs := []string{}

	length := utf8.RuneCountInString(*country)
	if length > countryCodeLength {
		errs = append(errs, MsgCountryTooLong)
	}
	if length < countryCodeLength {
		errs = append(errs, MsgCountryTooShort)
	}

	if hasUppercase(*country) {
		errs = append(errs, MsgCountryNotLowercase)
	}
	if !IsAlphabetic(*country) {
		errs = append(errs, MsgCountryNotAlphabetical)
	}

	return errs
}

// IsAlphabetic reports whether every rune in s is a letter.
func IsAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
