package validator

import (
	"regexp"
	"unicode/utf8"
)

var shortNameRe = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

func ClubName(name string) bool {
	return utf8.RuneCountInString(name) >= 3 && utf8.RuneCountInString(name) <= 30
}

// ClubShortName accepts lowercase slugs like "chess-club".
func ClubShortName(shortName string) bool {
	return len(shortName) >= 2 && len(shortName) <= 30 && shortNameRe.MatchString(shortName)
}

func ClubDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 500
}

func EventName(name string) bool {
	return utf8.RuneCountInString(name) >= 3 && utf8.RuneCountInString(name) <= 100
}

func PostDescription(description string) bool {
	return utf8.RuneCountInString(description) >= 1 && utf8.RuneCountInString(description) <= 2000
}
