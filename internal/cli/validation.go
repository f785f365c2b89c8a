package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation checks interactive input before it reaches the warehouse core.
// The core trusts its callers, so every range and format rule lives here.
type Validation struct {
	validate *validator.Validate
}

func NewValidation() *Validation {
	return &Validation{validate: validator.New()}
}

// IntInRange parses the input as an integer and checks it against the
// inclusive min/max bounds.
func (v *Validation) IntInRange(input string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, errors.New("must be a number")
	}

	if err := v.validate.Var(n, fmt.Sprintf("gte=%d,lte=%d", min, max)); err != nil {
		return 0, fmt.Errorf("must be between %d and %d", min, max)
	}

	return n, nil
}

// RequiredText trims the input and rejects an empty result.
func (v *Validation) RequiredText(input string) (string, error) {
	input = strings.TrimSpace(input)
	if err := v.validate.Var(input, "required"); err != nil {
		return "", errors.New("must not be empty")
	}

	return input, nil
}

// dateLayouts are the formats accepted for expiration dates, most specific
// first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date parses the input as a calendar date or timestamp. Layouts without an
// explicit zone are read as UTC.
func (v *Validation) Date(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.New("date could not be parsed")
}
