package poll

import (
	"strings"
	"unicode/utf8"

	"quickpoll/internal/platform/apperr"
)

const (
	MinTitleLen       = 3
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MinOptions        = 2
	MaxOptions        = 10
	MaxOptionLen      = 500
)

var (
	ErrTitleLength       = apperr.NewViolation("title_length", "title must be between 3 and 200 characters")
	ErrDescriptionLength = apperr.NewViolation("description_length", "description must be at most 1000 characters")
	ErrTooFewOptions     = apperr.NewViolation("too_few_options", "poll must have at least 2 options")
	ErrTooManyOptions    = apperr.NewViolation("too_many_options", "poll must have at most 10 options")
	ErrEmptyOption       = apperr.NewViolation("empty_option", "option text must not be empty")
	ErrOptionTooLong     = apperr.NewViolation("option_too_long", "option text must be at most 500 characters")
	ErrDuplicateOption   = apperr.NewViolation("duplicate_option", "option texts must be unique within a poll")
)

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < MinTitleLen || n > MaxTitleLen {
		return "", ErrTitleLength
	}
	return title, nil
}

func checkDescription(desc *string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > MaxDescriptionLen {
		return ErrDescriptionLength
	}
	return nil
}

// normalizeOptions trims each text and enforces count, emptiness, length and
// uniqueness (case-sensitive, after trimming), in that order.
func normalizeOptions(texts []string) ([]string, error) {
	if len(texts) < MinOptions {
		return nil, ErrTooFewOptions
	}
	if len(texts) > MaxOptions {
		return nil, ErrTooManyOptions
	}

	out := make([]string, 0, len(texts))
	seen := make(map[string]struct{}, len(texts))
	for _, raw := range texts {
		text := strings.TrimSpace(raw)
		if text == "" {
			return nil, ErrEmptyOption
		}
		if utf8.RuneCountInString(text) > MaxOptionLen {
			return nil, ErrOptionTooLong
		}
		if _, dup := seen[text]; dup {
			return nil, ErrDuplicateOption
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out, nil
}

func validateCreate(in CreateInput) (title string, options []string, err error) {
	if title, err = normalizeTitle(in.Title); err != nil {
		return "", nil, err
	}
	if err = checkDescription(in.Description); err != nil {
		return "", nil, err
	}
	if options, err = normalizeOptions(in.Options); err != nil {
		return "", nil, err
	}
	return title, options, nil
}
