package validation

import "strings"

// FieldError is a single rule violation on a form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors accumulates every violation found while validating a form.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// For returns the first message recorded for field, or "".
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e Errors) Has(field string) bool {
	return e.For(field) != ""
}

// Messages returns every message in the order it was recorded.
func (e Errors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}
