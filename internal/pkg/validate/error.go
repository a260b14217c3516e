package validate

import (
	"sort"
	"strings"
)

// FieldsError maps json field names to translated validation messages.
type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

// Error lists the failing fields in name order, e.g. "invalid fields: grade, name".
func (f *FieldsError) Error() string {
	if len(f.Fields) == 0 {
		return "invalid fields"
	}
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
