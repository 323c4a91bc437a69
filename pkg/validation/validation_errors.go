package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to the wording used in messages.
var FieldLabels = map[string]string{
	"password_confirmation": "password confirmation",
	"role_id":               "role",
	"company_id":            "company",
	"job_id":                "job",
	"salary_min":            "minimum salary",
	"salary_max":            "maximum salary",
	"cover_letter":          "cover letter",
	"resume_url":            "resume URL",
	"resume_path":           "resume path",
	"linkedin_url":          "LinkedIn URL",
	"github_url":            "GitHub URL",
	"twitter_url":           "Twitter URL",
	"logo_url":              "logo URL",
	"avatar_url":            "avatar URL",
}

// FormatValidationErrors converts validator.ValidationErrors into one message
// per field, keyed by the request field path ("email", "experience.0.role").
// Other errors land under "body".
func FormatValidationErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"body": err.Error()}
	}

	messages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := fieldKey(e)
		if _, seen := messages[field]; seen {
			continue
		}
		messages[field] = formatSingleError(e)
	}
	return messages
}

// fieldKey drops the root struct name from the namespace and turns slice
// indexes into dotted segments.
func fieldKey(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	} else {
		ns = e.Field()
	}
	return strings.NewReplacer("[", ".", "]", "").Replace(ns)
}

func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	if strings.Contains(field, "[") {
		field = fieldKey(e)
	}
	label := getFieldLabel(field)
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("The %s must be at least %s characters.", label, param)
		}
		return fmt.Sprintf("The %s must be at least %s.", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("The %s may not be greater than %s characters.", label, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s.", label, param)
	case "gt", "gte":
		return fmt.Sprintf("The %s must be greater than %s.", label, param)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid. Allowed: %s.", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "url":
		return fmt.Sprintf("The %s format is invalid.", label)
	case "valid_name":
		return fmt.Sprintf("The %s may only contain letters, numbers, spaces and common punctuation.", label)
	case "valid_phone":
		return fmt.Sprintf("The %s must be a phone number of 7 to 15 digits.", label)
	case "no_emoji":
		return fmt.Sprintf("The %s may not contain emoji or symbols.", label)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", getFieldLabel(toSnake(param)))
	case "gtefield":
		return fmt.Sprintf("The %s must be greater than or equal to the %s.", label, getFieldLabel(toSnake(param)))
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return strings.ReplaceAll(field, "_", " ")
}

// toSnake converts a Go field name (used in cross-field params) to snake_case.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
