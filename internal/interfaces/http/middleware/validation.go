package middleware

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

var nifControlLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// SetupValidator configures gin's validator engine: error messages use the
// json/form field names and the Spanish tax id validator is registered.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})

	return v.RegisterValidation("es_taxid", validateSpanishTaxID)
}

// validateSpanishTaxID accepts a NIF, NIE or CIF. NIF and NIE control
// letters are checked; for CIF only the structure is verified since the
// control character algorithm differs by entity type.
func validateSpanishTaxID(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.ReplaceAll(fl.Field().String(), "-", ""))
	value = strings.TrimSpace(value)
	if len(value) != 9 {
		return false
	}

	switch {
	case isDigits(value[:8]):
		// NIF: 8 digits plus control letter.
		return value[8] == nifLetter(value[:8])
	case strings.ContainsRune("XYZ", rune(value[0])) && isDigits(value[1:8]):
		// NIE: X/Y/Z maps to a leading digit, then NIF control applies.
		mapped := string('0'+byte(strings.IndexByte("XYZ", value[0]))) + value[1:8]
		return value[8] == nifLetter(mapped)
	case strings.ContainsRune("ABCDEFGHJNPQRSUVW", rune(value[0])) && isDigits(value[1:8]):
		// CIF: entity letter, 7 digits, control digit or letter.
		last := value[8]
		return (last >= '0' && last <= '9') || (last >= 'A' && last <= 'J')
	default:
		return false
	}
}

func nifLetter(digits string) byte {
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return nifControlLetters[n%23]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatValidationErrors turns validator errors into response details.
func FormatValidationErrors(err error) []dto.ValidationDetail {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.ValidationDetail{{Field: "request", Message: err.Error()}}
	}

	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "es_taxid":
		return "must be a valid NIF, NIE or CIF"
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}
