package register

import (
	"regexp"
	"strings"
)

// Field names used as validation keys.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPhoneNumber = "phoneNumber"
)

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\s]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[+]?[\d\s\-\(\)]{9,15}$`)

	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`\d`)
)

// FieldValidation is the outcome of validating a single field, including the
// message shown inline next to it.
type FieldValidation struct {
	Valid   bool
	Message string
}

// FieldValidations maps field names to their latest validation outcome. Only
// non-empty fields appear: emptiness is checked separately at submission.
type FieldValidations map[string]FieldValidation

// AllValid reports whether no validated field failed.
func (fv FieldValidations) AllValid() bool {
	for _, v := range fv {
		if !v.Valid {
			return false
		}
	}
	return true
}

// ValidatePersonalInfo recomputes the validation state for every filled-in
// field, the same way the form re-validates on each keystroke.
func ValidatePersonalInfo(info PersonalInfo) FieldValidations {
	fv := make(FieldValidations)

	if info.FirstName != "" {
		fv[FieldFirstName] = validateName(info.FirstName, "Valid name", "Name must be at least 2 letters")
	}
	if info.LastName != "" {
		fv[FieldLastName] = validateName(info.LastName, "Valid surname", "Surname must be at least 2 letters")
	}
	if info.Email != "" {
		fv[FieldEmail] = validateEmail(info.Email)
	}
	if info.Password != "" {
		fv[FieldPassword] = validatePassword(info.Password)
	}
	if info.PhoneNumber != "" {
		fv[FieldPhoneNumber] = validatePhone(info.PhoneNumber)
	}

	return fv
}

func validateName(name, okMsg, badMsg string) FieldValidation {
	if len([]rune(name)) >= 2 && nameRe.MatchString(name) {
		return FieldValidation{Valid: true, Message: okMsg}
	}
	return FieldValidation{Valid: false, Message: badMsg}
}

func validateEmail(email string) FieldValidation {
	if emailRe.MatchString(email) {
		return FieldValidation{Valid: true, Message: "Valid email address"}
	}
	return FieldValidation{Valid: false, Message: "Please enter a valid email address"}
}

// validatePassword names every missing requirement so the user can fix them
// all in one pass.
func validatePassword(password string) FieldValidation {
	longEnough := len(password) >= 8
	hasUpper := upperRe.MatchString(password)
	hasDigit := digitRe.MatchString(password)

	if longEnough && hasUpper && hasDigit {
		return FieldValidation{Valid: true, Message: "Strong password"}
	}

	var missing []string
	if !longEnough {
		missing = append(missing, "8 characters")
	}
	if !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if !hasDigit {
		missing = append(missing, "number")
	}
	return FieldValidation{Valid: false, Message: "Password must contain: " + strings.Join(missing, ", ")}
}

func validatePhone(phone string) FieldValidation {
	if phoneRe.MatchString(phone) {
		return FieldValidation{Valid: true, Message: "Valid phone number"}
	}
	return FieldValidation{Valid: false, Message: "Please enter a valid phone number"}
}
