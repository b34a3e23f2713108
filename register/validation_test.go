package register_test

import (
	"testing"

	"github.com/logitrans/navigo-go/register"
	"github.com/stretchr/testify/require"
)

func TestNameValidation(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain name", "Ana", true},
		{"name with diacritics", "Đorđe", true},
		{"two letters", "Al", true},
		{"single letter", "A", false},
		{"contains digits", "An4", false},
		{"contains punctuation", "An!a", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fv := register.ValidatePersonalInfo(register.PersonalInfo{FirstName: tc.value})
			require.Equal(t, tc.valid, fv[register.FieldFirstName].Valid)
		})
	}
}

func TestEmailValidation(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"ana@example.com", true},
		{"ana.petrovic@mail.example.rs", true},
		{"ana@example", false},
		{"@example.com", false},
		{"ana example@mail.com", false},
		{"ana@", false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			fv := register.ValidatePersonalInfo(register.PersonalInfo{Email: tc.value})
			require.Equal(t, tc.valid, fv[register.FieldEmail].Valid)
		})
	}
}

func TestPasswordValidation(t *testing.T) {
	t.Run("missing uppercase is named in the message", func(t *testing.T) {
		fv := register.ValidatePersonalInfo(register.PersonalInfo{Password: "abcdefg1"})
		v := fv[register.FieldPassword]
		require.False(t, v.Valid)
		require.Contains(t, v.Message, "uppercase letter")
		require.NotContains(t, v.Message, "8 characters")
		require.NotContains(t, v.Message, "number")
	})

	t.Run("all requirements met", func(t *testing.T) {
		fv := register.ValidatePersonalInfo(register.PersonalInfo{Password: "Abcdefg1"})
		v := fv[register.FieldPassword]
		require.True(t, v.Valid)
		require.Equal(t, "Strong password", v.Message)
	})

	t.Run("everything missing", func(t *testing.T) {
		fv := register.ValidatePersonalInfo(register.PersonalInfo{Password: "abc"})
		v := fv[register.FieldPassword]
		require.False(t, v.Valid)
		require.Contains(t, v.Message, "8 characters")
		require.Contains(t, v.Message, "uppercase letter")
		require.Contains(t, v.Message, "number")
	})
}

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"+381601234567", true},
		{"060 123 45 67", true},
		{"(021) 123-456", true},
		{"12345678", false},
		{"1234567890123456", false},
		{"phone123", false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			fv := register.ValidatePersonalInfo(register.PersonalInfo{PhoneNumber: tc.value})
			require.Equal(t, tc.valid, fv[register.FieldPhoneNumber].Valid)
		})
	}
}

func TestEmptyFieldsAreNotValidated(t *testing.T) {
	fv := register.ValidatePersonalInfo(register.PersonalInfo{})
	require.Empty(t, fv)
	require.True(t, fv.AllValid())
}
