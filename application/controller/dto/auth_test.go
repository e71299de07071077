package dto

import (
	"testing"

	"attendly.io/infrastructure/validator"
)

func TestResetPasswordDTOValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload ResetPasswordDTO
		wantErr bool
	}{
		{
			name:    "valid",
			payload: ResetPasswordDTO{Email: "ada@attendly.io", Code: "123456", NewPassword: "correct-h0rse!"},
			wantErr: false,
		},
		{
			name:    "code too short",
			payload: ResetPasswordDTO{Email: "ada@attendly.io", Code: "1234", NewPassword: "correct-h0rse!"},
			wantErr: true,
		},
		{
			name:    "code not numeric",
			payload: ResetPasswordDTO{Email: "ada@attendly.io", Code: "12a456", NewPassword: "correct-h0rse!"},
			wantErr: true,
		},
		{
			name:    "weak password",
			payload: ResetPasswordDTO{Email: "ada@attendly.io", Code: "123456", NewPassword: "password"},
			wantErr: true,
		},
		{
			name:    "bad email",
			payload: ResetPasswordDTO{Email: "not-an-email", Code: "123456", NewPassword: "correct-h0rse!"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidatorInstance.ValidateStruct(tt.payload)
			if (errs != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestForgotPasswordDTOValidation(t *testing.T) {
	if errs := validator.ValidatorInstance.ValidateStruct(ForgotPasswordDTO{Email: "ada@attendly.io"}); errs != nil {
		t.Errorf("valid email should pass, got %v", errs)
	}
	if errs := validator.ValidatorInstance.ValidateStruct(ForgotPasswordDTO{}); errs == nil {
		t.Errorf("missing email must fail")
	}
}
