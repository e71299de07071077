package validator

import "testing"

type passwordPayload struct {
	Password string `validate:"required,password"`
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "strong password", password: "correct-h0rse!", wantErr: false},
		{name: "too short", password: "a1!bcd", wantErr: true},
		{name: "no digit", password: "abcdefgh!", wantErr: true},
		{name: "no special character", password: "abcdefgh1", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatorInstance.ValidateStruct(passwordPayload{Password: tt.password})
			if (errs != nil) != tt.wantErr {
				t.Errorf("password %q: wantErr=%v, got %v", tt.password, tt.wantErr, errs)
			}
		})
	}
}

type namePayload struct {
	Name string `validate:"required,name_special_char"`
}

func TestNameValidation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain name", value: "Ada Eze", wantErr: false},
		{name: "hyphenated", value: "Jean-Luc", wantErr: false},
		{name: "apostrophe", value: "O'Brien", wantErr: false},
		{name: "digits rejected", value: "Ada123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatorInstance.ValidateStruct(namePayload{Name: tt.value})
			if (errs != nil) != tt.wantErr {
				t.Errorf("name %q: wantErr=%v, got %v", tt.value, tt.wantErr, errs)
			}
		})
	}
}

type imagePayload struct {
	Image string `validate:"required,face_image"`
}

func TestFaceImageValidation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "data url", value: "data:image/jpeg;base64,aGVsbG8=", wantErr: false},
		{name: "bare base64", value: "aGVsbG8=", wantErr: false},
		{name: "not base64", value: "hello world!!", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatorInstance.ValidateStruct(imagePayload{Image: tt.value})
			if (errs != nil) != tt.wantErr {
				t.Errorf("image %q: wantErr=%v, got %v", tt.value, tt.wantErr, errs)
			}
		})
	}
}
