package dto

type RegisterUserDTO struct {
	Name       string  `json:"name" validate:"required,max=100,name_special_char"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,password"`
	Department string  `json:"department" validate:"required,max=100"`
	EmployeeID string  `json:"employeeID" validate:"required,max=50"`
	Position   string  `json:"position" validate:"omitempty,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,e164"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordDTO struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}
