package auth

type AuthResult struct {
	IsAuthenticated bool
	UserID          string
	Email           string
	Name            string
	Role            string
	DeviceID        string
	UserAgent       string
	ErrorMessage    string
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	DeviceID  string
	UserAgent string
}

type ResetPasswordInput struct {
	Email       string
	Code        string
	NewPassword string
}

type LoginOutput struct {
	Token    string
	UserID   string
	Name     string
	Email    string
	Role     string
	Enrolled bool
}
