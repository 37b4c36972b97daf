package auth

// RegisterDTO is the transport shape for the registration endpoint. Field
// names match the frontend payload.
type RegisterDTO struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RegisterDTO) Validate() error {
	if d.FullName == "" || d.Username == "" || d.Phone == "" || d.Email == "" || d.Password == "" {
		return ValidationError{Msg: "fullName, username, phone, email and password are required"}
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}
