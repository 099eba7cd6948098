package models

// RegisterRequest is the body of POST /auth/register.
//
// Validation rules mirror the registration contract: a syntactically valid
// email, a display name between 1 and 100 characters, and a password of at
// least 8 characters. Validation happens before the store is touched.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is the body of PATCH /users/me and PATCH /users/{id}.
//
// Every field is optional; only supplied fields change. Pointer fields
// distinguish "absent" from a zero value so that, for example, a name may be
// cleared without touching the email.
//
// IsActive is honoured only on the privileged PATCH /users/{id} route; the
// self-service route ignores it.
type UserUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=100"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Email == nil && u.Name == nil && u.Password == nil && u.IsActive == nil
}
