package service

import "github.com/flybg-dev/flyingsites/internal/interfaces/operation"

type RequestUserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResponseUserLogin struct {
	Token string          `json:"token"`
	User  *operation.User `json:"user"`
}

type RequestActivation struct {
	Email string `json:"email"`
}

type RequestCompleteActivation struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResponseCompleteActivation struct {
	Token string          `json:"token"`
	User  *operation.User `json:"user"`
}

type RequestCreateAccounts struct {
	Uid          uint     `json:"-"`
	IsSuperAdmin bool     `json:"-"`
	Emails       []string `json:"emails"`
}

// AccountOutcome reports what happened to one requested email.
type AccountOutcome struct {
	Email   string `json:"email"`
	Created bool   `json:"created"`
	Reason  string `json:"reason,omitempty"`
}

type ResponseCreateAccounts struct {
	Outcomes []AccountOutcome `json:"outcomes"`
}

type RequestUserProfile struct {
	Uid uint `json:"-"`
}

type UserServiceInterface interface {
	// UserLogin collapses unknown user, pending account and wrong password
	// into one generic failure so callers cannot probe registered emails.
	UserLogin(req *RequestUserLogin) *ApiResponse[ResponseUserLogin]
	// RequestActivation always answers with the same success status; a token
	// is (re)issued and mailed only when an eligible pending user exists.
	RequestActivation(req *RequestActivation) *ApiResponse[any]
	CompleteActivation(req *RequestCompleteActivation) *ApiResponse[ResponseCompleteActivation]
	CreateUserAccounts(req *RequestCreateAccounts) *ApiResponse[ResponseCreateAccounts]
	GetUserProfile(req *RequestUserProfile) *ApiResponse[operation.User]
}
