// Package service
package service

import (
	"errors"
	"time"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/thanhpk/randstr"
)

type UserService struct {
	logger        log.LoggerInterface
	emailService  EmailServiceInterface
	config        *c.HttpServerConfig
	userOperation operation.UserOperationInterface
}

func NewUserService(
	logger log.LoggerInterface,
	emailService EmailServiceInterface,
	config *c.HttpServerConfig,
	userOperation operation.UserOperationInterface,
) *UserService {
	return &UserService{
		logger:        logger,
		emailService:  emailService,
		config:        config,
		userOperation: userOperation,
	}
}

var (
	// ErrBadCredentials deliberately covers unknown user, pending account and
	// wrong password alike, so login cannot be used to probe registered emails.
	ErrBadCredentials = ApiStatus{StatusName: "WRONG_USERNAME_OR_PASSWORD", Description: "wrong username or password", HttpCode: Unauthorized}
	SuccessLogin      = ApiStatus{StatusName: "LOGIN_SUCCESS", Description: "login success", HttpCode: Ok}
)

func (userService *UserService) UserLogin(req *RequestUserLogin) *ApiResponse[ResponseUserLogin] {
	if req.Username == "" || req.Password == "" {
		return NewApiResponse[ResponseUserLogin](&ErrIllegalParam, Unsatisfied, nil)
	}

	user, err := userService.userOperation.GetUserByUsername(req.Username)
	if err != nil {
		if !errors.Is(err, operation.ErrUserNotFound) {
			return NewApiResponse[ResponseUserLogin](&ErrDatabaseFail, Unsatisfied, nil)
		}
		return NewApiResponse[ResponseUserLogin](&ErrBadCredentials, Unsatisfied, nil)
	}

	if !user.IsActive || !userService.userOperation.VerifyUserPassword(user, req.Password) {
		return NewApiResponse[ResponseUserLogin](&ErrBadCredentials, Unsatisfied, nil)
	}

	token := NewClaims(userService.config.JWT, user)
	return NewApiResponse(&SuccessLogin, Unsatisfied, &ResponseUserLogin{
		User:  user,
		Token: token.GenerateKey(),
	})
}

var (
	// SuccessActivationRequest is returned whether or not a matching pending
	// user exists; the outcome only shows up in the mailbox.
	SuccessActivationRequest = ApiStatus{StatusName: "ACTIVATION_REQUESTED", Description: "if the email is registered and pending, an activation message has been sent", HttpCode: Ok}
)

func (userService *UserService) issueActivationToken(user *operation.User) {
	token := randstr.String(userService.config.Limits.ActivationTokenLength)
	expiry := time.Now().Add(userService.config.Email.ActivationExpiredDuration)
	if err := userService.userOperation.RenewActivationToken(user, token, expiry); err != nil {
		userService.logger.ErrorF("Fail to renew activation token for %s: %v", user.Email, err)
		return
	}
	if err := userService.emailService.SendActivationEmail(user.Email, token, expiry); err != nil {
		userService.logger.WarnF("Fail to send activation email to %s: %v", user.Email, err)
	}
}

func (userService *UserService) RequestActivation(req *RequestActivation) *ApiResponse[any] {
	if req.Email == "" {
		return NewApiResponse[any](&ErrIllegalParam, Unsatisfied, nil)
	}
	if res := emailValidator.CheckString(req.Email); res != nil {
		return NewApiResponse[any](res, Unsatisfied, nil)
	}

	user, err := userService.userOperation.GetUserByEmail(req.Email)
	if err == nil && !user.IsActive {
		userService.issueActivationToken(user)
	}
	return NewApiResponse[any](&SuccessActivationRequest, Unsatisfied, nil)
}

var (
	ErrTokenInvalid   = ApiStatus{StatusName: "TOKEN_INVALID", Description: "activation token is invalid or expired", HttpCode: BadRequest}
	ErrUsernameInUse  = ApiStatus{StatusName: "USERNAME_IN_USE", Description: "username is already taken", HttpCode: Conflict}
	SuccessActivation = ApiStatus{StatusName: "ACTIVATION_SUCCESS", Description: "account activated", HttpCode: Ok}
)

func (userService *UserService) CompleteActivation(req *RequestCompleteActivation) *ApiResponse[ResponseCompleteActivation] {
	if req.Token == "" || req.Username == "" || req.Password == "" {
		return NewApiResponse[ResponseCompleteActivation](&ErrLackParam, Unsatisfied, nil)
	}
	if res := usernameValidator.CheckString(req.Username); res != nil {
		return NewApiResponse[ResponseCompleteActivation](res, Unsatisfied, nil)
	}
	if res := passwordValidator.CheckString(req.Password); res != nil {
		return NewApiResponse[ResponseCompleteActivation](res, Unsatisfied, nil)
	}

	user, err := userService.userOperation.GetUserByToken(req.Token)
	if err != nil {
		if !errors.Is(err, operation.ErrUserNotFound) {
			return NewApiResponse[ResponseCompleteActivation](&ErrDatabaseFail, Unsatisfied, nil)
		}
		return NewApiResponse[ResponseCompleteActivation](&ErrTokenInvalid, Unsatisfied, nil)
	}
	if user.TokenExpiry == nil || time.Now().After(*user.TokenExpiry) {
		return NewApiResponse[ResponseCompleteActivation](&ErrTokenInvalid, Unsatisfied, nil)
	}

	if err := userService.userOperation.ActivateUser(user, req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, operation.ErrUsernameTaken):
			return NewApiResponse[ResponseCompleteActivation](&ErrUsernameInUse, Unsatisfied, nil)
		default:
			return NewApiResponse[ResponseCompleteActivation](&ErrDatabaseFail, Unsatisfied, nil)
		}
	}

	userService.logger.InfoF("User %s activated as %s", user.Email, user.Username)
	token := NewClaims(userService.config.JWT, user)
	return NewApiResponse(&SuccessActivation, Unsatisfied, &ResponseCompleteActivation{
		User:  user,
		Token: token.GenerateKey(),
	})
}

var (
	ErrTooManyAccounts    = ApiStatus{StatusName: "TOO_MANY_ACCOUNTS", Description: "too many accounts in one request", HttpCode: BadRequest}
	SuccessCreateAccounts = ApiStatus{StatusName: "CREATE_ACCOUNTS_SUCCESS", Description: "accounts created", HttpCode: Ok}
)

// CreateUserAccounts bulk-creates pending users and mails each an activation
// link. Emails already known are reported, not failed.
func (userService *UserService) CreateUserAccounts(req *RequestCreateAccounts) *ApiResponse[ResponseCreateAccounts] {
	if !req.IsSuperAdmin {
		return NewApiResponse[ResponseCreateAccounts](&ErrNoPermission, Unsatisfied, nil)
	}
	if len(req.Emails) == 0 {
		return NewApiResponse[ResponseCreateAccounts](&ErrLackParam, Unsatisfied, nil)
	}
	if len(req.Emails) > userService.config.Limits.BulkAccountsMax {
		return NewApiResponse[ResponseCreateAccounts](&ErrTooManyAccounts, Unsatisfied, nil)
	}

	outcomes := make([]AccountOutcome, 0, len(req.Emails))
	for _, email := range req.Emails {
		if res := emailValidator.CheckString(email); res != nil {
			outcomes = append(outcomes, AccountOutcome{Email: email, Created: false, Reason: res.Description})
			continue
		}
		token := randstr.String(userService.config.Limits.ActivationTokenLength)
		expiry := time.Now().Add(userService.config.Email.ActivationExpiredDuration)
		user, err := userService.userOperation.CreatePendingUser(email, token, expiry)
		switch {
		case errors.Is(err, operation.ErrEmailTaken):
			outcomes = append(outcomes, AccountOutcome{Email: email, Created: false, Reason: "email already registered"})
			continue
		case err != nil:
			outcomes = append(outcomes, AccountOutcome{Email: email, Created: false, Reason: "internal error"})
			continue
		}
		if err := userService.emailService.SendActivationEmail(user.Email, token, expiry); err != nil {
			userService.logger.WarnF("Fail to send activation email to %s: %v", user.Email, err)
		}
		outcomes = append(outcomes, AccountOutcome{Email: user.Email, Created: true})
	}
	return NewApiResponse(&SuccessCreateAccounts, Unsatisfied, &ResponseCreateAccounts{Outcomes: outcomes})
}

var (
	SuccessGetProfile = ApiStatus{StatusName: "GET_PROFILE_SUCCESS", Description: "profile fetched", HttpCode: Ok}
)

func (userService *UserService) GetUserProfile(req *RequestUserProfile) *ApiResponse[operation.User] {
	user, res := CallDBFuncAndCheckError[operation.User, operation.User](func() (*operation.User, error) {
		return userService.userOperation.GetUserByUid(req.Uid)
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessGetProfile, Unsatisfied, user)
}
