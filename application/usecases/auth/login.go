package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"attendly.io/application/repository"
	authinfra "attendly.io/infrastructure/auth"
	"attendly.io/infrastructure/cryptography"
	"attendly.io/infrastructure/database/repository/cache"
	"attendly.io/infrastructure/lockout"
	"attendly.io/infrastructure/logger"
	messagequeue "attendly.io/infrastructure/message_queue"
	queue_tasks "attendly.io/infrastructure/message_queue/tasks"
	mq_types "attendly.io/infrastructure/message_queue/types"
	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("this account has been deactivated")
)

const sessionTTL = 24 * time.Hour

// LoginGuard throttles password authentication. Face-verified
// attendance marking never passes through it.
var LoginGuard = newLoginGuard()

func newLoginGuard() *lockout.Guard {
	guard := lockout.NewGuard(lockout.RedisAccountStore{}, lockout.RedisAttemptWindow{})
	guard.OnLock = notifyAccountLocked
	return guard
}

// notifyAccountLocked emails the owner when a lock starts. It runs off
// the request path on the guard's goroutine.
func notifyAccountLocked(accountID string, until time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := repository.UserRepo().FindByID(ctx, accountID)
	if err != nil || user == nil {
		logger.Error("could not load account for lockout alert", logger.LoggerOptions{
			Key:  "accountID",
			Data: accountID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}

	payload, _ := json.Marshal(queue_tasks.EmailPayload{
		To:       user.Email,
		Subject:  "Your Attendly account is temporarily locked",
		Template: "lockout_alert",
		Opts: map[string]any{
			"Name":  user.Name,
			"Until": until.Format(time.RFC1123),
		},
	})
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  payload,
		Priority: mq_types.High,
	})
}

func sessionKey(userID string) string {
	return fmt.Sprintf("%s-session", userID)
}

// LoginUser authenticates an email and password. Throttling happens
// in two places, the source address window before the password check
// and the per-account failure count after it. Lock state is mirrored
// onto the user document so it survives alongside the account.
func LoginUser(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := LoginGuard.AllowAttempt(ctx, input.IPAddress); err != nil {
		return nil, err
	}

	userRepo := repository.UserRepo()
	user, err := userRepo.FindOneByFilter(ctx, map[string]interface{}{
		"email": input.Email,
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, lockout.LockedError{Until: *user.LockedUntil}
	}
	if until, err := LoginGuard.Locked(ctx, user.ID); err != nil {
		return nil, err
	} else if until != nil {
		return nil, lockout.LockedError{Until: *until}
	}

	if !cryptography.CryptoHahser.VerifyHashData(user.Password, input.Password) {
		state, failureErr := LoginGuard.RecordFailure(ctx, user.ID)
		mirror := map[string]interface{}{
			"loginFailureCount": state.Count,
		}
		if state.LockedUntil != nil {
			mirror["lockedUntil"] = *state.LockedUntil
		}
		userRepo.UpdatePartialByID(ctx, user.ID, mirror)
		if errors.Is(failureErr, lockout.ErrAccountLocked) {
			return nil, failureErr
		}
		return nil, ErrInvalidCredentials
	}

	if err := LoginGuard.RecordSuccess(ctx, user.ID); err != nil {
		logger.Error("could not reset login failure state", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		})
	}

	issuedAt := now.Unix()
	token, err := authinfra.GenerateAuthToken(authinfra.ClaimsData{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  issuedAt,
		ExpiresAt: now.Add(sessionTTL).Unix(),
		DeviceID:  input.DeviceID,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	if !cache.Cache.CreateEntry(sessionKey(user.ID), *token, sessionTTL) {
		return nil, errors.New("could not create session")
	}

	userRepo.UpdatePartialByID(ctx, user.ID, map[string]interface{}{
		"lastLogin":         now,
		"deviceID":          input.DeviceID,
		"userAgent":         input.UserAgent,
		"loginFailureCount": int64(0),
		"lockedUntil":       nil,
	})

	logger.Info("user signed in", logger.LoggerOptions{
		Key:  "userID",
		Data: user.ID,
	})

	return &LoginOutput{
		Token:    *token,
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     string(user.Role),
		Enrolled: user.FaceEnrolled,
	}, nil
}

// IsUserSignedIn validates a bearer token against the live session.
func IsUserSignedIn(authToken string, deviceID string) AuthResult {
	token, err := authinfra.DecodeAuthToken(authToken)
	if err != nil {
		return AuthResult{ErrorMessage: "unauthorized access"}
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AuthResult{ErrorMessage: "unauthorized access"}
	}

	userID, _ := mapClaims["userID"].(string)
	if userID == "" {
		return AuthResult{ErrorMessage: "unauthorized access"}
	}

	session := cache.Cache.FindOne(sessionKey(userID))
	if session == nil || *session != authToken {
		return AuthResult{ErrorMessage: "this session has expired"}
	}

	claimedDevice, _ := mapClaims["deviceID"].(string)
	if deviceID != "" && claimedDevice != deviceID {
		return AuthResult{ErrorMessage: "unauthorized device"}
	}

	email, _ := mapClaims["email"].(string)
	name, _ := mapClaims["name"].(string)
	role, _ := mapClaims["role"].(string)
	userAgent, _ := mapClaims["userAgent"].(string)

	return AuthResult{
		IsAuthenticated: true,
		UserID:          userID,
		Email:           email,
		Name:            name,
		Role:            role,
		DeviceID:        claimedDevice,
		UserAgent:       userAgent,
	}
}

// SignOutUser tears the live session down.
func SignOutUser(userID string, reason string) {
	authinfra.SignOutUser(sessionKey(userID), reason)
}
