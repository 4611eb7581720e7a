package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/google/uuid"
)

const (
	// SessionDuration is 24 hours
	SessionDuration = 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// CreateSession creates a new session for a user and stores it in Redis.
// An existing session for the same user is invalidated first so the
// 24-hour timer always resets from the latest login.
func CreateSession(userID uuid.UUID) (string, error) {
	InvalidateUserSessions(userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	sessionToken := base64.URLEncoding.EncodeToString(tokenBytes)

	ctx := context.Background()
	sessionKey := SessionKeyPrefix + sessionToken
	userSessionKey := UserSessionKeyPrefix + userID.String()

	if err := database.RedisClient.Set(ctx, sessionKey, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, userSessionKey, sessionToken, SessionDuration).Err(); err != nil {
		return "", err
	}

	return sessionToken, nil
}

// ValidateSession checks a session token and returns the owning user ID.
func ValidateSession(sessionToken string) (uuid.UUID, bool, error) {
	if sessionToken == "" {
		return uuid.Nil, false, nil
	}

	ctx := context.Background()
	val, err := database.RedisClient.Get(ctx, SessionKeyPrefix+sessionToken).Result()
	if err != nil {
		return uuid.Nil, false, nil // expired or unknown
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

// InvalidateSession deletes one session token (logout).
func InvalidateSession(sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	ctx := context.Background()

	if val, err := database.RedisClient.Get(ctx, SessionKeyPrefix+sessionToken).Result(); err == nil {
		database.RedisClient.Del(ctx, UserSessionKeyPrefix+val)
	}
	return database.RedisClient.Del(ctx, SessionKeyPrefix+sessionToken).Err()
}

// InvalidateUserSessions drops any session currently held by the user.
// Used on login and after a password reset.
func InvalidateUserSessions(userID uuid.UUID) {
	ctx := context.Background()
	userSessionKey := UserSessionKeyPrefix + userID.String()

	if token, err := database.RedisClient.Get(ctx, userSessionKey).Result(); err == nil {
		database.RedisClient.Del(ctx, SessionKeyPrefix+token)
	}
	database.RedisClient.Del(ctx, userSessionKey)
}
