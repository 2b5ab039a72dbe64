package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/truassets/truassets-server/internal/common"
	"github.com/truassets/truassets-server/internal/models"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT for the given user and provider.
func signJWT(user *models.User, provider string, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
		"provider": provider,
		"iss":      "truassets-server",
		"iat":      now.Unix(),
		"exp":      now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// userResponse builds a safe response map for a user, omitting the password hash.
func userResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"avatar_url": user.AvatarURL,
		"created_at": user.CreatedAt,
	}
}

// --- Auth handlers ---

// handleAuthLogin handles POST /api/auth/login - authenticate with email and password.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	store := s.app.Storage.UserStore()

	user, err := store.GetByEmail(ctx, req.Email)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if user.PasswordHash == "" {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	passwordBytes := []byte(req.Password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes); err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	user.LastLoginAt = time.Now()
	if err := store.Save(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record login time")
	}

	token, err := signJWT(user, "email", &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT for login")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"token": token,
			"user":  userResponse(user),
		},
	})
}

// handleAuthGoogle handles POST /api/auth/google - sign in with a verified
// Google identity payload. The front end performs the Google sign-in flow
// and posts the resulting profile here.
func (s *Server) handleAuthGoogle(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		GoogleID  string `json:"google_id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.GoogleID == "" || req.Email == "" {
		WriteError(w, http.StatusBadRequest, "google_id and email are required")
		return
	}

	user := s.findOrCreateGoogleUser(r.Context(), req.GoogleID, req.Email, req.Name, req.AvatarURL)
	if user == nil {
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := signJWT(user, "google", &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT for Google login")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"token": token,
			"user":  userResponse(user),
		},
	})
}

// findOrCreateGoogleUser looks up or creates a user for a Google identity.
// It first checks by Google ID, then by email for account linking.
func (s *Server) findOrCreateGoogleUser(ctx context.Context, googleID, email, name, avatarURL string) *models.User {
	store := s.app.Storage.UserStore()

	userID := "user_google_" + googleID
	user, err := store.Get(ctx, userID)
	if err == nil {
		changed := false
		if user.Email != email {
			user.Email = email
			changed = true
		}
		if name != "" && user.Name != name {
			user.Name = name
			changed = true
		}
		if avatarURL != "" && user.AvatarURL != avatarURL {
			user.AvatarURL = avatarURL
			changed = true
		}
		user.LastLoginAt = time.Now()
		if changed {
			store.Save(ctx, user)
		}
		return user
	}

	// Link to an existing email/password account
	if existing, err := store.GetByEmail(ctx, email); err == nil {
		if existing.GoogleID == "" {
			existing.GoogleID = googleID
		}
		if avatarURL != "" {
			existing.AvatarURL = avatarURL
		}
		existing.LastLoginAt = time.Now()
		store.Save(ctx, existing)
		return existing
	}

	user = &models.User{
		ID:          userID,
		Email:       email,
		Name:        name,
		Role:        models.UserRoleInvestor,
		GoogleID:    googleID,
		AvatarURL:   avatarURL,
		CreatedAt:   time.Now(),
		LastLoginAt: time.Now(),
	}
	if err := store.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create Google user")
		return nil
	}

	s.logger.Info().Str("user_id", userID).Str("email", email).Msg("Created user from Google identity")
	return user
}

// handleAuthValidate handles GET /api/auth/validate - validate a JWT token.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		WriteError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := validateJWT(tokenString, []byte(s.app.Config.Auth.JWTSecret))
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		WriteError(w, http.StatusUnauthorized, "invalid token claims")
		return
	}

	user, err := s.app.Storage.UserStore().Get(r.Context(), sub)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"user": userResponse(user),
		},
	})
}

// newUserID generates a user record ID.
func newUserID() string {
	return "user_" + uuid.New().String()[:8]
}
