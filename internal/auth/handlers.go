package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/PocketCal/PC-Backend/internal/db"
	"github.com/PocketCal/PC-Backend/internal/httputil"
	"github.com/PocketCal/PC-Backend/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tokenTTL is fixed at 24 hours unless overridden by config in SetupRoutes.
var tokenTTL = token.DefaultTTL

type tokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func respondWithToken(w http.ResponseWriter, user User) {
	tok, err := token.Sign(user.Email, user.Role, tokenTTL)
	if err != nil {
		log.Println("Failed to sign token: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httputil.JSON(w, http.StatusOK, tokenResponse{Token: tok, Email: user.Email, Role: user.Role})
}

// findOrCreateUser returns the user for email, creating a viewer account
// with an empty password on first OAuth login.
func findOrCreateUser(email string) (User, error) {
	var user User
	err := db.DB.First(&user, "email = ?", email).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, err
	}

	user = User{Email: email, Role: RoleViewer}
	if err := db.DB.Create(&user).Error; err != nil {
		return User{}, err
	}
	return user, nil
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var user User

	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if user.Email == "" || user.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	if user.Role == "" {
		user.Role = RoleViewer
	}
	if !validRole(user.Role) {
		httputil.Error(w, http.StatusBadRequest, "Unknown role")
		return
	}

	// Check if email is taken
	var existing User
	if err := db.DB.First(&existing, "email = ?", user.Email).Error; err == nil {
		httputil.Error(w, http.StatusBadRequest, "Email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "Server error hashing password")
		return
	}
	user.HashedPassword = string(hashed)
	user.Password = ""

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httputil.Error(w, http.StatusBadRequest, "Email already exists")
			return
		}
		log.Println("Failed to register user: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.Message(w, "Registered")
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req User

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing fields")
		return
	}

	var user User
	if err := db.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Error(w, http.StatusBadRequest, "User not found")
			return
		}
		log.Println("Failed to look up user: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	respondWithToken(w, user)
}

// GoogleLoginHandler verifies an ID token obtained by the frontend from
// Google Sign-In, auto-creating a viewer account on first login.
func GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.IDToken == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing idToken")
		return
	}

	email, err := Google.VerifiedEmail(r.Context(), req.IDToken)
	if err != nil {
		log.Println("Google login error: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Google verification failed")
		return
	}

	user, err := findOrCreateUser(email)
	if err != nil {
		log.Println("Failed to find or create user: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithToken(w, user)
}

// GitHubLoginHandler exchanges the authorization code the frontend received
// from GitHub, resolves the account's email, and logs that user in.
func GitHubLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Code == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing code")
		return
	}

	ctx := r.Context()

	accessToken, err := GitHub.ExchangeCode(ctx, req.Code, req.RedirectURI)
	if err != nil {
		if errors.Is(err, ErrTokenExchangeFailed) {
			httputil.Error(w, http.StatusBadRequest, "GitHub token exchange failed")
			return
		}
		log.Println("GitHub OAuth error: ", err)
		httputil.Error(w, http.StatusInternalServerError, "GitHub login failed")
		return
	}

	email, err := GitHub.AccountEmail(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ErrNoUsableEmail) {
			httputil.Error(w, http.StatusBadRequest, "No usable email from GitHub")
			return
		}
		log.Println("GitHub OAuth error: ", err)
		httputil.Error(w, http.StatusInternalServerError, "GitHub login failed")
		return
	}

	user, err := findOrCreateUser(email)
	if err != nil {
		log.Println("Failed to find or create user: ", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithToken(w, user)
}

// SetTokenTTL overrides the default 24 hour token lifetime.
func SetTokenTTL(d time.Duration) {
	if d > 0 {
		tokenTTL = d
	}
}
