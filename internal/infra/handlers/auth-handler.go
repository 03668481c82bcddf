package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"audiobio/internal/common"
	"audiobio/internal/domain/dto"
	"audiobio/internal/domain/entities"
	"audiobio/internal/domain/interfaces/repository"
	Iservices "audiobio/internal/domain/interfaces/services"
	"audiobio/internal/infra/logger"
)

type AuthHandlers struct {
	Logger      *logger.Logger
	Repo        repository.UserRepository
	AuthService Iservices.IAuthService
}

func NewAuthHandlers(logger *logger.Logger, repo repository.UserRepository, authService Iservices.IAuthService) *AuthHandlers {
	return &AuthHandlers{Logger: logger, Repo: repo, AuthService: authService}
}

// Signup creates a new user record and returns a bearer token. The
// display name is split into first and last name on the first space.
func (th *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Error to process JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Name == "" || req.Password == "" {
		http.Error(w, "email, name and password are required", http.StatusBadRequest)
		return
	}

	if _, err := th.Repo.FindByEmail(r.Context(), req.Email); err == nil {
		http.Error(w, common.ErrEmailAlreadyRegistered.Error(), http.StatusBadRequest)
		return
	} else if !errors.Is(err, common.ErrUserNotFound) {
		th.Logger.Error(fmt.Sprintf("Failed to look up user %s: %s", req.Email, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	firstName, lastName, _ := strings.Cut(strings.TrimSpace(req.Name), " ")

	user := entities.NewUser(req.Email, firstName, lastName, time.Now().UTC())
	hash, err := th.AuthService.HashPassword(req.Password)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to hash password for %s: %s", req.Email, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	user.HashedPassword = hash

	if err := th.Repo.Create(r.Context(), user); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to create user %s: %s", req.Email, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := th.AuthService.CreateToken(user.Email)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to issue token for %s: %s", req.Email, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	th.Logger.Info(fmt.Sprintf("Created user %s", user.Email))
	writeJSON(w, http.StatusCreated, dto.Token{AccessToken: token, TokenType: "bearer"})
}

// Login verifies email and password from a form body and returns a
// bearer token. Unknown email and wrong password are indistinguishable
// in the response.
func (th *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error to process form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := th.Repo.FindByEmail(r.Context(), email)
	if err != nil || !th.AuthService.VerifyPassword(password, user.HashedPassword) {
		th.Logger.Warn(fmt.Sprintf("Failed login attempt for %s", email))
		w.Header().Set("WWW-Authenticate", "Bearer")
		http.Error(w, common.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	token, err := th.AuthService.CreateToken(user.Email)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to issue token for %s: %s", email, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.Token{AccessToken: token, TokenType: "bearer"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
