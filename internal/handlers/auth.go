package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/api"
	"github.com/JohnEvansOkyere/BodyAura-Website-sub000/internal/session"
)

type AuthHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.Token(r) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(h.Templates, h.Sessions, w, r, "login.html", nil)
}

// LoginPost exchanges credentials for a token. A failed login renders its
// own message here instead of going through the global 401 policy; the
// session teardown/redirect rule only applies to calls made while signed in.
func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.Sessions.AddFlash(w, r, "error", "Email and password are required.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := h.API.Login(r.Context(), email, password)
	if err != nil {
		h.Sessions.AddFlash(w, r, "error", loginErrorCopy(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.SignIn(w, r, token.AccessToken, token.User); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	// Seed the cart badge from the authoritative cart. Best effort; the
	// badge reconciles on the next cart view anyway.
	if cart, err := h.API.WithToken(token.AccessToken).GetCart(r.Context()); err == nil {
		h.Sessions.SetCartCount(w, r, cart.TotalItems)
	}

	slog.Info("Login successful", "user_id", token.User.ID)
	h.Sessions.AddFlash(w, r, "success", "Welcome back, "+token.User.FullName+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginErrorCopy picks user-facing copy for a failed login by inspecting
// the backend's error detail.
func loginErrorCopy(err error) string {
	if errors.Is(err, api.ErrBackendUnavailable) {
		return "Cannot reach the server. Please check your connection and try again."
	}
	detail := strings.ToLower(api.Detail(err))
	switch {
	case strings.Contains(detail, "not found"):
		return "No account found for that email address."
	case strings.Contains(detail, "password"), strings.Contains(detail, "incorrect"):
		return "Incorrect email or password."
	}
	return "Login failed. Please try again."
}

func (h *AuthHandler) SignupGet(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.Token(r) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderSignupErrors(w, r, api.SignupRequest{}, nil)
}

func (h *AuthHandler) SignupPost(w http.ResponseWriter, r *http.Request) {
	req := api.SignupRequest{
		Email:    strings.TrimSpace(r.FormValue("email")),
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Password: r.FormValue("password"),
	}

	fieldErrors := validateSignup(req)
	if len(fieldErrors) > 0 {
		h.renderSignupErrors(w, r, req, fieldErrors)
		return
	}

	token, err := h.API.Signup(r.Context(), req)
	if err != nil {
		var ve *api.ValidationError
		if errors.As(err, &ve) {
			h.renderSignupErrors(w, r, req, ve.Fields)
			return
		}
		if errors.Is(err, api.ErrBackendUnavailable) {
			h.Sessions.AddFlash(w, r, "error", "Cannot reach the server. Please check your connection and try again.")
		} else if detail := api.Detail(err); detail != "" {
			h.Sessions.AddFlash(w, r, "error", detail)
		} else {
			h.Sessions.AddFlash(w, r, "error", "Signup failed. Please try again.")
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.SignIn(w, r, token.AccessToken, token.User); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Signup successful", "user_id", token.User.ID)
	h.Sessions.AddFlash(w, r, "success", "Welcome to BodyAura, "+token.User.FullName+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderSignupErrors(w http.ResponseWriter, r *http.Request, req api.SignupRequest, fieldErrors map[string]string) {
	render(h.Templates, h.Sessions, w, r, "signup.html", map[string]interface{}{
		"Errors":   fieldErrors,
		"Email":    req.Email,
		"FullName": req.FullName,
		"Phone":    req.Phone,
	})
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validateSignup mirrors the backend's account rules so most mistakes are
// caught before a round trip. The backend remains the final authority.
func validateSignup(req api.SignupRequest) map[string]string {
	errs := make(map[string]string)
	if req.FullName == "" || len(req.FullName) < 2 {
		errs["full_name"] = "Please enter your full name."
	}
	if !emailRegex.MatchString(req.Email) {
		errs["email"] = "Please enter a valid email address."
	}
	if msg := passwordRuleViolation(req.Password); msg != "" {
		errs["password"] = msg
	}
	return errs
}

func passwordRuleViolation(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long."
	}
	var hasDigit, hasUpper bool
	for _, c := range password {
		if unicode.IsDigit(c) {
			hasDigit = true
		}
		if unicode.IsUpper(c) {
			hasUpper = true
		}
	}
	if !hasDigit {
		return "Password must contain at least one digit."
	}
	if !hasUpper {
		return "Password must contain at least one uppercase letter."
	}
	return ""
}

// Logout tears down the session. The backend call is best effort; the
// local session is cleared no matter what.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.Sessions.Token(r); token != "" {
		if err := h.API.WithToken(token).Logout(r.Context()); err != nil {
			slog.Warn("Backend logout failed", "error", err)
		}
	}
	h.Sessions.SignOut(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
