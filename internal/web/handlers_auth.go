package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dmoren/tasklist/internal/auth"
	"github.com/dmoren/tasklist/internal/store"
)

func (s *server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, "register.html", map[string]any{"Flash": auth.TakeFlash(w, r)})
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		auth.Flash(w, "Username and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := s.store.CreateUser(username, password)
	switch {
	case errors.Is(err, store.ErrDuplicateUsername):
		auth.Flash(w, "Username already exists!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		// Backend details stay out of the response.
		log.Error("create user", "err", err)
		auth.Flash(w, "Registration failed, please try again.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		auth.Flash(w, "Registration successful! Please login.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (s *server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, "login.html", map[string]any{"Flash": auth.TakeFlash(w, r)})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	u, err := s.store.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, store.ErrInvalidCredentials) {
			log.Error("authenticate", "err", err)
		}
		// One message for unknown user and wrong password alike.
		auth.Flash(w, "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := s.store.CreateSession(u.ID)
	if err != nil {
		log.Error("create session", "err", err)
		auth.Flash(w, "Login failed, please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := auth.SessionToken(r); token != "" {
		s.store.DeleteSession(token)
	}
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	render(w, "profile.html", map[string]any{
		"User":  u,
		"Flash": auth.TakeFlash(w, r),
	})
}

func (s *server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	if err := s.store.UpdateEmail(u.ID, r.FormValue("email")); err != nil {
		log.Error("update email", "user", u.ID, "err", err)
		auth.Flash(w, "Error updating profile.")
	} else {
		auth.Flash(w, "Profile updated successfully!")
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
