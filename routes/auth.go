/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionAuthenticatedKey = "authenticated"
	sessionAdminKey         = "admin_username"
)

// AdminCredentials holds the single admin login. The password is only kept
// as a bcrypt hash.
type AdminCredentials struct {
	Username     string
	passwordHash []byte
}

// NewAdminCredentials hashes password for later comparison.
func NewAdminCredentials(username, password string) (*AdminCredentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errAdminUsernameRequired
	}

	if password == "" {
		return nil, errAdminPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AdminCredentials{Username: username, passwordHash: hash}, nil
}

// Verify reports whether username and password match the admin login.
func (a *AdminCredentials) Verify(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(a.Username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil

	return usernameOK && passwordOK
}

func isAuthenticated(s session.Session) bool {
	authenticated, ok := s.Get(sessionAuthenticatedKey).(bool)
	return ok && authenticated
}

// LoginForm renders the login page
func LoginForm(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	if isAuthenticated(s) {
		c.Redirect("/reports")
		return
	}

	data["HeaderOnly"] = true
	t.HTML(http.StatusOK, "login")
}

// Login checks the submitted admin credentials.
func Login(c flamego.Context, s session.Session, admin *AdminCredentials) {
	username := c.Request().FormValue("username")
	password := c.Request().FormValue("password")

	if !admin.Verify(username, password) {
		logAccessDenied(c, s, "invalid_credentials", http.StatusSeeOther, "username", username)
		SetErrorFlash(s, "Invalid username or password")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	if err := s.RegenerateID(c.ResponseWriter(), c.Request().Request); err != nil {
		logger.Error("Failed to regenerate session ID", "error", err)
		SetErrorFlash(s, "Failed to start session")
		c.Redirect("/login", http.StatusSeeOther)

		return
	}

	s.Set(sessionAuthenticatedKey, true)
	s.Set(sessionAdminKey, admin.Username)

	logger.Info("Admin logged in", "admin", admin.Username, "ip", clientIP(c))
	c.Redirect("/reports", http.StatusSeeOther)
}

// Logout handles logout request
func Logout(s session.Session, c flamego.Context) {
	s.Delete(sessionAuthenticatedKey)
	s.Delete(sessionAdminKey)
	c.Redirect("/login")
}

// RequireAuth is a middleware that checks if user is authenticated
func RequireAuth(s session.Session, c flamego.Context) {
	if !isAuthenticated(s) {
		logAccessDenied(c, s, "unauthenticated", http.StatusFound)
		c.Redirect("/login")

		return
	}

	c.Next()
}

// RequireAuthJSON is RequireAuth for API routes: it answers 401 instead of
// redirecting.
func RequireAuthJSON(s session.Session, c flamego.Context) {
	if !isAuthenticated(s) {
		logAccessDenied(c, s, "unauthenticated", http.StatusUnauthorized)
		writeJSONError(c, http.StatusUnauthorized, "authentication required")

		return
	}

	c.Next()
}
