package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
	"github.com/dmitrijs2005/newsdigest/internal/client/router"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates an account. On
// success the user is signed in and taken to the page they were headed to.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, a.session.Register, func(err error) string {
		if errors.Is(err, api.ErrAlreadyRegistered) {
			return "This email is already registered. Try 'login' instead."
		}
		return api.Message(err, "Registration failed")
	})
}

// Login prompts for credentials and signs in. A rejected login shows the
// server's message, or "Invalid email or password" when there is none.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, a.session.Login, func(err error) string {
		return api.Message(err, "Invalid email or password")
	})
}

func (a *App) authenticate(ctx context.Context,
	call func(ctx context.Context, email, password string) error,
	message func(error) string) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in as", a.session.Current().Session.Email)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		printlnFn("Email is required.")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := call(ctx, email, string(password)); err != nil {
		a.log.Info(ctx, "authentication failed", "email", email, "error", err)
		printlnFn("Error:", message(err))
		return err
	}

	printlnFn("Welcome, " + a.session.Current().Session.Email + "!")
	next := router.AfterLogin(a.pending)
	a.pending = ""
	return a.Open(ctx, next)
}

// Logout clears the session locally and returns to the join view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout", "error", err)
	}
	printlnFn("Logged out.")
	return a.Open(ctx, router.JoinPath)
}
