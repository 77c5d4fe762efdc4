package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/otpx"
	"github.com/dmitrijs2005/authgate/internal/services"
)

// Register prompts for username, password and role, then creates the
// identity. Role 1 is admin, any other answer is user.
func (a *App) Register(ctx context.Context) error {
	printlnFn("--- Register ---")

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := a.readSecret()
	if err != nil {
		return err
	}

	choice, err := getSimpleText(a.reader, "Choose role (1 = Admin, 2 = User)", a.out)
	if err != nil {
		return err
	}
	roleChoice, _ := strconv.Atoi(choice)

	id, err := a.module.Register(ctx, userName, password, roleChoice)
	if err != nil {
		printlnFn(describe(err))
		return err
	}

	printlnFn(fmt.Sprintf("User %s registered as %s.", id.Username, id.Role))
	return nil
}

// Login prompts for credentials. When they match, the one-time code is
// printed and read back.
func (a *App) Login(ctx context.Context) error {
	printlnFn("--- Login ---")

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := a.readSecret()
	if err != nil {
		return err
	}

	s, err := a.module.Login(ctx, userName, password, a.promptCode)
	if err != nil {
		printlnFn(describe(err))
		return err
	}

	printlnFn("Login successful! Welcome " + s.Identity.Username)
	return nil
}

// readSecret reads the password as a string. The module takes strings, so
// the terminal buffer is not worth wiping once it has been copied.
func (a *App) readSecret() (string, error) {
	b, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a *App) promptCode(_ context.Context, code otpx.Code) (string, error) {
	printlnFn("Your one-time code is: " + code.String())
	return getSimpleText(a.reader, "Enter one-time code", a.out)
}

func (a *App) ViewResource(ctx context.Context) error {
	r, err := a.module.ViewResource(ctx)
	if err != nil {
		printlnFn(describe(err))
		return err
	}

	printlnFn(fmt.Sprintf("Viewing %s (revision %d)", r.Name, r.Revision))
	if r.ModifiedBy != "" {
		printlnFn(fmt.Sprintf("Last modified by %s at %s", r.ModifiedBy, r.ModifiedAt.Format("2006-01-02 15:04:05")))
	}
	return nil
}

func (a *App) ModifyResource(ctx context.Context) error {
	r, err := a.module.ModifyResource(ctx)
	if err != nil {
		printlnFn(describe(err))
		return err
	}

	printlnFn(fmt.Sprintf("Admin modified %s, now at revision %d.", r.Name, r.Revision))
	return nil
}

func (a *App) ViewLogs(ctx context.Context) error {
	entries, err := a.module.ViewLogs(ctx)
	if err != nil {
		printlnFn(describe(err))
		return err
	}

	printlnFn("--- System Logs ---")
	for _, e := range entries {
		printlnFn(e.String())
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	id, err := a.module.Logout(ctx)
	if err != nil {
		printlnFn(describe(err))
		return err
	}

	printlnFn("Logged out " + id.Username + ".")
	return nil
}

// describe turns a module error into the message shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidUsername):
		return fmt.Sprintf("Invalid username: 1 to %d characters, no spaces.", services.MaxUsernameLen)
	case errors.Is(err, common.ErrInvalidPassword):
		return fmt.Sprintf("Invalid password: 1 to %d characters.", services.MaxPasswordLen)
	case errors.Is(err, common.ErrDuplicateUsername):
		return "User already exists!"
	case errors.Is(err, common.ErrUserNotFound):
		return "User not found!"
	case errors.Is(err, common.ErrWrongPassword):
		return "Wrong password!"
	case errors.Is(err, common.ErrOneTimeCodeExpired):
		return "One-time code expired!"
	case errors.Is(err, common.ErrWrongOneTimeCode):
		return "Wrong one-time code!"
	case errors.Is(err, common.ErrAlreadyLoggedIn):
		return "Already logged in, logout first."
	case errors.Is(err, common.ErrNotLoggedIn):
		return "Please login first!"
	case errors.Is(err, common.ErrInsufficientRole):
		return "Access denied! Admin only."
	case errors.Is(err, common.ErrStorageUnavailable):
		return "Storage unavailable: " + err.Error()
	}
	return "Error: " + err.Error()
}
