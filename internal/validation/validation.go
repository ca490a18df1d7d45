// Package validation holds input rules shared by the services.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength   = 300
	MaxContentLength = 50000
	MaxCommentLength = 10000
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)

// ValidateUsername checks length and allowed characters.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return errors.New("username must be 3-30 characters of letters, digits, '_', '.' or '-'")
	}
	return nil
}

// ValidateEmail checks that email is a single bare address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email must be a valid address")
	}
	return nil
}

// ValidatePassword checks the password is present and fits bcrypt.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}

// ValidateStoryTitle checks a story title.
func ValidateStoryTitle(title string) error {
	return validateText("title", title, MaxTitleLength)
}

// ValidateStoryContent checks a story body.
func ValidateStoryContent(content string) error {
	return validateText("content", content, MaxContentLength)
}

// ValidateCommentContent checks a comment body.
func ValidateCommentContent(content string) error {
	return validateText("content", content, MaxCommentLength)
}

func validateText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%s must be at most %d characters", field, maxLen)
	}
	return nil
}
