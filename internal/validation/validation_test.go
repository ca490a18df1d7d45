package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "alice", false},
		{"With Punctuation", "a.b-c_d", false},
		{"Exactly Min Length", "abc", false},
		{"Exactly Max Length", strings.Repeat("a", 30), false},
		{"Too Short", "ab", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Illegal Chars", "user@123", true},
		{"Spaces", "al ice", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "a@x.io", false},
		{"Subdomain", "bob@mail.example.com", false},
		{"Missing At", "a.x.io", true},
		{"Display Name", "Alice <a@x.io>", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePassword("pw1"))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", MaxPasswordBytes)))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", MaxPasswordBytes+1)))
}

func TestValidateText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fn      func(string) error
		value   string
		wantErr bool
	}{
		{"Title Valid", ValidateStoryTitle, "Hello", false},
		{"Title Blank", ValidateStoryTitle, "   ", true},
		{"Title Max", ValidateStoryTitle, strings.Repeat("t", MaxTitleLength), false},
		{"Title Too Long", ValidateStoryTitle, strings.Repeat("t", MaxTitleLength+1), true},
		{"Title Multibyte At Max", ValidateStoryTitle, strings.Repeat("é", MaxTitleLength), false},
		{"Content Valid", ValidateStoryContent, "World", false},
		{"Content Empty", ValidateStoryContent, "", true},
		{"Content Too Long", ValidateStoryContent, strings.Repeat("c", MaxContentLength+1), true},
		{"Comment Valid", ValidateCommentContent, "Nice", false},
		{"Comment Whitespace", ValidateCommentContent, "\n\t", true},
		{"Comment Too Long", ValidateCommentContent, strings.Repeat("c", MaxCommentLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
