package seed

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"storyhub/internal/middleware"
	"storyhub/internal/models"
	"storyhub/internal/repository"
	"storyhub/internal/validation"

	"gopkg.in/yaml.v3"
)

// Fixtures is the YAML fixture document. Stories, comments and likes refer
// to users by username.
type Fixtures struct {
	Users   []FixtureUser  `yaml:"users"`
	Stories []FixtureStory `yaml:"stories"`
}

type FixtureUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type FixtureStory struct {
	Owner    string           `yaml:"owner"`
	Title    string           `yaml:"title"`
	Content  string           `yaml:"content"`
	Comments []FixtureComment `yaml:"comments"`
	Likes    []string         `yaml:"likes"`
}

type FixtureComment struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

// LoadFixtures reads a fixture file. Unknown keys are rejected.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

// ParseFixtures decodes a fixture document.
func ParseFixtures(raw []byte) (*Fixtures, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fx, nil
}

// Validate applies the same input rules as the API.
func (fx *Fixtures) Validate() error {
	known := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		if err := validation.ValidateUsername(u.Username); err != nil {
			return fmt.Errorf("user %q: %w", u.Username, err)
		}
		if err := validation.ValidateEmail(u.Email); err != nil {
			return fmt.Errorf("user %q: %w", u.Username, err)
		}
		if err := validation.ValidatePassword(u.Password); err != nil {
			return fmt.Errorf("user %q: %w", u.Username, err)
		}
		if known[u.Username] {
			return fmt.Errorf("user %q is listed twice", u.Username)
		}
		known[u.Username] = true
	}

	for i, st := range fx.Stories {
		if !known[st.Owner] {
			return fmt.Errorf("story %d: unknown owner %q", i+1, st.Owner)
		}
		if err := validation.ValidateStoryTitle(st.Title); err != nil {
			return fmt.Errorf("story %d: %w", i+1, err)
		}
		if err := validation.ValidateStoryContent(st.Content); err != nil {
			return fmt.Errorf("story %d: %w", i+1, err)
		}
		for _, c := range st.Comments {
			if !known[c.Author] {
				return fmt.Errorf("story %d: unknown comment author %q", i+1, c.Author)
			}
			if err := validation.ValidateCommentContent(c.Content); err != nil {
				return fmt.Errorf("story %d: %w", i+1, err)
			}
		}
		liked := make(map[string]bool, len(st.Likes))
		for _, name := range st.Likes {
			if !known[name] {
				return fmt.Errorf("story %d: unknown liker %q", i+1, name)
			}
			if liked[name] {
				return fmt.Errorf("story %d: %q likes it twice", i+1, name)
			}
			liked[name] = true
		}
	}
	return nil
}

// ApplyFixtures validates fx and writes it in one unit of work.
func (s *Seeder) ApplyFixtures(ctx context.Context, fx *Fixtures) (Result, error) {
	if err := fx.Validate(); err != nil {
		return Result{}, err
	}

	hashes := make(map[string]string, len(fx.Users))
	for _, u := range fx.Users {
		hash, err := s.hasher.Hash(u.Password)
		if err != nil {
			return Result{}, fmt.Errorf("hash password for %q: %w", u.Username, err)
		}
		hashes[u.Username] = hash
	}

	var res Result
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		res = Result{}
		ids := make(map[string]uint, len(fx.Users))
		for _, u := range fx.Users {
			user := &models.User{Username: u.Username, Email: u.Email, PasswordHash: hashes[u.Username]}
			if err := repos.Users().Create(ctx, user); err != nil {
				return fmt.Errorf("create user %q: %w", u.Username, err)
			}
			ids[u.Username] = user.ID
			res.Users++
		}

		for _, st := range fx.Stories {
			story := &models.Story{Title: st.Title, Content: st.Content, OwnerID: ids[st.Owner]}
			if err := repos.Stories().Create(ctx, story); err != nil {
				return fmt.Errorf("create story %q: %w", st.Title, err)
			}
			res.Stories++

			for _, c := range st.Comments {
				comment := &models.Comment{Content: c.Content, AuthorID: ids[c.Author], StoryID: story.ID}
				if err := repos.Comments().Create(ctx, comment); err != nil {
					return fmt.Errorf("create comment on %q: %w", st.Title, err)
				}
				res.Comments++
			}
			for _, name := range st.Likes {
				if err := repos.Likes().Create(ctx, &models.Like{UserID: ids[name], StoryID: story.ID}); err != nil {
					return fmt.Errorf("create like on %q: %w", st.Title, err)
				}
				res.Likes++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	middleware.Logger.InfoContext(ctx, "seeded fixtures", "result", res.String())
	return res, nil
}
