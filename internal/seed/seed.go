// Package seed populates the database with demo data, either generated with
// gofakeit or loaded from a YAML fixture file. Intended for development only.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storyhub/internal/auth"
	"storyhub/internal/middleware"
	"storyhub/internal/models"
	"storyhub/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every generated user.
const DefaultPassword = "password123"

// Options configures generated data.
type Options struct {
	NumUsers   int
	NumStories int
	// MaxComments and MaxLikes bound the per-story engagement.
	MaxComments int
	MaxLikes    int
	// RandSeed makes output reproducible; zero seeds from the clock.
	RandSeed int64
}

// Result counts the rows a seeding run created.
type Result struct {
	Users    int
	Stories  int
	Comments int
	Likes    int
}

func (r Result) String() string {
	return fmt.Sprintf("%d users, %d stories, %d comments, %d likes", r.Users, r.Stories, r.Comments, r.Likes)
}

// Seeder writes demo data through the repositories in one unit of work.
type Seeder struct {
	store  *repository.Store
	hasher *auth.PasswordHasher
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, hasher *auth.PasswordHasher) *Seeder {
	return &Seeder{store: repository.NewStore(db), hasher: hasher}
}

// Generate creates random users and stories with comments and likes.
// Nothing is written unless every row succeeds.
func (s *Seeder) Generate(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if opts.NumUsers <= 0 {
		return res, fmt.Errorf("at least one user is required")
	}
	if opts.NumStories < 0 {
		return res, fmt.Errorf("story count must not be negative")
	}

	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(seed)

	// Hash once; bcrypt dominates the run otherwise.
	hash, err := s.hasher.Hash(DefaultPassword)
	if err != nil {
		return res, fmt.Errorf("hash password: %w", err)
	}

	err = s.store.Transaction(ctx, func(repos repository.Repositories) error {
		res = Result{}
		users := make([]*models.User, 0, opts.NumUsers)
		for i := 0; i < opts.NumUsers; i++ {
			username := fakeUsername(faker, i)
			user := &models.User{
				Username:     username,
				Email:        fmt.Sprintf("%s@%s", strings.ToLower(username), faker.DomainName()),
				PasswordHash: hash,
			}
			if err := repos.Users().Create(ctx, user); err != nil {
				return fmt.Errorf("create user %s: %w", username, err)
			}
			users = append(users, user)
		}
		res.Users = len(users)

		for i := 0; i < opts.NumStories; i++ {
			owner := users[faker.Number(0, len(users)-1)]
			story := &models.Story{
				Title:   strings.TrimSuffix(faker.Sentence(faker.Number(3, 8)), "."),
				Content: faker.Paragraph(1, 3, 12, "\n\n"),
				OwnerID: owner.ID,
			}
			if err := repos.Stories().Create(ctx, story); err != nil {
				return fmt.Errorf("create story: %w", err)
			}
			res.Stories++

			for n := faker.Number(0, opts.MaxComments); n > 0; n-- {
				author := users[faker.Number(0, len(users)-1)]
				comment := &models.Comment{Content: faker.Sentence(faker.Number(4, 16)), AuthorID: author.ID, StoryID: story.ID}
				if err := repos.Comments().Create(ctx, comment); err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
				res.Comments++
			}

			likes := min(faker.Number(0, opts.MaxLikes), len(users))
			for _, idx := range faker.Rand.Perm(len(users))[:likes] {
				if err := repos.Likes().Create(ctx, &models.Like{UserID: users[idx].ID, StoryID: story.ID}); err != nil {
					return fmt.Errorf("create like: %w", err)
				}
				res.Likes++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	middleware.Logger.InfoContext(ctx, "seeded generated data", "result", res.String())
	return res, nil
}

// fakeUsername builds a unique username that passes signup validation.
func fakeUsername(faker *gofakeit.Faker, i int) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, faker.FirstName())
	if len(base) > 20 {
		base = base[:20]
	}
	if base == "" {
		base = "user"
	}
	return fmt.Sprintf("%s_%d", base, i+1)
}
