// Command seed populates the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"storyhub/internal/auth"
	"storyhub/internal/bootstrap"
	"storyhub/internal/config"
	"storyhub/internal/database"
	"storyhub/internal/seed"
)

func main() {
	fixtures := flag.String("fixtures", "", "Path to a YAML fixture file (overrides random generation)")
	numUsers := flag.Int("users", 20, "Number of users to create")
	numStories := flag.Int("stories", 50, "Number of stories to create")
	maxComments := flag.Int("max-comments", 5, "Maximum comments per story")
	maxLikes := flag.Int("max-likes", 10, "Maximum likes per story")
	randSeed := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The seeder only needs the database.
	cfg.RedisURL = ""

	ctx := context.Background()
	db, _, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{Migrate: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	s := seed.NewSeeder(db, auth.NewPasswordHasher(cfg.BcryptCost))

	var res seed.Result
	if *fixtures != "" {
		fx, loadErr := seed.LoadFixtures(*fixtures)
		if loadErr != nil {
			log.Fatalf("Failed to load fixtures: %v", loadErr)
		}
		res, err = s.ApplyFixtures(ctx, fx)
	} else {
		res, err = s.Generate(ctx, seed.Options{
			NumUsers:    *numUsers,
			NumStories:  *numStories,
			MaxComments: *maxComments,
			MaxLikes:    *maxLikes,
			RandSeed:    *randSeed,
		})
	}
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %s", res)
	if *fixtures == "" {
		log.Printf("All generated users have the password: %s", seed.DefaultPassword)
	}
}
