// Package seed loads the starter catalogue and optional fake activity into a database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pageza/recipe-realm/backend/internal/catalog"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/types"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const emailDomain = "reciperealm.dev"

// Options controls what Run inserts
type Options struct {
	// Password is set on every seeded account
	Password string
	// FakeUsers is the number of random reviewers to create
	FakeUsers int
	// ReviewsPerUser is how many catalogue recipes each fake user reviews
	ReviewsPerUser int
}

// Result counts the rows inserted by Run
type Result struct {
	Users   int
	Recipes int
	Reviews int
}

type Seeder struct {
	db      *gorm.DB
	reviews *service.ReviewService
	logger  *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Seeder {
	recipes := service.NewRecipeService(db, nil, logger)
	return &Seeder{
		db:      db,
		reviews: service.NewReviewService(db, recipes, nil, logger),
		logger:  logger,
	}
}

// Run inserts the catalogue recipes and their authors. Existing authors and
// recipes with the same title are left alone, so Run can be repeated.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Password == "" {
		return nil, errors.New("seed password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result := &Result{}
	var seeded []model.Recipe
	for _, entry := range catalog.Recipes() {
		author, created, err := s.ensureUser(ctx, authorUsername(entry.Author), string(hash))
		if err != nil {
			return nil, err
		}
		if created {
			result.Users++
		}

		recipe := entry.Recipe
		var existing model.Recipe
		err = s.db.WithContext(ctx).Where("title = ?", recipe.Title).First(&existing).Error
		switch {
		case err == nil:
			seeded = append(seeded, existing)
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to look up recipe %q: %w", recipe.Title, err)
		}

		recipe.AuthorID = &author.ID
		if s.db.Dialector.Name() == "postgres" {
			vec := service.RecipeEmbedding(&recipe)
			recipe.Embedding = &vec
		}
		if err := s.db.WithContext(ctx).Omit("Author").Create(&recipe).Error; err != nil {
			return nil, fmt.Errorf("failed to create recipe %q: %w", recipe.Title, err)
		}
		s.logger.Debug("seeded recipe", zap.String("title", recipe.Title))
		seeded = append(seeded, recipe)
		result.Recipes++
	}

	for i := 0; i < opts.FakeUsers; i++ {
		username := strings.ToLower(gofakeit.Username()) + gofakeit.DigitN(4)
		user, created, err := s.ensureUser(ctx, username, string(hash))
		if err != nil {
			return nil, err
		}
		if created {
			result.Users++
		}

		for _, idx := range pick(len(seeded), opts.ReviewsPerUser) {
			_, err := s.reviews.CreateReview(ctx, user.ID, user.Username, seeded[idx].ID, &types.ReviewRequest{
				Rating:  gofakeit.Number(1, 5),
				Comment: gofakeit.Sentence(10),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create review: %w", err)
			}
			result.Reviews++
		}
	}

	s.logger.Info("seed complete",
		zap.Int("users", result.Users),
		zap.Int("recipes", result.Recipes),
		zap.Int("reviews", result.Reviews),
	)
	return result, nil
}

func (s *Seeder) ensureUser(ctx context.Context, username, passwordHash string) (*model.User, bool, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	user = model.User{
		Username:     username,
		Email:        username + "@" + emailDomain,
		PasswordHash: passwordHash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create user %s: %w", username, err)
	}
	return &user, true, nil
}

// authorUsername turns a display name like "Chef Marco" into "chef_marco"
func authorUsername(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// pick returns up to n distinct indexes below size
func pick(size, n int) []int {
	n = min(n, size)
	if n <= 0 {
		return nil
	}
	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	gofakeit.ShuffleInts(perm)
	return perm[:n]
}
