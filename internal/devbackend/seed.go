package devbackend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
)

var seedCategories = []string{
	"Actualités",
	"Événements",
	"Recherche",
	"Vie étudiante",
	"Sport",
	"Culture",
}

// Seed fills an empty database with demo accounts and content. The
// fixed accounts admin/admin123 and reader/reader123 always exist so
// both apps can be exercised without registering first.
func (s *Store) Seed(ctx context.Context) error {
	count, err := s.countRow(ctx, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Debug("seed skipped, database already populated", "users", count)
		return nil
	}

	faker := gofakeit.New(7)

	adminID, err := s.seedUser(ctx, "admin", "admin@campusnews.test", "admin123", true)
	if err != nil {
		return err
	}
	readerID, err := s.seedUser(ctx, "reader", "reader@campusnews.test", "reader123", false)
	if err != nil {
		return err
	}

	userIDs := []int64{adminID, readerID}
	for i := 0; i < 6; i++ {
		username := faker.Username()
		id, err := s.seedUser(ctx, username, faker.Email(), "password123", false)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
		userIDs = append(userIDs, id)
	}

	var postIDs []int64
	for i := 0; i < 24; i++ {
		author := userIDs[faker.IntRange(0, len(userIDs)-1)]
		category := seedCategories[faker.IntRange(0, len(seedCategories)-1)]
		id, err := s.createPost(ctx,
			faker.Sentence(6),
			faker.Paragraph(3, 4, 12, "\n\n"),
			fmt.Sprintf("https://picsum.photos/seed/%d/800/450", i+1),
			category,
			author)
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		postIDs = append(postIDs, id)
	}

	for _, postID := range postIDs {
		for _, userID := range userIDs {
			if faker.Bool() {
				if _, err := s.toggleLike(ctx, userID, postID); err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
			for v := faker.IntRange(0, 3); v > 0; v-- {
				if err := s.recordVisit(ctx, postID, userID, faker.IPv4Address()); err != nil {
					return fmt.Errorf("seed visit: %w", err)
				}
			}
		}
	}

	slog.Info("seeded demo data", "users", len(userIDs), "posts", len(postIDs))
	return nil
}

// InsertUser creates an account directly, bypassing the HTTP surface.
// Integration tests use it to arrange admin accounts.
func (s *Store) InsertUser(ctx context.Context, username, password string, isAdmin bool) (int64, error) {
	return s.seedUser(ctx, username, username+"@campusnews.test", password, isAdmin)
}

func (s *Store) seedUser(ctx context.Context, username, email, password string, isAdmin bool) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return 0, err
	}
	return s.createUser(ctx, username, email, string(hash), isAdmin)
}
