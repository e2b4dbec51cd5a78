// Package seed populates a development database with realistic fake data.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"threadloom/internal/models"
	"threadloom/internal/repository"
	"threadloom/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options control seed volume.
type Options struct {
	Users       int
	Communities int
	Posts       int
	// RepliesPerPost is the upper bound of replies rolled per post.
	RepliesPerPost int
}

// DefaultOptions returns a small but lively data set.
func DefaultOptions() Options {
	return Options{
		Users:          20,
		Communities:    4,
		Posts:          40,
		RepliesPerPost: 5,
	}
}

// Run fills the database through the regular service layer so that all
// linkage invariants (author lists, parent/child chains) hold the same
// way they would in production traffic.
func Run(db *gorm.DB, opts Options) error {
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	communityRepo := repository.NewCommunityRepository(db)

	userSvc := service.NewUserService(userRepo, threadRepo, communityRepo, nil)
	threadSvc := service.NewThreadService(threadRepo, userRepo, nil, 0)

	authIDs := make([]string, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		authID := fmt.Sprintf("seed_user_%d", i+1)
		err := userSvc.UpdateProfile(ctx, service.UpdateProfileInput{
			AuthID:   authID,
			Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Name:     gofakeit.Name(),
			Bio:      gofakeit.Sentence(12),
			Image:    gofakeit.ImageURL(200, 200),
		})
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i+1, err)
		}
		authIDs = append(authIDs, authID)
	}

	for i := 0; i < opts.Communities; i++ {
		community := &models.Community{
			Name:  gofakeit.Company(),
			Slug:  fmt.Sprintf("c%d-%s", i+1, strings.ToLower(gofakeit.Word())),
			Image: gofakeit.ImageURL(100, 100),
		}
		if err := communityRepo.Create(ctx, community); err != nil {
			return fmt.Errorf("seed community %d: %w", i+1, err)
		}
	}

	for i := 0; i < opts.Posts; i++ {
		author := authIDs[gofakeit.Number(0, len(authIDs)-1)]
		post, err := threadSvc.CreateThread(ctx, service.CreateThreadInput{
			Text:         gofakeit.Paragraph(1, 2, 12, " "),
			AuthorAuthID: author,
		})
		if err != nil {
			return fmt.Errorf("seed post %d: %w", i+1, err)
		}

		for j := 0; j < gofakeit.Number(0, opts.RepliesPerPost); j++ {
			replier := authIDs[gofakeit.Number(0, len(authIDs)-1)]
			_, err := threadSvc.AddComment(ctx, service.AddCommentInput{
				ThreadID:     post.ID,
				Text:         gofakeit.Sentence(10),
				AuthorAuthID: replier,
			})
			if err != nil {
				return fmt.Errorf("seed reply on post %d: %w", post.ID, err)
			}
		}
	}

	log.Printf("Seeded %d users, %d communities, %d posts", opts.Users, opts.Communities, opts.Posts)
	return nil
}
