package services

import (
	"context"
	"time"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/repositories"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/anonto42/socialite/backend/pkg/events"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// DefaultStoryTTL is how long a story stays visible.
const DefaultStoryTTL = 24 * time.Hour

// StoryView is a visible story with its author and likers.
type StoryView struct {
	ID          uint               `json:"id"`
	Img         string             `json:"img"`
	Author      models.UserCompact `json:"author"`
	LikeUserIDs []string           `json:"like_user_ids"`
	LikesCount  int                `json:"likes_count"`
	CreatedAt   time.Time          `json:"created_at"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// StoryService creates stories, lists the visible ones and toggles likes
type StoryService struct {
	base
	stories repositories.StoryRepository
	likes   repositories.LikeRepository
	events  EventEmitter
	ttl     time.Duration
	now     func() time.Time
}

func NewStoryService(
	stories repositories.StoryRepository,
	likes repositories.LikeRepository,
	emitter EventEmitter,
	ttl time.Duration,
	log *logrus.Entry,
	m *metrics.Metrics,
) *StoryService {
	if emitter == nil {
		emitter = noopEmitter{}
	}
	if ttl <= 0 {
		ttl = DefaultStoryTTL
	}
	return &StoryService{
		base:    newBase(log, m),
		stories: stories,
		likes:   likes,
		events:  emitter,
		ttl:     ttl,
		now:     time.Now,
	}
}

// AddStory publishes an already-uploaded image as a story expiring after
// the configured TTL.
func (s *StoryService) AddStory(ctx context.Context, callerID string, req models.CreateStoryRequest) (*models.Story, error) {
	story, err := s.addStory(ctx, callerID, req)
	return story, s.done("add_story", err)
}

func (s *StoryService) addStory(ctx context.Context, callerID string, req models.CreateStoryRequest) (*models.Story, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, s.invalid(err)
	}

	now := s.now().UTC()
	story := &models.Story{
		Img:       req.Img,
		UserID:    callerID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, s.fail("add_story", err)
	}

	s.events.Emit(ctx, events.StoryCreated, events.StoryEvent{
		StoryID:   story.ID,
		UserID:    callerID,
		ExpiresAt: story.ExpiresAt,
	})
	return story, nil
}

// VisibleStories returns the unexpired stories of the caller and of the
// users the caller follows, newest first.
func (s *StoryService) VisibleStories(ctx context.Context, callerID string) ([]StoryView, error) {
	views, err := s.visibleStories(ctx, callerID)
	return views, s.done("list_stories", err)
}

func (s *StoryService) visibleStories(ctx context.Context, callerID string) ([]StoryView, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	now := s.now()
	stories, err := s.stories.GetVisibleStories(ctx, callerID, now)
	if err != nil {
		return nil, s.fail("list_stories", err)
	}

	views := make([]StoryView, 0, len(stories))
	for i := range stories {
		st := &stories[i]
		if !st.VisibleAt(now) {
			continue
		}
		likers := st.LikeUserIDs()
		views = append(views, StoryView{
			ID:          st.ID,
			Img:         st.Img,
			Author:      st.User.ToCompact(),
			LikeUserIDs: likers,
			LikesCount:  len(likers),
			CreatedAt:   st.CreatedAt,
			ExpiresAt:   st.ExpiresAt,
		})
	}
	return views, nil
}

// ToggleLike flips the caller's like on the story and returns the like
// count read back after the toggle.
func (s *StoryService) ToggleLike(ctx context.Context, callerID string, storyID uint) (int64, error) {
	count, err := s.toggleLike(ctx, callerID, storyID)
	return count, s.done("toggle_story_like", err)
}

func (s *StoryService) toggleLike(ctx context.Context, callerID string, storyID uint) (int64, error) {
	if err := requireCaller(callerID); err != nil {
		return 0, err
	}
	if _, err := s.stories.GetStoryByID(ctx, storyID); err != nil {
		if isNotFound(err) {
			return 0, apperrors.NotFound("Story not found")
		}
		return 0, s.fail("toggle_story_like", err)
	}
	if _, err := s.likes.ToggleStoryLike(ctx, storyID, callerID); err != nil {
		if isNotFound(err) {
			return 0, apperrors.NotFound("Story not found")
		}
		return 0, s.fail("toggle_story_like", err)
	}
	count, err := s.likes.GetLikesCountByStoryID(ctx, storyID)
	if err != nil {
		return 0, s.fail("toggle_story_like", err)
	}
	return count, nil
}

// StoryLikes returns the ids of everyone who liked the story.
func (s *StoryService) StoryLikes(ctx context.Context, storyID uint) ([]string, error) {
	ids, err := s.likes.GetLikerIDsByStoryID(ctx, storyID)
	if err != nil {
		return nil, s.done("story_likes", s.fail("story_likes", err))
	}
	return ids, s.done("story_likes", nil)
}
