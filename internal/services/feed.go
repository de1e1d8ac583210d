package services

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/repositories"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

const (
	ItemPost    = "post"
	ItemShare   = "share"
	SharedLabel = "shared a post"
)

// FeedPost is the rendering data of a post, shared or not.
type FeedPost struct {
	ID            uint               `json:"id"`
	Desc          string             `json:"desc"`
	Img           string             `json:"img,omitempty"`
	Author        models.UserCompact `json:"author"`
	LikeUserIDs   []string           `json:"like_user_ids"`
	LikesCount    int                `json:"likes_count"`
	CommentsCount int64              `json:"comments_count"`
	CreatedAt     time.Time          `json:"created_at"`
}

// FeedItem is either an original post or a share wrapping one. Timestamp
// is the post's creation time or the share time.
type FeedItem struct {
	Kind      string              `json:"kind"`
	Timestamp time.Time           `json:"timestamp"`
	Post      FeedPost            `json:"post"`
	ShareID   uint                `json:"share_id,omitempty"`
	SharedBy  *models.UserCompact `json:"shared_by,omitempty"`
	Label     string              `json:"label,omitempty"`
}

func toFeedPost(p *models.Post) FeedPost {
	likers := p.LikeUserIDs()
	return FeedPost{
		ID:            p.ID,
		Desc:          p.Desc,
		Img:           p.Img,
		Author:        p.User.ToCompact(),
		LikeUserIDs:   likers,
		LikesCount:    len(likers),
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
	}
}

// MergeTimeline renders posts and shares as one list, newest first.
// Items with equal timestamps keep posts before shares.
func MergeTimeline(posts []models.Post, shares []models.Share) []FeedItem {
	items := make([]FeedItem, 0, len(posts)+len(shares))
	for i := range posts {
		items = append(items, FeedItem{
			Kind:      ItemPost,
			Timestamp: posts[i].CreatedAt,
			Post:      toFeedPost(&posts[i]),
		})
	}
	for i := range shares {
		sharer := shares[i].User.ToCompact()
		items = append(items, FeedItem{
			Kind:      ItemShare,
			Timestamp: shares[i].SharedAt,
			Post:      toFeedPost(&shares[i].Post),
			ShareID:   shares[i].ID,
			SharedBy:  &sharer,
			Label:     SharedLabel,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items
}

// FeedService assembles home and profile timelines
type FeedService struct {
	base
	users   repositories.UserRepository
	follows repositories.FollowRepository
	posts   repositories.PostRepository
	shares  repositories.ShareRepository
}

func NewFeedService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	posts repositories.PostRepository,
	shares repositories.ShareRepository,
	log *logrus.Entry,
	m *metrics.Metrics,
) *FeedService {
	return &FeedService{
		base:    newBase(log, m),
		users:   users,
		follows: follows,
		posts:   posts,
		shares:  shares,
	}
}

// Feed returns the profile feed of username when set, otherwise the home
// feed of callerID. With neither, or an unknown username, it is empty.
func (s *FeedService) Feed(ctx context.Context, username, callerID string) ([]FeedItem, error) {
	items, err := s.feed(ctx, username, callerID)
	return items, s.done("feed", err)
}

func (s *FeedService) feed(ctx context.Context, username, callerID string) ([]FeedItem, error) {
	audience, err := s.audience(ctx, username, callerID)
	if err != nil {
		return nil, s.fail("feed", err)
	}
	if len(audience) == 0 {
		return []FeedItem{}, nil
	}

	posts, err := s.posts.GetPostsByUserIDs(ctx, audience)
	if err != nil {
		return nil, s.fail("feed", err)
	}
	shares, err := s.shares.GetSharesByUserIDs(ctx, audience)
	if err != nil {
		return nil, s.fail("feed", err)
	}
	return MergeTimeline(posts, shares), nil
}

func (s *FeedService) audience(ctx context.Context, username, callerID string) ([]string, error) {
	if username != "" {
		user, err := s.users.GetUserByUsername(ctx, username)
		if isNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []string{user.ID}, nil
	}
	if callerID == "" {
		return nil, nil
	}
	following, err := s.follows.GetFollowingIDs(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return append([]string{callerID}, following...), nil
}
