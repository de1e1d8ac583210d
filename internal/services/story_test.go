package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/anonto42/socialite/backend/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoryService(store *memStore, emitter EventEmitter, now time.Time) *StoryService {
	svc := NewStoryService(store, store, emitter, 0, nil, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAddStory(t *testing.T) {
	store := newMemStore()
	store.addUser("a", "alice")
	emitter := &recordingEmitter{}
	svc := newStoryService(store, emitter, t0)

	story, err := svc.AddStory(context.Background(), "a", models.CreateStoryRequest{Img: "https://cdn.example.com/s.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "alice", story.User.Username)
	assert.True(t, t0.Equal(story.CreatedAt))
	assert.True(t, t0.Add(24*time.Hour).Equal(story.ExpiresAt))
	assert.Equal(t, []string{events.StoryCreated}, emitter.subjects)
}

func TestAddStory_Rejections(t *testing.T) {
	store := newMemStore()
	svc := newStoryService(store, nil, t0)

	_, err := svc.AddStory(context.Background(), "", models.CreateStoryRequest{Img: "https://cdn.example.com/s.jpg"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.AddStory(context.Background(), "a", models.CreateStoryRequest{Img: "not-a-url"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, store.stories)
}

func TestVisibleStories(t *testing.T) {
	store := newMemStore()
	store.addUser("a", "alice")
	store.addUser("b", "bob")
	store.addUser("c", "carol")
	store.follows[pair{"a", "b"}] = true
	store.follows[pair{"a", "a"}] = true

	ctx := context.Background()
	create := func(userID string, at time.Time) {
		svc := newStoryService(store, nil, at)
		_, err := svc.AddStory(ctx, userID, models.CreateStoryRequest{Img: "https://cdn.example.com/" + userID + ".jpg"})
		require.NoError(t, err)
	}
	create("a", t0)
	create("b", t0.Add(time.Hour))
	create("c", t0.Add(time.Hour))
	create("b", t0.Add(-25*time.Hour))

	views, err := newStoryService(store, nil, t0.Add(2*time.Hour)).VisibleStories(ctx, "a")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "bob", views[0].Author.Username)
	assert.Equal(t, "alice", views[1].Author.Username)

	_, err = newStoryService(store, nil, t0).VisibleStories(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestVisibleStories_NeverReturnsExpired(t *testing.T) {
	store := newMemStore()
	store.addUser("a", "alice")
	store.leakExpired = true
	ctx := context.Background()

	_, err := newStoryService(store, nil, t0).AddStory(ctx, "a", models.CreateStoryRequest{Img: "https://cdn.example.com/a.jpg"})
	require.NoError(t, err)

	atExpiry := newStoryService(store, nil, t0.Add(24*time.Hour))
	views, err := atExpiry.VisibleStories(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, views)

	before := newStoryService(store, nil, t0.Add(24*time.Hour-time.Second))
	views, err = before.VisibleStories(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestToggleStoryLike(t *testing.T) {
	store := newMemStore()
	store.addUser("a", "alice")
	store.addUser("b", "bob")
	ctx := context.Background()
	svc := newStoryService(store, nil, t0)

	story, err := svc.AddStory(ctx, "a", models.CreateStoryRequest{Img: "https://cdn.example.com/a.jpg"})
	require.NoError(t, err)

	count, err := svc.ToggleLike(ctx, "b", story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	fresh, _ := store.GetLikesCountByStoryID(ctx, story.ID)
	assert.Equal(t, fresh, count)

	count, err = svc.ToggleLike(ctx, "a", story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	likers, err := svc.StoryLikes(ctx, story.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, likers)

	count, err = svc.ToggleLike(ctx, "b", story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	fresh, _ = store.GetLikesCountByStoryID(ctx, story.ID)
	assert.Equal(t, fresh, count)
}

func TestToggleStoryLike_Errors(t *testing.T) {
	store := newMemStore()
	svc := newStoryService(store, nil, t0)

	_, err := svc.ToggleLike(context.Background(), "", 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.ToggleLike(context.Background(), "a", 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, store.likes)
}
