package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/repositories"
)

type pair [2]string

// memStore implements every repository interface in memory.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	users    map[string]*models.User
	posts    map[uint]*models.Post
	comments []models.Comment
	likes    []models.Like
	shares   []models.Share
	stories  map[uint]*models.Story
	follows  map[pair]bool
	requests map[pair]time.Time
	blocks   map[pair]bool
	visits   []models.ProfileVisit

	// err, when set, is returned by every call
	err error
	// leakExpired makes GetVisibleStories skip the expiry filter
	leakExpired bool
	searchCalls int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		posts:    map[uint]*models.Post{},
		stories:  map[uint]*models.Story{},
		follows:  map[pair]bool{},
		requests: map[pair]time.Time{},
		blocks:   map[pair]bool{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(id, username string) *models.User {
	u := &models.User{ID: id, Username: username, Name: strings.ToUpper(username[:1]) + username[1:]}
	m.users[id] = u
	return u
}

func (m *memStore) addPost(userID, desc string, at time.Time) *models.Post {
	p := &models.Post{ID: m.id(), Desc: desc, UserID: userID, CreatedAt: at}
	m.posts[p.ID] = p
	return p
}

func (m *memStore) addShare(userID string, postID uint, at time.Time) {
	m.shares = append(m.shares, models.Share{ID: m.id(), UserID: userID, PostID: postID, SharedAt: at})
}

func (m *memStore) hydratePost(p models.Post) models.Post {
	if u, ok := m.users[p.UserID]; ok {
		p.User = *u
	}
	p.Likes = nil
	for _, l := range m.likes {
		if l.PostID != nil && *l.PostID == p.ID {
			p.Likes = append(p.Likes, l)
		}
	}
	p.CommentsCount = 0
	for _, c := range m.comments {
		if c.PostID == p.ID {
			p.CommentsCount++
		}
	}
	return p
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// UserRepository

func (m *memStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memStore) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[user.ID]; ok {
		cp := *u
		return &cp, nil
	}
	cp := *user
	m.users[user.ID] = &cp
	return user, nil
}

func (m *memStore) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range fields {
		s := v.(string)
		switch k {
		case "cover":
			u.Cover = s
		case "name":
			u.Name = s
		case "surname":
			u.Surname = s
		case "description":
			u.Description = s
		case "city":
			u.City = s
		case "school":
			u.School = s
		case "work":
			u.Work = s
		case "website":
			u.Website = s
		}
	}
	return nil
}

func (m *memStore) SearchUsers(ctx context.Context, query string, limit int) ([]models.UserCompact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	if m.err != nil {
		return nil, m.err
	}
	q := strings.ToLower(query)
	out := []models.UserCompact{}
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Surname), q) {
			out = append(out, u.ToCompact())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PostRepository

func (m *memStore) CreatePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	post.ID = m.id()
	post.CreatedAt = time.Now()
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *memStore) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	hp := m.hydratePost(*p)
	return &hp, nil
}

func (m *memStore) GetPostsByUserIDs(ctx context.Context, userIDs []string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Post{}
	for _, p := range m.posts {
		if contains(userIDs, p.UserID) {
			out = append(out, m.hydratePost(*p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) DeleteUserPost(ctx context.Context, id uint, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	p, ok := m.posts[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(m.posts, id)
	return true, nil
}

func (m *memStore) postCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posts)
}

// ShareRepository

func (m *memStore) CreateShare(ctx context.Context, share *models.Share) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	share.ID = m.id()
	share.SharedAt = time.Now()
	m.shares = append(m.shares, *share)
	return nil
}

func (m *memStore) GetSharesByUserIDs(ctx context.Context, userIDs []string) ([]models.Share, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Share{}
	for _, s := range m.shares {
		if !contains(userIDs, s.UserID) {
			continue
		}
		if u, ok := m.users[s.UserID]; ok {
			s.User = *u
		}
		if p, ok := m.posts[s.PostID]; ok {
			s.Post = m.hydratePost(*p)
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SharedAt.After(out[j].SharedAt) })
	return out, nil
}

// CommentRepository

func (m *memStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.posts[comment.PostID]; !ok {
		return repositories.ErrNotFound
	}
	comment.ID = m.id()
	comment.CreatedAt = time.Now()
	if u, ok := m.users[comment.UserID]; ok {
		comment.User = *u
	}
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memStore) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

// LikeRepository

func (m *memStore) toggleLike(userID string, match func(models.Like) bool, create models.Like) bool {
	for i, l := range m.likes {
		if l.UserID == userID && match(l) {
			m.likes = append(m.likes[:i], m.likes[i+1:]...)
			return false
		}
	}
	create.ID = m.id()
	m.likes = append(m.likes, create)
	return true
}

func (m *memStore) TogglePostLike(ctx context.Context, postID uint, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.posts[postID]; !ok {
		return false, repositories.ErrNotFound
	}
	return m.toggleLike(userID, func(l models.Like) bool {
		return l.PostID != nil && *l.PostID == postID
	}, models.Like{UserID: userID, PostID: &postID}), nil
}

func (m *memStore) ToggleStoryLike(ctx context.Context, storyID uint, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.toggleLike(userID, func(l models.Like) bool {
		return l.StoryID != nil && *l.StoryID == storyID
	}, models.Like{UserID: userID, StoryID: &storyID}), nil
}

func (m *memStore) likesOn(ctx context.Context, postID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, l := range m.likes {
		if l.PostID != nil && *l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) GetLikesCountByStoryID(ctx context.Context, storyID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, l := range m.likes {
		if l.StoryID != nil && *l.StoryID == storyID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) GetLikerIDsByStoryID(ctx context.Context, storyID uint) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ids := []string{}
	for _, l := range m.likes {
		if l.StoryID != nil && *l.StoryID == storyID {
			ids = append(ids, l.UserID)
		}
	}
	return ids, nil
}

// FollowRepository

func (m *memStore) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.follows[pair{followerID, followingID}], nil
}

func (m *memStore) DeleteFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	k := pair{followerID, followingID}
	existed := m.follows[k]
	delete(m.follows, k)
	return existed, nil
}

func (m *memStore) GetFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ids := []string{}
	for k := range m.follows {
		if k[0] == userID && k[1] != userID {
			ids = append(ids, k[1])
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memStore) GetFollowersCount(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.follows {
		if k[1] == userID {
			n++
		}
	}
	return n, m.err
}

func (m *memStore) GetFollowingCount(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.follows {
		if k[0] == userID {
			n++
		}
	}
	return n, m.err
}

// FollowRequestRepository

func (m *memStore) HasFollowRequest(ctx context.Context, senderID, receiverID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.requests[pair{senderID, receiverID}]
	return ok, nil
}

func (m *memStore) CreateFollowRequest(ctx context.Context, req *models.FollowRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	k := pair{req.SenderID, req.ReceiverID}
	if _, ok := m.requests[k]; !ok {
		m.requests[k] = time.Now()
	}
	return nil
}

func (m *memStore) DeleteFollowRequest(ctx context.Context, senderID, receiverID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	k := pair{senderID, receiverID}
	_, ok := m.requests[k]
	delete(m.requests, k)
	return ok, nil
}

func (m *memStore) GetPendingFollowRequests(ctx context.Context, receiverID string) ([]models.FollowRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.FollowRequest{}
	for k, at := range m.requests {
		if k[1] != receiverID {
			continue
		}
		req := models.FollowRequest{SenderID: k[0], ReceiverID: k[1], CreatedAt: at}
		if u, ok := m.users[k[0]]; ok {
			req.Sender = *u
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *memStore) AcceptFollowRequest(ctx context.Context, senderID, receiverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	k := pair{senderID, receiverID}
	if _, ok := m.requests[k]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.requests, k)
	m.follows[k] = true
	return nil
}

// BlockRepository

func (m *memStore) ToggleBlock(ctx context.Context, blockerID, blockedID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	k := pair{blockerID, blockedID}
	if m.blocks[k] {
		delete(m.blocks, k)
		return false, nil
	}
	m.blocks[k] = true
	return true, nil
}

func (m *memStore) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.blocks[pair{blockerID, blockedID}], nil
}

// StoryRepository

func (m *memStore) CreateStory(ctx context.Context, story *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	story.ID = m.id()
	if u, ok := m.users[story.UserID]; ok {
		story.User = *u
	}
	cp := *story
	m.stories[story.ID] = &cp
	return nil
}

func (m *memStore) GetStoryByID(ctx context.Context, id uint) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.stories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) GetVisibleStories(ctx context.Context, viewerID string, now time.Time) ([]models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Story{}
	for _, s := range m.stories {
		if !m.leakExpired && !now.Before(s.ExpiresAt) {
			continue
		}
		followed := s.UserID != viewerID && m.follows[pair{viewerID, s.UserID}]
		if s.UserID != viewerID && !followed {
			continue
		}
		cp := *s
		if u, ok := m.users[s.UserID]; ok {
			cp.User = *u
		}
		cp.Likes = nil
		for _, l := range m.likes {
			if l.StoryID != nil && *l.StoryID == s.ID {
				cp.Likes = append(cp.Likes, l)
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// VisitRepository

func (m *memStore) RecordVisit(ctx context.Context, visit *models.ProfileVisit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now()
	}
	m.visits = append(m.visits, *visit)
	return nil
}

func (m *memStore) GetLatestVisits(ctx context.Context, visitedUserID string) ([]models.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	latest := map[string]time.Time{}
	for _, v := range m.visits {
		if v.VisitedUserID != visitedUserID {
			continue
		}
		if v.VisitedAt.After(latest[v.VisitorID]) {
			latest[v.VisitorID] = v.VisitedAt
		}
	}
	out := make([]models.Visitor, 0, len(latest))
	for id, at := range latest {
		out = append(out, models.Visitor{VisitorID: id, VisitedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitedAt.After(out[j].VisitedAt) })
	return out, nil
}

// recordingEmitter captures events instead of publishing them.
type recordingEmitter struct {
	mu          sync.Mutex
	subjects    []string
	invalidated []string
}

func (e *recordingEmitter) Emit(ctx context.Context, subject string, payload any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subjects = append(e.subjects, subject)
}

func (e *recordingEmitter) Invalidate(ctx context.Context, path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.invalidated = append(e.invalidated, path)
}

var (
	_ repositories.UserRepository          = (*memStore)(nil)
	_ repositories.PostRepository          = (*memStore)(nil)
	_ repositories.ShareRepository         = (*memStore)(nil)
	_ repositories.CommentRepository       = (*memStore)(nil)
	_ repositories.LikeRepository          = (*memStore)(nil)
	_ repositories.FollowRepository        = (*memStore)(nil)
	_ repositories.FollowRequestRepository = (*memStore)(nil)
	_ repositories.BlockRepository         = (*memStore)(nil)
	_ repositories.StoryRepository         = (*memStore)(nil)
	_ repositories.VisitRepository         = (*memStore)(nil)
)
