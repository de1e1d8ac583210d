package services

import (
	"context"
	"strings"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/repositories"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// SearchLimit bounds the number of search results.
const SearchLimit = 20

// Profile is a user page as seen by the caller.
type Profile struct {
	User           *models.User `json:"user"`
	FollowersCount int64        `json:"followers_count"`
	FollowingCount int64        `json:"following_count"`
}

// UpdateProfileResult mirrors the profile form's {success, error} state.
type UpdateProfileResult struct {
	Success bool   `json:"success"`
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserService handles search, profiles and profile visits
type UserService struct {
	base
	users   repositories.UserRepository
	follows repositories.FollowRepository
	blocks  repositories.BlockRepository
	visits  repositories.VisitRepository
}

func NewUserService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	blocks repositories.BlockRepository,
	visits repositories.VisitRepository,
	log *logrus.Entry,
	m *metrics.Metrics,
) *UserService {
	return &UserService{
		base:    newBase(log, m),
		users:   users,
		follows: follows,
		blocks:  blocks,
		visits:  visits,
	}
}

// SearchUsers matches the query against username, name and surname. An
// empty query returns no results without touching the store.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.UserCompact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserCompact{}, nil
	}
	users, err := s.users.SearchUsers(ctx, query, SearchLimit)
	if err != nil {
		return nil, s.done("search_users", s.fail("search_users", err))
	}
	return users, s.done("search_users", nil)
}

// GetProfile loads username's page. A signed-in caller other than the
// owner records a visit; a caller blocked by the owner sees NotFound.
func (s *UserService) GetProfile(ctx context.Context, callerID, username string) (*Profile, error) {
	p, err := s.getProfile(ctx, callerID, username)
	return p, s.done("get_profile", err)
}

func (s *UserService) getProfile(ctx context.Context, callerID, username string) (*Profile, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, s.fail("get_profile", err)
	}

	if callerID != "" && callerID != user.ID {
		blocked, err := s.blocks.IsBlocked(ctx, user.ID, callerID)
		if err != nil {
			return nil, s.fail("get_profile", err)
		}
		if blocked {
			return nil, apperrors.NotFound("User not found")
		}
		visit := &models.ProfileVisit{VisitorID: callerID, VisitedUserID: user.ID}
		if err := s.visits.RecordVisit(ctx, visit); err != nil {
			s.log.WithError(err).WithField("visited_user_id", user.ID).Warn("failed to record profile visit")
		}
	}

	p := &Profile{User: user}
	if p.FollowersCount, err = s.follows.GetFollowersCount(ctx, user.ID); err != nil {
		return nil, s.fail("get_profile", err)
	}
	if p.FollowingCount, err = s.follows.GetFollowingCount(ctx, user.ID); err != nil {
		return nil, s.fail("get_profile", err)
	}
	return p, nil
}

// Visitors lists who visited the caller's profile: one entry per visitor
// with their latest visit, newest first.
func (s *UserService) Visitors(ctx context.Context, callerID string) ([]models.Visitor, error) {
	v, err := s.visitors(ctx, callerID)
	return v, s.done("list_visitors", err)
}

func (s *UserService) visitors(ctx context.Context, callerID string) ([]models.Visitor, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	visits, err := s.visits.GetLatestVisits(ctx, callerID)
	if err != nil {
		return nil, s.fail("list_visitors", err)
	}

	ids := make([]string, 0, len(visits))
	for _, v := range visits {
		ids = append(ids, v.VisitorID)
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, s.fail("list_visitors", err)
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range visits {
		visits[i].Visitor = byID[visits[i].VisitorID]
	}
	return visits, nil
}

// Me returns the caller's own row.
func (s *UserService) Me(ctx context.Context, callerID string) (*models.User, error) {
	u, err := s.me(ctx, callerID)
	return u, s.done("me", err)
}

func (s *UserService) me(ctx context.Context, callerID string) (*models.User, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, callerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, s.fail("me", err)
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields of req to the caller.
func (s *UserService) UpdateProfile(ctx context.Context, callerID string, req models.UpdateProfileRequest) error {
	return s.done("update_profile", s.updateProfile(ctx, callerID, req))
}

func (s *UserService) updateProfile(ctx context.Context, callerID string, req models.UpdateProfileRequest) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if err := s.validate.Validate(req); err != nil {
		return s.invalid(err)
	}
	if err := s.users.UpdateUserFields(ctx, callerID, req.Fields()); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("User not found")
		}
		return s.fail("update_profile", err)
	}
	return nil
}

// SyncIdentity stores the user on first sign-in and returns the stored row.
func (s *UserService) SyncIdentity(ctx context.Context, user *models.User) (*models.User, error) {
	stored, err := s.users.UpsertUser(ctx, user)
	if err != nil {
		return nil, s.done("sync_identity", s.fail("sync_identity", err))
	}
	return stored, s.done("sync_identity", nil)
}
