package services

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/repositories"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// FollowState is the caller's follow relation toward another user.
type FollowState string

const (
	FollowNone      FollowState = "none"
	FollowRequested FollowState = "requested"
	FollowFollowing FollowState = "following"
)

// Relation summarises the edges from the caller toward a target.
type Relation struct {
	Follow    FollowState `json:"follow"`
	Blocked   bool        `json:"blocked"`
	BlockedBy bool        `json:"blocked_by"`
}

// GraphService owns follows, follow requests and blocks
type GraphService struct {
	base
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	requests repositories.FollowRequestRepository
	blocks   repositories.BlockRepository
}

func NewGraphService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	requests repositories.FollowRequestRepository,
	blocks repositories.BlockRepository,
	log *logrus.Entry,
	m *metrics.Metrics,
) *GraphService {
	return &GraphService{
		base:     newBase(log, m),
		users:    users,
		follows:  follows,
		requests: requests,
		blocks:   blocks,
	}
}

// checkTarget rejects anonymous callers, self edges and unknown targets.
func (s *GraphService) checkTarget(ctx context.Context, action, callerID, targetID, self string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if callerID == targetID {
		return apperrors.Validation(self, nil)
	}
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("User not found")
		}
		return s.fail(action, err)
	}
	return nil
}

// SwitchFollow unfollows, cancels a pending request, or sends a request,
// depending on which edge currently exists.
func (s *GraphService) SwitchFollow(ctx context.Context, callerID, targetID string) (FollowState, error) {
	state, err := s.switchFollow(ctx, callerID, targetID)
	return state, s.done("switch_follow", err)
}

func (s *GraphService) switchFollow(ctx context.Context, callerID, targetID string) (FollowState, error) {
	if err := s.checkTarget(ctx, "switch_follow", callerID, targetID, "You cannot follow yourself"); err != nil {
		return "", err
	}

	unfollowed, err := s.follows.DeleteFollow(ctx, callerID, targetID)
	if err != nil {
		return "", s.fail("switch_follow", err)
	}
	if unfollowed {
		return FollowNone, nil
	}

	cancelled, err := s.requests.DeleteFollowRequest(ctx, callerID, targetID)
	if err != nil {
		return "", s.fail("switch_follow", err)
	}
	if cancelled {
		return FollowNone, nil
	}

	req := &models.FollowRequest{SenderID: callerID, ReceiverID: targetID}
	if err := s.requests.CreateFollowRequest(ctx, req); err != nil {
		return "", s.fail("switch_follow", err)
	}
	return FollowRequested, nil
}

// AcceptFollowRequest turns senderID's pending request into a follower edge.
func (s *GraphService) AcceptFollowRequest(ctx context.Context, callerID, senderID string) error {
	return s.done("accept_follow_request", s.acceptFollowRequest(ctx, callerID, senderID))
}

func (s *GraphService) acceptFollowRequest(ctx context.Context, callerID, senderID string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if err := s.requests.AcceptFollowRequest(ctx, senderID, callerID); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("Follow request not found")
		}
		return s.fail("accept_follow_request", err)
	}
	return nil
}

// DeclineFollowRequest drops senderID's pending request, if any.
func (s *GraphService) DeclineFollowRequest(ctx context.Context, callerID, senderID string) error {
	return s.done("decline_follow_request", s.declineFollowRequest(ctx, callerID, senderID))
}

func (s *GraphService) declineFollowRequest(ctx context.Context, callerID, senderID string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if _, err := s.requests.DeleteFollowRequest(ctx, senderID, callerID); err != nil {
		return s.fail("decline_follow_request", err)
	}
	return nil
}

// PendingRequests lists the requests the caller has received.
func (s *GraphService) PendingRequests(ctx context.Context, callerID string) ([]models.FollowRequest, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, s.done("list_follow_requests", err)
	}
	reqs, err := s.requests.GetPendingFollowRequests(ctx, callerID)
	if err != nil {
		return nil, s.done("list_follow_requests", s.fail("list_follow_requests", err))
	}
	return reqs, s.done("list_follow_requests", nil)
}

// SwitchBlock blocks or unblocks targetID. Follow edges are left alone.
func (s *GraphService) SwitchBlock(ctx context.Context, callerID, targetID string) (bool, error) {
	blocked, err := s.switchBlock(ctx, callerID, targetID)
	return blocked, s.done("switch_block", err)
}

func (s *GraphService) switchBlock(ctx context.Context, callerID, targetID string) (bool, error) {
	if err := s.checkTarget(ctx, "switch_block", callerID, targetID, "You cannot block yourself"); err != nil {
		return false, err
	}
	blocked, err := s.blocks.ToggleBlock(ctx, callerID, targetID)
	if err != nil {
		return false, s.fail("switch_block", err)
	}
	return blocked, nil
}

// Relation reports the caller's edges toward targetID.
func (s *GraphService) Relation(ctx context.Context, callerID, targetID string) (*Relation, error) {
	rel, err := s.relation(ctx, callerID, targetID)
	return rel, s.done("relation", err)
}

func (s *GraphService) relation(ctx context.Context, callerID, targetID string) (*Relation, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	rel := &Relation{Follow: FollowNone}
	if callerID == targetID {
		return rel, nil
	}

	following, err := s.follows.IsFollowing(ctx, callerID, targetID)
	if err != nil {
		return nil, s.fail("relation", err)
	}
	if following {
		rel.Follow = FollowFollowing
	} else {
		requested, err := s.requests.HasFollowRequest(ctx, callerID, targetID)
		if err != nil {
			return nil, s.fail("relation", err)
		}
		if requested {
			rel.Follow = FollowRequested
		}
	}

	if rel.Blocked, err = s.blocks.IsBlocked(ctx, callerID, targetID); err != nil {
		return nil, s.fail("relation", err)
	}
	if rel.BlockedBy, err = s.blocks.IsBlocked(ctx, targetID, callerID); err != nil {
		return nil, s.fail("relation", err)
	}
	return rel, nil
}
