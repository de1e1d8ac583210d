package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/socialite/backend/internal/middleware"
	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/services"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// FeedService is implemented by *services.FeedService
type FeedService interface {
	Feed(ctx context.Context, username, callerID string) ([]services.FeedItem, error)
}

// StoryService is implemented by *services.StoryService
type StoryService interface {
	AddStory(ctx context.Context, callerID string, req models.CreateStoryRequest) (*models.Story, error)
	VisibleStories(ctx context.Context, callerID string) ([]services.StoryView, error)
	ToggleLike(ctx context.Context, callerID string, storyID uint) (int64, error)
	StoryLikes(ctx context.Context, storyID uint) ([]string, error)
}

// GraphService is implemented by *services.GraphService
type GraphService interface {
	SwitchFollow(ctx context.Context, callerID, targetID string) (services.FollowState, error)
	AcceptFollowRequest(ctx context.Context, callerID, senderID string) error
	DeclineFollowRequest(ctx context.Context, callerID, senderID string) error
	PendingRequests(ctx context.Context, callerID string) ([]models.FollowRequest, error)
	SwitchBlock(ctx context.Context, callerID, targetID string) (bool, error)
	Relation(ctx context.Context, callerID, targetID string) (*services.Relation, error)
}

// PostService is implemented by *services.PostService
type PostService interface {
	AddPost(ctx context.Context, callerID string, req models.CreatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, callerID string, postID uint) error
	SwitchLike(ctx context.Context, callerID string, postID uint) (bool, error)
	AddComment(ctx context.Context, callerID string, postID uint, req models.CreateCommentRequest) (*models.Comment, error)
	Comments(ctx context.Context, postID uint) ([]models.Comment, error)
	SharePost(ctx context.Context, callerID string, postID uint) (*models.Share, error)
}

// UserService is implemented by *services.UserService
type UserService interface {
	SearchUsers(ctx context.Context, query string) ([]models.UserCompact, error)
	GetProfile(ctx context.Context, callerID, username string) (*services.Profile, error)
	Visitors(ctx context.Context, callerID string) ([]models.Visitor, error)
	Me(ctx context.Context, callerID string) (*models.User, error)
	UpdateProfile(ctx context.Context, callerID string, req models.UpdateProfileRequest) error
	SyncIdentity(ctx context.Context, user *models.User) (*models.User, error)
}

func getUserIDFromContext(c echo.Context) string {
	return middleware.UserID(c)
}

func statusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// httpError maps a service error onto an echo error. Persistence causes
// never reach the response body.
func httpError(err error) error {
	return echo.NewHTTPError(statusOf(err), apperrors.MessageOf(err))
}

func parseID(c echo.Context, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+what+" ID")
	}
	return uint(id), nil
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}
