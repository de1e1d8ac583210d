package services

import (
	"context"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/repositories"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/anonto42/socialite/backend/pkg/events"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// PostService handles posts and the interactions on them
type PostService struct {
	base
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	shares   repositories.ShareRepository
	events   EventEmitter

	// strict surfaces post validation failures instead of dropping the post
	strict bool
}

func NewPostService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	shares repositories.ShareRepository,
	emitter EventEmitter,
	strictValidation bool,
	log *logrus.Entry,
	m *metrics.Metrics,
) *PostService {
	if emitter == nil {
		emitter = noopEmitter{}
	}
	return &PostService{
		base:     newBase(log, m),
		posts:    posts,
		comments: comments,
		likes:    likes,
		shares:   shares,
		events:   emitter,
		strict:   strictValidation,
	}
}

// AddPost creates a post for the caller. An invalid description is logged
// and the post is dropped with a nil post and nil error, unless strict
// validation is enabled.
func (s *PostService) AddPost(ctx context.Context, callerID string, req models.CreatePostRequest) (*models.Post, error) {
	post, err := s.addPost(ctx, callerID, req)
	return post, s.done("add_post", err)
}

func (s *PostService) addPost(ctx context.Context, callerID string, req models.CreatePostRequest) (*models.Post, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		if s.strict {
			return nil, s.invalid(err)
		}
		s.log.WithError(err).WithField("user_id", callerID).Warn("post rejected by validation")
		return nil, nil
	}

	post := &models.Post{Desc: req.Desc, Img: req.Img, UserID: callerID}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, s.fail("add_post", err)
	}

	s.events.Emit(ctx, events.PostCreated, events.PostEvent{PostID: post.ID, UserID: callerID})
	s.events.Invalidate(ctx, events.HomeView)
	return post, nil
}

// DeletePost removes the post when the caller owns it. Missing or foreign
// posts are a silent no-op.
func (s *PostService) DeletePost(ctx context.Context, callerID string, postID uint) error {
	return s.done("delete_post", s.deletePost(ctx, callerID, postID))
}

func (s *PostService) deletePost(ctx context.Context, callerID string, postID uint) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	deleted, err := s.posts.DeleteUserPost(ctx, postID, callerID)
	if err != nil {
		return s.fail("delete_post", err)
	}
	if deleted {
		s.events.Emit(ctx, events.PostDeleted, events.PostEvent{PostID: postID, UserID: callerID})
	}
	s.events.Invalidate(ctx, events.HomeView)
	return nil
}

// SwitchLike likes or unlikes a post and reports the new state.
func (s *PostService) SwitchLike(ctx context.Context, callerID string, postID uint) (bool, error) {
	liked, err := s.switchLike(ctx, callerID, postID)
	return liked, s.done("switch_like", err)
}

func (s *PostService) switchLike(ctx context.Context, callerID string, postID uint) (bool, error) {
	if err := requireCaller(callerID); err != nil {
		return false, err
	}
	liked, err := s.likes.TogglePostLike(ctx, postID, callerID)
	if err != nil {
		if isNotFound(err) {
			return false, apperrors.NotFound("Post not found")
		}
		return false, s.fail("switch_like", err)
	}
	return liked, nil
}

// AddComment attaches a comment to the post and returns it with its author.
func (s *PostService) AddComment(ctx context.Context, callerID string, postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	comment, err := s.addComment(ctx, callerID, postID, req)
	return comment, s.done("add_comment", err)
}

func (s *PostService) addComment(ctx context.Context, callerID string, postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, s.invalid(err)
	}

	comment := &models.Comment{Desc: req.Desc, UserID: callerID, PostID: postID}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, s.fail("add_comment", err)
	}
	return comment, nil
}

// Comments lists a post's comments, oldest first.
func (s *PostService) Comments(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, s.done("list_comments", s.fail("list_comments", err))
	}
	return comments, s.done("list_comments", nil)
}

// SharePost re-publishes an existing post on the caller's timeline.
// Repeated shares each create a new entry.
func (s *PostService) SharePost(ctx context.Context, callerID string, postID uint) (*models.Share, error) {
	share, err := s.sharePost(ctx, callerID, postID)
	return share, s.done("share_post", err)
}

func (s *PostService) sharePost(ctx context.Context, callerID string, postID uint) (*models.Share, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, s.fail("share_post", err)
	}

	share := &models.Share{UserID: callerID, PostID: post.ID}
	if err := s.shares.CreateShare(ctx, share); err != nil {
		return nil, s.fail("share_post", err)
	}
	share.Post = *post

	s.events.Emit(ctx, events.PostShared, events.ShareEvent{ShareID: share.ID, PostID: post.ID, UserID: callerID})
	s.events.Invalidate(ctx, events.HomeView)
	return share, nil
}
