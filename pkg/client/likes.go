package client

import "context"

// LikeState is what a like button renders.
type LikeState struct {
	Liked bool
	Count int64
}

func flip(s LikeState) LikeState {
	if s.Liked {
		return LikeState{Liked: false, Count: s.Count - 1}
	}
	return LikeState{Liked: true, Count: s.Count + 1}
}

// LikeToggle is an optimistic like button for a post or a story.
type LikeToggle struct {
	state  *Optimistic[LikeState]
	remote func(ctx context.Context, prior LikeState) (LikeState, error)
}

// NewPostLikeToggle confirms against the post like endpoint. The API only
// reports the liked flag, so the count is moved by one from the prior
// count in whichever direction the server went. When the flag disagrees
// with the prior state the like had already changed elsewhere, and the
// prior count is assumed to include the like being removed or to lack
// the one being added.
func NewPostLikeToggle(c *Client, postID uint, initial LikeState) *LikeToggle {
	return &LikeToggle{
		state: NewOptimistic(initial),
		remote: func(ctx context.Context, prior LikeState) (LikeState, error) {
			liked, err := c.SwitchPostLike(ctx, postID)
			if err != nil {
				return LikeState{}, err
			}
			if liked {
				return LikeState{Liked: true, Count: prior.Count + 1}, nil
			}
			count := prior.Count - 1
			if count < 0 {
				count = 0
			}
			return LikeState{Liked: false, Count: count}, nil
		},
	}
}

// NewStoryLikeToggle confirms against the story like endpoint and adopts
// the count the server returns.
func NewStoryLikeToggle(c *Client, storyID uint, initial LikeState) *LikeToggle {
	return &LikeToggle{
		state: NewOptimistic(initial),
		remote: func(ctx context.Context, prior LikeState) (LikeState, error) {
			count, err := c.ToggleStoryLike(ctx, storyID)
			if err != nil {
				return LikeState{}, err
			}
			return LikeState{Liked: !prior.Liked, Count: count}, nil
		},
	}
}

func (t *LikeToggle) State() LikeState {
	return t.state.Get()
}

// Toggle flips the state at once and rolls it back if the server call fails.
func (t *LikeToggle) Toggle(ctx context.Context) (LikeState, error) {
	return t.state.Apply(flip, func(prior LikeState) (LikeState, error) {
		return t.remote(ctx, prior)
	})
}
