// Package reconcile merges server-reported reaction and bookmark changes
// into the locally displayed counters and flags. The server is treated as
// authoritative when its response carries the new counters; when it only
// reports the action taken, the local counter math is applied instead.
package reconcile

import "github.com/firatdemir47/blogsphere-web/api"

// Reaction kinds. A user holds at most one of them per blog.
const (
	Like    = "like"
	Dislike = "dislike"
)

// ReactionState is the displayed reaction state for one blog: both
// counters plus which reaction the current user holds ("" for none).
type ReactionState struct {
	LikeCount    int
	DislikeCount int
	UserReaction string
}

// Reconcile folds a toggle response into the prior state and returns the
// new state. The input is never mutated. Counters never go below zero.
func Reconcile(prior ReactionState, result api.ToggleResult, requested string) ReactionState {
	if result.Counts != nil {
		return applyAuthoritative(result, requested)
	}
	if result.Action == "removed" {
		return applyRemoval(prior, requested)
	}
	return applySet(prior, requested)
}

// applyAuthoritative trusts the server's counter block verbatim.
func applyAuthoritative(result api.ToggleResult, requested string) ReactionState {
	state := ReactionState{
		LikeCount:    clamp(result.Counts.LikeCount),
		DislikeCount: clamp(result.Counts.DislikeCount),
		UserReaction: result.UserReaction,
	}
	// Some responses carry counters but omit userReaction; infer it from
	// the action so the marker stays consistent with the toggle.
	if result.UserReaction == "" && result.Action != "removed" && result.Action != "" {
		state.UserReaction = requested
	}
	return state
}

// applyRemoval handles the user clicking their existing reaction again:
// the matching counter drops and the marker clears.
func applyRemoval(prior ReactionState, requested string) ReactionState {
	state := prior
	switch requested {
	case Like:
		state.LikeCount = clamp(state.LikeCount - 1)
	case Dislike:
		state.DislikeCount = clamp(state.DislikeCount - 1)
	}
	state.UserReaction = ""
	return state
}

// applySet handles setting or switching the reaction: the new counter
// rises, and if the opposite reaction was held it drops.
func applySet(prior ReactionState, requested string) ReactionState {
	state := prior
	switch requested {
	case Like:
		state.LikeCount++
		if prior.UserReaction == Dislike {
			state.DislikeCount = clamp(state.DislikeCount - 1)
		}
	case Dislike:
		state.DislikeCount++
		if prior.UserReaction == Like {
			state.LikeCount = clamp(state.LikeCount - 1)
		}
	default:
		return prior
	}
	state.UserReaction = requested
	return state
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
