package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ReactionStatus is the current user's reaction to a blog, fetched on
// detail page render when a session is present.
type ReactionStatus struct {
	UserReaction string `json:"userReaction"`
}

// UserReaction returns which reaction ("like", "dislike" or "") the
// token's user holds on a blog.
func (c *Client) UserReaction(ctx context.Context, token string, blogID int64) (string, error) {
	var status ReactionStatus
	u := fmt.Sprintf("%s/blogs/%d/reactions", c.Endpoints.Reactions, blogID)
	if err := c.getJSON(ctx, u, token, &status); err != nil {
		return "", err
	}
	return status.UserReaction, nil
}

// ToggleResult is the reaction toggle response. Two response contracts
// exist in the wild: an authoritative one carrying the new counters and
// the user's reaction, and a minimal one carrying only the action
// ("removed", "added", "updated"). Counts is nil for the minimal form.
type ToggleResult struct {
	Action       string
	Counts       *ReactionCounts
	UserReaction string
}

// toggleData is the data block of the authoritative contract.
type toggleData struct {
	Reactions    *ReactionCounts `json:"reactions"`
	UserReaction string          `json:"userReaction"`
}

// ToggleReaction sends one idempotent toggle for the given reaction type
// ("like" or "dislike") and returns what the server decided.
func (c *Client) ToggleReaction(ctx context.Context, token string, blogID int64, reactionType string) (ToggleResult, error) {
	payload := map[string]string{"reactionType": reactionType}
	u := fmt.Sprintf("%s/blogs/%d/reactions/toggle", c.Endpoints.Reactions, blogID)
	env, err := c.do(ctx, http.MethodPut, u, token, payload)
	if err != nil {
		return ToggleResult{}, err
	}
	result := ToggleResult{Action: env.Action}
	if len(env.Data) > 0 {
		var data toggleData
		if err := json.Unmarshal(env.Data, &data); err == nil {
			result.Counts = data.Reactions
			result.UserReaction = data.UserReaction
		}
	}
	return result, nil
}
