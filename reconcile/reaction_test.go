package reconcile

import (
	"sync"
	"testing"

	"github.com/firatdemir47/blogsphere-web/api"
)

func TestReconcileFirstLike(t *testing.T) {
	prior := ReactionState{LikeCount: 3, DislikeCount: 1}
	got := Reconcile(prior, api.ToggleResult{Action: "added"}, Like)

	want := ReactionState{LikeCount: 4, DislikeCount: 1, UserReaction: Like}
	if got != want {
		t.Errorf("Reconcile = %+v, want %+v", got, want)
	}
}

func TestReconcileSwitchToDislike(t *testing.T) {
	prior := ReactionState{LikeCount: 4, DislikeCount: 1, UserReaction: Like}
	got := Reconcile(prior, api.ToggleResult{Action: "updated"}, Dislike)

	want := ReactionState{LikeCount: 3, DislikeCount: 2, UserReaction: Dislike}
	if got != want {
		t.Errorf("Reconcile = %+v, want %+v", got, want)
	}
}

func TestReconcileDoubleToggleRestoresOriginal(t *testing.T) {
	original := ReactionState{LikeCount: 3, DislikeCount: 1}

	after := Reconcile(original, api.ToggleResult{Action: "added"}, Like)
	got := Reconcile(after, api.ToggleResult{Action: "removed"}, Like)

	if got.LikeCount != original.LikeCount || got.DislikeCount != original.DislikeCount {
		t.Errorf("counts after double toggle = %d/%d, want %d/%d",
			got.LikeCount, got.DislikeCount, original.LikeCount, original.DislikeCount)
	}
	if got.UserReaction != "" {
		t.Errorf("UserReaction after double toggle = %q, want cleared", got.UserReaction)
	}
}

func TestReconcileAtMostOneActiveReaction(t *testing.T) {
	// Any sequence of toggles keeps at most one reaction active and both
	// counters non-negative.
	state := ReactionState{LikeCount: 1}
	sequence := []struct {
		kind   string
		action string
	}{
		{Like, "added"},
		{Dislike, "updated"},
		{Dislike, "removed"},
		{Like, "added"},
		{Like, "removed"},
		{Dislike, "added"},
	}
	for i, step := range sequence {
		state = Reconcile(state, api.ToggleResult{Action: step.action}, step.kind)
		if state.LikeCount < 0 || state.DislikeCount < 0 {
			t.Fatalf("step %d: negative counter: %+v", i, state)
		}
		if state.UserReaction != "" && state.UserReaction != Like && state.UserReaction != Dislike {
			t.Fatalf("step %d: invalid marker %q", i, state.UserReaction)
		}
	}
}

func TestReconcileRemovalNeverGoesNegative(t *testing.T) {
	prior := ReactionState{LikeCount: 0, DislikeCount: 0, UserReaction: Like}
	got := Reconcile(prior, api.ToggleResult{Action: "removed"}, Like)

	if got.LikeCount != 0 {
		t.Errorf("LikeCount = %d, want clamped at 0", got.LikeCount)
	}
}

func TestReconcileAuthoritativeCountersWin(t *testing.T) {
	// When the server returns the counter block, local math is ignored.
	prior := ReactionState{LikeCount: 3, DislikeCount: 1}
	result := api.ToggleResult{
		Action:       "added",
		Counts:       &api.ReactionCounts{LikeCount: 10, DislikeCount: 2},
		UserReaction: Like,
	}
	got := Reconcile(prior, result, Like)

	want := ReactionState{LikeCount: 10, DislikeCount: 2, UserReaction: Like}
	if got != want {
		t.Errorf("Reconcile = %+v, want %+v", got, want)
	}
}

func TestReconcileAuthoritativeClampsNegative(t *testing.T) {
	result := api.ToggleResult{
		Action: "removed",
		Counts: &api.ReactionCounts{LikeCount: -1, DislikeCount: 0},
	}
	got := Reconcile(ReactionState{}, result, Like)

	if got.LikeCount != 0 {
		t.Errorf("LikeCount = %d, want 0", got.LikeCount)
	}
}

func TestBookmarkServerReportedStateWins(t *testing.T) {
	reported := false
	if got := Bookmark(false, &reported); got != false {
		t.Errorf("Bookmark(false, &false) = %v, want false", got)
	}
	reported = true
	if got := Bookmark(false, &reported); got != true {
		t.Errorf("Bookmark(false, &true) = %v, want true", got)
	}
}

func TestBookmarkFallbackNegatesPrior(t *testing.T) {
	if got := Bookmark(true, nil); got != false {
		t.Errorf("Bookmark(true, nil) = %v, want false", got)
	}
	if got := Bookmark(false, nil); got != true {
		t.Errorf("Bookmark(false, nil) = %v, want true", got)
	}
}

func TestGuardSerializesSameKey(t *testing.T) {
	g := NewGuard()

	if err := g.TryAcquire("sess1:blog7:reaction"); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if err := g.TryAcquire("sess1:blog7:reaction"); err != ErrBusy {
		t.Errorf("second acquire = %v, want ErrBusy", err)
	}
	// A different key is independent.
	if err := g.TryAcquire("sess1:blog8:reaction"); err != nil {
		t.Errorf("distinct key blocked: %v", err)
	}

	g.Release("sess1:blog7:reaction")
	if err := g.TryAcquire("sess1:blog7:reaction"); err != nil {
		t.Errorf("acquire after release failed: %v", err)
	}
}

func TestGuardConcurrentAcquire(t *testing.T) {
	g := NewGuard()

	var wg sync.WaitGroup
	acquired := make(chan struct{}, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("key") == nil {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()

	if len(acquired) != 1 {
		t.Errorf("%d goroutines acquired the same key, want 1", len(acquired))
	}
}
