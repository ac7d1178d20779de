package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/newsdigest/internal/client/api"
)

func (a *App) showDashboard(ctx context.Context) error {
	d, err := a.dashboard.Get(ctx)
	if err != nil {
		return err
	}
	printlnFn("Your reading dashboard")
	printlnFn(fmt.Sprintf("  Summaries read: %d", d.TotalRead))
	printlnFn(fmt.Sprintf("  Points:         %d", d.Points))
	printlnFn(fmt.Sprintf("  Streak:         %d (longest %d)", d.ReadingStreak, d.LongestStreak))
	printlnFn(renderBars("Topics read", topicBars(d.TopicsRead)))
	printlnFn(renderBars("Daily reads", dailyBars(d.DailyReads)))
	return nil
}

func (a *App) showProfile(ctx context.Context, userID string) error {
	p, err := a.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			printlnFn("User not found:", userID)
			return nil
		}
		return err
	}

	name := p.Email
	if name == "" {
		name = "user " + p.UserID.String()
	}
	printlnFn(name)
	printlnFn(fmt.Sprintf("  Points: %d  Streak: %d", p.Points, p.ReadingStreak))
	printlnFn(fmt.Sprintf("  Followers: %d  Following: %d", p.FollowerCount, p.FollowingCount))
	if len(p.TopTopics) > 0 {
		printlnFn("  Top topics:", strings.Join(p.TopTopics, ", "))
	}
	if p.UserID != "" && p.UserID.String() == a.session.Current().Session.UserID {
		return nil
	}
	if p.IsFollowing {
		printlnFn(fmt.Sprintf("  You follow this user. (follow %s to unfollow)", userID))
	} else {
		printlnFn(fmt.Sprintf("  (follow %s to follow)", userID))
	}
	return nil
}

// Follow toggles following userID.
func (a *App) Follow(ctx context.Context, userID string) error {
	if !a.guard(ctx, "/profile/"+url.PathEscape(userID)) {
		return nil
	}
	res, err := a.profiles.Follow(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrUnauthorized):
		a.expire(ctx, "/profile/"+url.PathEscape(userID))
		return err
	default:
		a.log.Warn(ctx, "follow failed", "user_id", userID, "error", err)
		printlnFn("Error:", api.Message(err, "Could not update follow status"))
		return err
	}

	if res.Following {
		printlnFn(fmt.Sprintf("Following user %s (%d followers).", userID, res.FollowerCount))
	} else {
		printlnFn(fmt.Sprintf("Unfollowed user %s (%d followers).", userID, res.FollowerCount))
	}
	return nil
}

func (a *App) showChat() {
	history := a.chat.History()
	if len(history) == 0 {
		printlnFn("Ask the assistant about today's news: chat <question>")
		return
	}
	for _, m := range history {
		printlnFn(m.Role+":", m.Content)
	}
}

// Chat sends text to the assistant and prints the reply.
func (a *App) Chat(ctx context.Context, text string) error {
	const path = "/chat"
	if !a.guard(ctx, path) {
		return nil
	}
	return a.load(ctx, path, func(ctx context.Context) error {
		reply, err := a.chat.Send(ctx, text, "")
		if err != nil {
			return err
		}
		printlnFn("assistant:", reply)
		return nil
	})
}
