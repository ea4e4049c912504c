package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

const (
	userPageDefault    = 50
	userPageMax        = 50
	historyPageDefault = 25
	historyPageMax     = 100

	maxUsernameLength = 32

	StatusMin = 0
	StatusMax = 3
)

// UserService defines listing and moderation of users. moderator is the acting user;
// route guards ensure it has at least the moderator role where that is required.
type UserService interface {
	List(ctx context.Context, page, limit int) (*model.Page[model.User], error)
	Get(ctx context.Context, id string) (*model.User, error)
	History(ctx context.Context, id string, page, limit int) (*model.Page[model.HistoryEntry], error)

	// Ban bans for d when d > 0 and lifts the ban otherwise.
	Ban(ctx context.Context, moderator *model.User, id string, d time.Duration, exiled bool) (*model.User, error)
	// Mute mutes for d when d > 0 and unmutes otherwise. It reports whether the user is muted.
	Mute(ctx context.Context, moderator *model.User, id string, d time.Duration) (bool, error)
	ChangeRole(ctx context.Context, moderator *model.User, id string, role int) (*model.User, error)
	ChangeUsername(ctx context.Context, moderator *model.User, id, username string) (*model.User, error)
	SetStatus(ctx context.Context, user *model.User, id string, status int) (int, error)
	Disconnect(ctx context.Context, moderator *model.User, id string) error
}

type userService struct {
	users   repository.UserRepository
	history repository.HistoryRepository
	state   UserState
	booth   Booth
	bus     Publisher
	log     zerolog.Logger
	now     func() time.Time
}

func NewUserService(
	users repository.UserRepository,
	history repository.HistoryRepository,
	state UserState,
	booth Booth,
	bus Publisher,
	log zerolog.Logger,
) UserService {
	return &userService{
		users:   users,
		history: history,
		state:   state,
		booth:   booth,
		bus:     bus,
		log:     log.With().Str("component", "users").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *userService) find(ctx context.Context, id string) (*model.User, error) {
	if !validID(id) {
		return nil, notFound("user with ID %s not found", id)
	}
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("user with ID %s not found", id)
	}
	return u, err
}

// publish logs instead of failing: the change is already stored.
func (s *userService) publish(ctx context.Context, command string, data map[string]any) {
	if err := s.bus.Publish(ctx, command, data); err != nil {
		s.log.Error().Err(err).Str("command", command).Msg("publish failed")
	}
}

// moderatable refuses actions on users ranked above the moderator.
func moderatable(moderator, target *model.User) error {
	if target.Role > moderator.Role {
		return forbidden("you can't moderate a user with a higher role")
	}
	return nil
}

func (s *userService) List(ctx context.Context, page, limit int) (*model.Page[model.User], error) {
	pq := repository.NewPageQuery(page, limit, userPageDefault, userPageMax)
	res, err := s.users.List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.User]{Page: pq.Page, PageSize: pq.Limit, Total: res.Total, Data: res.Items}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.find(ctx, id)
}

func (s *userService) History(ctx context.Context, id string, page, limit int) (*model.Page[model.HistoryEntry], error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	pq := repository.NewPageQuery(page, limit, historyPageDefault, historyPageMax)
	res, err := s.history.ListByUser(ctx, u.ID, pq)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.HistoryEntry]{Page: pq.Page, PageSize: pq.Limit, Total: res.Total, Data: res.Items}, nil
}

func (s *userService) Ban(ctx context.Context, moderator *model.User, id string, d time.Duration, exiled bool) (*model.User, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := moderatable(moderator, u); err != nil {
		return nil, err
	}

	now := s.now()
	wasBanned := u.IsBanned(now)
	if d > 0 {
		until := now.Add(d)
		u.BannedUntil = &until
		u.Exiled = exiled
	} else {
		u.BannedUntil = nil
		u.Exiled = false
	}
	u.UpdatedAt = now

	out, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save ban: %w", err)
	}

	switch {
	case d > 0:
		s.publish(ctx, "ban", map[string]any{
			"moderatorID": moderator.ID,
			"userID":      out.ID,
			"duration":    d.Milliseconds(),
			"expiresAt":   out.BannedUntil.UnixMilli(),
			"exiled":      out.Exiled,
		})
	case wasBanned:
		s.publish(ctx, "unban", map[string]any{
			"moderatorID": moderator.ID,
			"userID":      out.ID,
		})
	}
	return out, nil
}

func (s *userService) Mute(ctx context.Context, moderator *model.User, id string, d time.Duration) (bool, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}
	if err := moderatable(moderator, u); err != nil {
		return false, err
	}
	if err := s.state.Mute(ctx, u.ID, d); err != nil {
		return false, fmt.Errorf("store mute: %w", err)
	}

	command := "unmute"
	if d > 0 {
		command = "mute"
	}
	s.publish(ctx, command, map[string]any{
		"moderatorID": moderator.ID,
		"userID":      u.ID,
		"expires":     d.Milliseconds(),
	})
	return d > 0, nil
}

func (s *userService) ChangeRole(ctx context.Context, moderator *model.User, id string, role int) (*model.User, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := moderatable(moderator, u); err != nil {
		return nil, err
	}
	role = model.ClampRole(role)
	if role > moderator.Role {
		return nil, forbidden("you can't grant a role above your own")
	}

	u.Role = role
	u.UpdatedAt = s.now()
	out, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save role: %w", err)
	}

	s.publish(ctx, "roleChange", map[string]any{
		"moderatorID": moderator.ID,
		"userID":      out.ID,
		"role":        out.Role,
	})
	return out, nil
}

func (s *userService) ChangeUsername(ctx context.Context, moderator *model.User, id, username string) (*model.User, error) {
	if moderator.ID != id && moderator.Role < model.RoleAdmin {
		return nil, forbidden("you need to be an admin to do this")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("username is not set")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, invalid("username can't be longer than %d characters", maxUsernameLength)
	}

	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Username = username
	u.Slug = strings.ToLower(username)
	u.UpdatedAt = s.now()

	out, err := s.users.Update(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, conflict("username %s is already taken", username)
	}
	if err != nil {
		return nil, fmt.Errorf("save username: %w", err)
	}

	s.publish(ctx, "nameChange", map[string]any{
		"moderatorID": moderator.ID,
		"userID":      out.ID,
		"username":    out.Username,
	})
	return out, nil
}

func (s *userService) SetStatus(ctx context.Context, user *model.User, id string, status int) (int, error) {
	if user.ID != id {
		return 0, forbidden("you can only change your own status")
	}
	status = min(max(status, StatusMin), StatusMax)
	s.publish(ctx, "statusChange", map[string]any{
		"userID": user.ID,
		"status": status,
	})
	return status, nil
}

func (s *userService) Disconnect(ctx context.Context, moderator *model.User, id string) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := moderatable(moderator, u); err != nil {
		return err
	}

	if _, err := s.booth.SkipIfCurrentDJ(ctx, u.ID); err != nil {
		return fmt.Errorf("skip current dj: %w", err)
	}
	if err := s.booth.LeaveWaitlist(ctx, u.ID); err != nil {
		s.log.Debug().Err(err).Str("user_id", u.ID).Msg("leave waitlist on disconnect")
	}
	if err := s.state.DeleteSession(ctx, u.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.publish(ctx, "user:leave", map[string]any{"userID": u.ID})
	return nil
}
