package usecase

import (
	"context"
	"errors"
	"strings"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/user"
	"habit-streak-bot/internal/user/repository"
	"habit-streak-bot/internal/validation"
)

func (uc *implUseCase) Get(ctx context.Context, userID int64) (model.User, error) {
	u, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Get GetUser: user=%d: %v", userID, err)
		return model.User{}, err
	}
	return u, nil
}

func (uc *implUseCase) Ensure(ctx context.Context, sc model.Scope) (model.User, error) {
	u, err := uc.repo.EnsureUser(ctx, repository.EnsureUserOptions{ID: sc.UserID, Timezone: uc.defaultTZ, At: uc.now()})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Ensure EnsureUser: user=%d: %v", sc.UserID, err)
		return model.User{}, err
	}
	return u, nil
}

func (uc *implUseCase) Register(ctx context.Context, sc model.Scope, input user.RegisterInput) (model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Timezone = strings.TrimSpace(input.Timezone)
	if err := validation.Struct(input); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Field == "Timezone" {
			return model.User{}, user.ErrInvalidTimezone
		}
		return model.User{}, user.ErrInvalidName
	}

	u, err := uc.Ensure(ctx, sc)
	if err != nil {
		return model.User{}, err
	}

	opt := repository.UpdateUserOptions{ID: sc.UserID}
	if input.Username == "" && u.Username == "" {
		input.Username = strings.TrimSpace(sc.Username)
	}
	if input.Username != "" && input.Username != u.Username {
		opt.Username = &input.Username
	}
	moved := input.Timezone != "" && input.Timezone != u.Timezone
	if moved {
		opt.Timezone = &input.Timezone
	}
	if opt.Username == nil && opt.Timezone == nil {
		return u, nil
	}

	u, err = uc.update(ctx, opt)
	if err != nil {
		return model.User{}, err
	}
	if moved {
		uc.resync(ctx, u)
	}
	return u, nil
}

func (uc *implUseCase) SetTimezone(ctx context.Context, sc model.Scope, timezone string) (model.User, error) {
	timezone = strings.TrimSpace(timezone)
	if !validation.ValidTimezone(timezone) {
		return model.User{}, user.ErrInvalidTimezone
	}
	if _, err := uc.Ensure(ctx, sc); err != nil {
		return model.User{}, err
	}

	u, err := uc.update(ctx, repository.UpdateUserOptions{ID: sc.UserID, Timezone: &timezone})
	if err != nil {
		return model.User{}, err
	}
	uc.resync(ctx, u)
	return u, nil
}

func (uc *implUseCase) SetName(ctx context.Context, sc model.Scope, name string) (model.User, error) {
	name = strings.TrimSpace(name)
	if !validation.ValidDisplayName(name) {
		return model.User{}, user.ErrInvalidName
	}
	if _, err := uc.Ensure(ctx, sc); err != nil {
		return model.User{}, err
	}
	return uc.update(ctx, repository.UpdateUserOptions{ID: sc.UserID, Username: &name})
}

func (uc *implUseCase) update(ctx context.Context, opt repository.UpdateUserOptions) (model.User, error) {
	u, err := uc.repo.UpdateUser(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.update UpdateUser: user=%d: %v", opt.ID, err)
		return model.User{}, err
	}
	if u.ID == 0 {
		return model.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// resync moves the user's triggers to the new zone. A partial failure is
// logged; the periodic reconcile retries.
func (uc *implUseCase) resync(ctx context.Context, u model.User) {
	if uc.rescheduler == nil {
		return
	}
	sc := model.Scope{UserID: u.ID, Username: u.Username, Timezone: u.Timezone}
	if err := uc.rescheduler.Resync(ctx, sc); err != nil {
		uc.l.Warnf(ctx, "uc.resync: user=%d tz=%s: %v", u.ID, u.Timezone, err)
	}
}
