package usecase

import (
	"time"

	"github.com/google/uuid"

	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/conversation/store"
	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/personality"
	"habit-streak-bot/internal/quota"
	"habit-streak-bot/internal/schedule"
	"habit-streak-bot/internal/task"
	"habit-streak-bot/internal/user"
	"habit-streak-bot/pkg/keylock"
	pkgLog "habit-streak-bot/pkg/log"
)

type implUseCase struct {
	l      pkgLog.Logger
	store  *store.Store
	locks  *keylock.Locker[int64]
	parser intent.Parser
	engine schedule.Engine
	voice  *personality.Voice
	users  user.UseCase
	tasks  task.UseCase
	quota  quota.UseCase
	ttl    time.Duration
	now    func() time.Time
	newID  func() string
}

// Deps are the collaborators of the conversation UseCase.
type Deps struct {
	Store  *store.Store
	Parser intent.Parser
	Engine schedule.Engine
	Voice  *personality.Voice
	Users  user.UseCase
	Tasks  task.UseCase
	Quota  quota.UseCase
	// Timeout defaults to conversation.DefaultTimeout.
	Timeout time.Duration
}

// New creates the conversation UseCase.
func New(l pkgLog.Logger, d Deps) conversation.UseCase {
	ttl := d.Timeout
	if ttl <= 0 {
		ttl = conversation.DefaultTimeout
	}
	return &implUseCase{
		l:      l,
		store:  d.Store,
		locks:  keylock.New[int64](),
		parser: d.Parser,
		engine: d.Engine,
		voice:  d.Voice,
		users:  d.Users,
		tasks:  d.Tasks,
		quota:  d.Quota,
		ttl:    ttl,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}
