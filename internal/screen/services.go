package screen

import (
	"context"
	"time"

	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/logging"
	"github.com/abhisek/quizionix/internal/practice"
	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/store"
	"github.com/abhisek/quizionix/internal/usermodel"
	"github.com/abhisek/quizionix/internal/zone"
)

// Services are the engines and stores shared by every screen. Screens run
// on the Bubble Tea event loop, so the engines are only touched from one
// goroutine.
type Services struct {
	Catalog  *catalog.Catalog
	Users    *usermodel.Model
	Quiz     *quiz.Engine
	Zone     *zone.Engine
	Practice *practice.Game
	KV       store.KV
	Log      *logging.Logger

	QuizDefaults quiz.Options
	TimeAllowed  time.Duration
	TickInterval time.Duration
}

// SaveZone persists the zone state of the active user. Failures are
// logged and otherwise ignored.
func (s *Services) SaveZone(ctx context.Context) {
	if err := zone.SaveState(ctx, s.KV, s.Users.UserID(), s.Zone.State()); err != nil {
		logging.OrNop(s.Log).Warn("save zone state failed", "error", err, "user_id", s.Users.UserID())
	}
}

// SavePractice persists the practice state of the active user.
func (s *Services) SavePractice(ctx context.Context) {
	if err := practice.SaveState(ctx, s.KV, s.Users.UserID(), s.Practice.State()); err != nil {
		logging.OrNop(s.Log).Warn("save practice state failed", "error", err, "user_id", s.Users.UserID())
	}
}
