package app

import (
	"context"

	"github.com/rs/zerolog"

	"quizbox/internal/domain"
)

// QuestionRepository loads the question bank (from a file, Postgres,
// a Redis cache, etc).
type QuestionRepository interface {
	GetQuestions(ctx context.Context) ([]domain.Question, error)
}

// LeaderboardMirror publishes the current standings to an external
// read-only store. Best effort: failures are logged, never surfaced.
type LeaderboardMirror interface {
	Publish(ctx context.Context, pin string, entries []domain.LeaderboardEntry) error
	Clear(ctx context.Context, pin string) error
}

// GameService wraps the engine with the use cases the transport layer
// calls. It owns the I/O the engine is not allowed to do: reloading
// the question bank on reset and mirroring the leaderboard outward.
type GameService struct {
	session   *Session
	questions QuestionRepository
	mirror    LeaderboardMirror
	log       zerolog.Logger
}

// NewGameService loads the question bank and creates the room.
func NewGameService(ctx context.Context, pin string, questions QuestionRepository, mirror LeaderboardMirror, rules Rules, log zerolog.Logger) (*GameService, error) {
	bank, err := questions.GetQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return &GameService{
		session:   NewSession(pin, bank, rules),
		questions: questions,
		mirror:    mirror,
		log:       log,
	}, nil
}

// NewGameServiceWithSession is for tests that need a fake clock.
func NewGameServiceWithSession(session *Session, questions QuestionRepository, mirror LeaderboardMirror, log zerolog.Logger) *GameService {
	return &GameService{session: session, questions: questions, mirror: mirror, log: log}
}

// PIN returns the room code.
func (g *GameService) PIN() string {
	return g.session.PIN()
}

// HostCommand applies a round-control command. Reset reloads the
// question bank through the repository so an edited pack takes effect
// for the next round; if the reload fails the previous bank is kept.
func (g *GameService) HostCommand(ctx context.Context, cmd domain.HostCommand) error {
	if cmd == domain.CommandReset {
		bank, err := g.questions.GetQuestions(ctx)
		if err != nil {
			g.log.Warn().Err(err).Msg("question reload failed, keeping current bank")
			bank = nil
		}
		g.session.Reset(bank)
		g.clearMirror(ctx)
		return nil
	}

	if err := g.session.HostCommand(cmd); err != nil {
		return err
	}
	if cmd == domain.CommandReveal || cmd == domain.CommandNext {
		g.publishMirror(ctx)
	}
	return nil
}

// Join registers a player in the room.
func (g *GameService) Join(ctx context.Context, pin, name string) (domain.JoinResult, error) {
	return g.session.Join(pin, name)
}

// SubmitAnswer records a player's answer for the question in flight.
func (g *GameService) SubmitAnswer(ctx context.Context, playerID string, option int) error {
	return g.session.SubmitAnswer(playerID, option)
}

// HostSnapshot returns the host view of the room.
func (g *GameService) HostSnapshot(ctx context.Context) domain.HostView {
	return g.session.HostSnapshot()
}

// PlayerSnapshot returns one player's view of the room.
func (g *GameService) PlayerSnapshot(ctx context.Context, playerID string) (domain.PlayerView, error) {
	return g.session.PlayerSnapshot(playerID)
}

func (g *GameService) publishMirror(ctx context.Context) {
	if g.mirror == nil {
		return
	}
	if err := g.mirror.Publish(ctx, g.session.PIN(), g.session.Leaderboard()); err != nil {
		g.log.Warn().Err(err).Msg("leaderboard mirror publish failed")
	}
}

func (g *GameService) clearMirror(ctx context.Context) {
	if g.mirror == nil {
		return
	}
	if err := g.mirror.Clear(ctx, g.session.PIN()); err != nil {
		g.log.Warn().Err(err).Msg("leaderboard mirror clear failed")
	}
}
