package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"quizbox/internal/domain"
)

// Rules are the scoring tunables for a round.
type Rules struct {
	BasePoints       int
	MaxSpeedBonus    int
	StreakEvery      int
	StreakBonus      int
	DefaultTimeLimit time.Duration
}

// DefaultRules returns the scoring defaults used when config leaves
// them unset.
func DefaultRules() Rules {
	return Rules{
		BasePoints:       100,
		MaxSpeedBonus:    100,
		StreakEvery:      3,
		StreakBonus:      50,
		DefaultTimeLimit: 20 * time.Second,
	}
}

// Session is the in-memory game engine for the single room this
// process hosts. It owns the phase machine, the question timing, the
// player registry, and scoring. One mutex guards every entry point;
// each operation runs to completion and never blocks on I/O. Timer
// expiry is not delivered asynchronously: every entry point first
// normalizes time-dependent state, so a passed deadline is discovered
// on the next command or snapshot query.
type Session struct {
	mu    sync.Mutex
	clock clockwork.Clock
	rules Rules

	pin       string
	questions []domain.Question

	phase         domain.Phase
	questionIndex int
	questionStart time.Time
	deadline      time.Time
	scored        bool

	players   map[string]*domain.Player
	joinOrder []string
	nextIcon  int
}

// NewSession creates the room in the lobby phase with an empty
// registry. Questions without a time limit get the rules default.
func NewSession(pin string, questions []domain.Question, rules Rules) *Session {
	return NewSessionWithClock(pin, questions, rules, clockwork.NewRealClock())
}

// NewSessionWithClock injects the clock for deterministic tests.
func NewSessionWithClock(pin string, questions []domain.Question, rules Rules, clock clockwork.Clock) *Session {
	s := &Session{
		clock:   clock,
		rules:   rules,
		pin:     pin,
		phase:   domain.PhaseLobby,
		players: make(map[string]*domain.Player),
	}
	s.setQuestionsLocked(questions)
	return s
}

// PIN returns the room code, stable for the process lifetime.
func (s *Session) PIN() string {
	return s.pin
}

// QuestionCount returns the size of the loaded question bank.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// HostCommand applies a start/next/reveal command. Reset is handled by
// Reset so the caller can hand in a freshly loaded question bank.
func (s *Session) HostCommand(cmd domain.HostCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalizeLocked()

	switch cmd {
	case domain.CommandStart:
		if s.phase != domain.PhaseLobby {
			return domain.ErrInvalidPhaseForCommand
		}
		if len(s.questions) == 0 {
			return domain.ErrNoQuestions
		}
		s.phase = domain.PhaseJoining
		s.questionIndex = 0
		return nil

	case domain.CommandNext:
		switch s.phase {
		case domain.PhaseJoining:
			// The first question is presented at the current index.
			s.startQuestionLocked(s.questionIndex)
			return nil
		case domain.PhaseReveal:
			if s.questionIndex+1 < len(s.questions) {
				s.startQuestionLocked(s.questionIndex + 1)
			} else {
				s.phase = domain.PhaseFinal
			}
			return nil
		default:
			return domain.ErrInvalidPhaseForCommand
		}

	case domain.CommandReveal:
		if s.phase != domain.PhaseQuestion {
			return domain.ErrInvalidPhaseForCommand
		}
		s.revealLocked()
		return nil

	case domain.CommandReset:
		s.resetLocked(nil)
		return nil

	default:
		return domain.ErrUnknownCommand
	}
}

// Reset returns the room to the lobby and clears the registry. The PIN
// is kept. A non-nil question bank replaces the current one, so a
// reloaded pack takes effect for the next round.
func (s *Session) Reset(questions []domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(questions)
}

// Join registers a new player. Duplicate names are allowed and get
// independent identifiers. Joining is permitted in every phase except
// the final leaderboard; a mid-question joiner simply has no answer
// recorded for the question in flight.
func (s *Session) Join(pin, name string) (domain.JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalizeLocked()

	if pin != s.pin {
		return domain.JoinResult{}, domain.ErrInvalidRoomCode
	}
	if s.phase == domain.PhaseFinal {
		return domain.JoinResult{}, domain.ErrGameFinished
	}

	p := &domain.Player{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      playerIcons[s.nextIcon%len(playerIcons)],
		JoinOrder: len(s.joinOrder),
		Selected:  domain.NoAnswer,
	}
	s.nextIcon++
	s.players[p.ID] = p
	s.joinOrder = append(s.joinOrder, p.ID)

	return domain.JoinResult{PlayerID: p.ID, Icon: p.Icon, Name: p.Name}, nil
}

// SubmitAnswer records a player's option for the question in flight.
// The first answer wins; correctness is not computed here so it can
// never be observed before the reveal.
func (s *Session) SubmitAnswer(playerID string, option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalizeLocked()

	p, ok := s.players[playerID]
	if !ok {
		return domain.ErrUnknownPlayer
	}
	if option < 0 || option >= domain.OptionCount {
		return domain.ErrInvalidOption
	}
	if s.phase != domain.PhaseQuestion {
		return domain.ErrNotAcceptingAnswers
	}
	if p.Answered {
		return domain.ErrAlreadyAnswered
	}

	p.Answered = true
	p.Selected = option
	p.AnswerTime = s.clock.Now().Sub(s.questionStart)
	return nil
}

// Player returns a copy of the player's current state.
func (s *Session) Player(playerID string) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalizeLocked()

	p, ok := s.players[playerID]
	if !ok {
		return domain.Player{}, domain.ErrUnknownPlayer
	}
	return *p, nil
}

// normalizeLocked folds elapsed time into the phase machine. A passed
// deadline during the question phase is equivalent to an explicit
// reveal command.
func (s *Session) normalizeLocked() {
	if s.phase == domain.PhaseQuestion && s.clock.Now().After(s.deadline) {
		s.revealLocked()
	}
}

func (s *Session) startQuestionLocked(index int) {
	s.questionIndex = index
	s.phase = domain.PhaseQuestion
	s.questionStart = s.clock.Now()
	s.deadline = s.questionStart.Add(s.questions[index].TimeLimit)
	s.scored = false

	for _, p := range s.players {
		p.Answered = false
		p.Selected = domain.NoAnswer
		p.Correct = false
		p.AnswerTime = 0
	}
}

// revealLocked moves to the reveal phase and scores every player for
// the current question. The scored flag guarantees at-most-once
// scoring even when the explicit command races the lazy expiry check.
func (s *Session) revealLocked() {
	s.phase = domain.PhaseReveal
	s.deadline = time.Time{}
	if s.scored {
		return
	}
	s.scored = true

	q := s.questions[s.questionIndex]
	for _, p := range s.players {
		if p.Answered && p.Selected == q.Correct {
			p.Correct = true
			p.Score += s.rules.BasePoints + s.speedBonus(p.AnswerTime, q.TimeLimit)
			p.Streak++
			if s.rules.StreakEvery > 0 && p.Streak%s.rules.StreakEvery == 0 {
				p.Score += s.rules.StreakBonus
			}
		} else {
			// A no-show scores exactly like a wrong answer.
			p.Correct = false
			p.Streak = 0
		}
	}
}

// speedBonus decreases linearly from the configured maximum at t=0 to
// zero at the time limit. Never negative, monotonically non-increasing.
func (s *Session) speedBonus(answerTime, limit time.Duration) int {
	if limit <= 0 || answerTime >= limit {
		return 0
	}
	if answerTime < 0 {
		answerTime = 0
	}
	remaining := limit - answerTime
	return int(int64(s.rules.MaxSpeedBonus) * int64(remaining) / int64(limit))
}

func (s *Session) resetLocked(questions []domain.Question) {
	s.phase = domain.PhaseLobby
	s.questionIndex = 0
	s.questionStart = time.Time{}
	s.deadline = time.Time{}
	s.scored = false
	s.players = make(map[string]*domain.Player)
	s.joinOrder = nil
	s.nextIcon = 0
	if questions != nil {
		s.setQuestionsLocked(questions)
	}
}

func (s *Session) setQuestionsLocked(questions []domain.Question) {
	qs := make([]domain.Question, len(questions))
	copy(qs, questions)
	for i := range qs {
		if qs[i].TimeLimit <= 0 {
			qs[i].TimeLimit = s.rules.DefaultTimeLimit
		}
	}
	s.questions = qs
}
