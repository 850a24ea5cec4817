package domain

import "time"

// Phase is the round state of the one room this process hosts.
// The numeric values are part of the wire protocol consumed by the
// host and player front ends, so they must not be reordered.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseJoining
	PhaseQuestion
	PhaseReveal
	PhaseFinal
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "LOBBY"
	case PhaseJoining:
		return "JOINING"
	case PhaseQuestion:
		return "QUESTION"
	case PhaseReveal:
		return "REVEAL"
	case PhaseFinal:
		return "FINAL"
	default:
		return "UNKNOWN"
	}
}

// QuestionVisible reports whether question content may be shown to
// clients in this phase. Text and options must never leak before the
// round reaches the question.
func (p Phase) QuestionVisible() bool {
	return p == PhaseQuestion || p == PhaseReveal || p == PhaseFinal
}

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// NoAnswer is the sentinel for a player who has not picked an option.
const NoAnswer = -1

// Question is a single multiple-choice question. Immutable once loaded.
type Question struct {
	Text      string        `json:"text" yaml:"text"`
	Options   []string      `json:"options" yaml:"options"`
	Correct   int           `json:"correct" yaml:"correct"`
	TimeLimit time.Duration `json:"timeLimit" yaml:"time_limit"`
}

// Player holds one participant's cumulative and per-question state.
// The per-question fields (Answered, Selected, Correct, AnswerTime)
// are only meaningful while the round is in QUESTION or REVEAL; they
// are cleared whenever a new question starts.
type Player struct {
	ID        string
	Name      string
	Icon      string
	Score     int
	Streak    int
	JoinOrder int

	Answered   bool
	Selected   int
	Correct    bool
	AnswerTime time.Duration
}

// LeaderboardEntry is the ranked, read-only projection of a player.
type LeaderboardEntry struct {
	Icon  string `json:"icon"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// JoinResult is returned to a player that entered the room.
type JoinResult struct {
	PlayerID string `json:"pid"`
	Icon     string `json:"icon"`
	Name     string `json:"name"`
}

// HostView is the snapshot rendered for the host control panel.
type HostView struct {
	PIN             string             `json:"pin"`
	Players         int                `json:"players"`
	PlayersAnswered int                `json:"players_answered"`
	Phase           Phase              `json:"phase"`
	TimeLeftMS      int64              `json:"time_left_ms"`
	QuestionIndex   int                `json:"q_index"`
	QuestionTotal   int                `json:"q_total"`
	QuestionText    string             `json:"q_text"`
	QuestionOptions []string           `json:"q_opts"`
	QuestionVisible bool               `json:"q_visible"`
	Correct         int                `json:"correct"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
}

// PlayerView is the snapshot rendered for one player's screen. It
// shares the question fields with HostView but exposes only the
// querying player's own results, and the leaderboard only once the
// game is over.
type PlayerView struct {
	Phase           Phase              `json:"phase"`
	TimeLeftMS      int64              `json:"time_left_ms"`
	QuestionIndex   int                `json:"q_index"`
	QuestionTotal   int                `json:"q_total"`
	QuestionText    string             `json:"q_text"`
	QuestionOptions []string           `json:"q_opts"`
	QuestionVisible bool               `json:"q_visible"`
	Correct         int                `json:"correct"`
	MyScore         int                `json:"me_score"`
	MyStreak        int                `json:"me_streak"`
	MyAnswered      bool               `json:"me_answered"`
	MyCorrect       bool               `json:"me_correct"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard,omitempty"`
}

// HostCommand is a round-control command issued by the host screen.
type HostCommand string

const (
	CommandStart  HostCommand = "start"
	CommandNext   HostCommand = "next"
	CommandReveal HostCommand = "reveal"
	CommandReset  HostCommand = "reset"
)
