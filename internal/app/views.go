package app

import (
	"sort"

	"quizbox/internal/domain"
)

// HostSnapshot renders the full room state for the host control panel.
func (s *Session) HostSnapshot() domain.HostView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalizeLocked()

	view := domain.HostView{
		PIN:             s.pin,
		Players:         len(s.players),
		PlayersAnswered: s.answeredCountLocked(),
		Phase:           s.phase,
		TimeLeftMS:      s.timeLeftLocked(),
		QuestionIndex:   s.questionIndex,
		QuestionTotal:   len(s.questions),
		QuestionVisible: s.phase.QuestionVisible(),
		Correct:         domain.NoAnswer,
		Leaderboard:     s.leaderboardLocked(),
	}
	if view.QuestionVisible && len(s.questions) > 0 {
		q := s.questions[s.questionIndex]
		view.QuestionText = q.Text
		view.QuestionOptions = q.Options
	}
	if s.phase == domain.PhaseReveal || s.phase == domain.PhaseFinal {
		view.Correct = s.questions[s.questionIndex].Correct
	}
	return view
}

// PlayerSnapshot renders the room state for one player's screen. The
// leaderboard only appears once the game reaches the final phase.
func (s *Session) PlayerSnapshot(playerID string) (domain.PlayerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalizeLocked()

	p, ok := s.players[playerID]
	if !ok {
		return domain.PlayerView{}, domain.ErrUnknownPlayer
	}

	view := domain.PlayerView{
		Phase:           s.phase,
		TimeLeftMS:      s.timeLeftLocked(),
		QuestionIndex:   s.questionIndex,
		QuestionTotal:   len(s.questions),
		QuestionVisible: s.phase.QuestionVisible(),
		Correct:         domain.NoAnswer,
		MyScore:         p.Score,
		MyStreak:        p.Streak,
		MyAnswered:      p.Answered,
		MyCorrect:       p.Correct,
	}
	if view.QuestionVisible && len(s.questions) > 0 {
		q := s.questions[s.questionIndex]
		view.QuestionText = q.Text
		view.QuestionOptions = q.Options
	}
	if s.phase == domain.PhaseReveal || s.phase == domain.PhaseFinal {
		view.Correct = s.questions[s.questionIndex].Correct
	}
	if s.phase == domain.PhaseFinal {
		view.Leaderboard = s.leaderboardLocked()
	}
	return view, nil
}

// Leaderboard returns the ranked projection of all players.
func (s *Session) Leaderboard() []domain.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normalizeLocked()
	return s.leaderboardLocked()
}

// leaderboardLocked orders players by score descending with join order
// as the tie-break, so repeated queries without mutation are identical.
func (s *Session) leaderboardLocked() []domain.LeaderboardEntry {
	ranked := make([]*domain.Player, 0, len(s.players))
	for _, id := range s.joinOrder {
		ranked = append(ranked, s.players[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	entries := make([]domain.LeaderboardEntry, 0, len(ranked))
	for _, p := range ranked {
		entries = append(entries, domain.LeaderboardEntry{
			Icon:  p.Icon,
			Name:  p.Name,
			Score: p.Score,
		})
	}
	return entries
}

func (s *Session) answeredCountLocked() int {
	if s.phase != domain.PhaseQuestion && s.phase != domain.PhaseReveal {
		return 0
	}
	count := 0
	for _, p := range s.players {
		if p.Answered {
			count++
		}
	}
	return count
}

func (s *Session) timeLeftLocked() int64 {
	if s.phase != domain.PhaseQuestion {
		return 0
	}
	left := s.deadline.Sub(s.clock.Now()).Milliseconds()
	if left < 0 {
		return 0
	}
	return left
}
