package domain

import "errors"

var (
	// ErrInvalidRoomCode is returned when a join supplies the wrong PIN.
	ErrInvalidRoomCode = errors.New("invalid room code")
	// ErrUnknownPlayer is returned when a player ID is not registered.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrNotAcceptingAnswers is returned when an answer arrives outside the question phase.
	ErrNotAcceptingAnswers = errors.New("not accepting answers")
	// ErrAlreadyAnswered is returned on a second submission for the same question; the first answer wins.
	ErrAlreadyAnswered = errors.New("already answered")
	// ErrInvalidOption is returned when the selected option is outside 0..3.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidPhaseForCommand is returned when a host command is not valid in the current phase.
	ErrInvalidPhaseForCommand = errors.New("command not valid in current phase")
	// ErrUnknownCommand is returned for a host command outside the start/next/reveal/reset set.
	ErrUnknownCommand = errors.New("unknown host command")
	// ErrGameFinished is returned when a player tries to join after the final leaderboard.
	ErrGameFinished = errors.New("game already finished")
	// ErrNoQuestions indicates the question bank is empty.
	ErrNoQuestions = errors.New("question bank is empty")
)
