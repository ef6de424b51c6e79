package entities

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidLetter      = errors.New("a move must be exactly one letter")
)

// Task represents a to-do item
type Task struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Key returns the task ID
func (t Task) Key() uint64 { return t.ID }

// Clone returns a copy of the task
func (t Task) Clone() Task { return t }

// User represents a registered account. The password is kept in plain text.
type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Key returns the user ID
func (u User) Key() uint64 { return u.ID }

// Clone returns a copy of the user
func (u User) Clone() User { return u }

// Matches reports whether password equals the stored one.
func (u User) Matches(password string) bool {
	return u.Password == password
}

// Public returns the user without its password
func (u User) Public() User {
	u.Password = ""
	return u
}

// GameState is one word-guessing game. GuessedLetters holds single
// characters in the order they were played.
type GameState struct {
	ID                uint64   `json:"id"`
	Word              string   `json:"word"`
	GuessedLetters    []string `json:"guessed_letters"`
	IncorrectAttempts uint8    `json:"incorrect_attempts"`
	LastMove          string   `json:"last_move"`
}

// NewGame creates a game with no moves played
func NewGame(id uint64, word string) GameState {
	return GameState{
		ID:             id,
		Word:           word,
		GuessedLetters: []string{},
	}
}

// Key returns the game ID
func (g GameState) Key() uint64 { return g.ID }

// Clone returns a deep copy of the game
func (g GameState) Clone() GameState {
	letters := make([]string, len(g.GuessedLetters))
	copy(letters, g.GuessedLetters)
	g.GuessedLetters = letters
	return g
}

// Guess plays a letter. A letter missing from the word counts as an
// incorrect attempt; repeated letters are recorded again.
func (g *GameState) Guess(letter string) error {
	if err := ValidateLetter(letter); err != nil {
		return err
	}

	g.LastMove = fmt.Sprintf("Guessed letter: %s", letter)
	g.GuessedLetters = append(g.GuessedLetters, letter)

	if !strings.Contains(g.Word, letter) && g.IncorrectAttempts < math.MaxUint8 {
		g.IncorrectAttempts++
	}
	return nil
}

// ValidateLetter checks that s holds exactly one character
func ValidateLetter(s string) error {
	if len([]rune(s)) != 1 {
		return ErrInvalidLetter
	}
	return nil
}
