package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/lite/internal/domain/entities"
)

func sampleState() *State {
	s := NewState()
	s.Tasks.Insert(entities.Task{ID: 7, Name: "buy milk", Completed: false})
	s.Tasks.Insert(entities.Task{ID: 8, Name: "walk dog", Completed: true})
	s.Users.Insert(entities.User{ID: 1, Username: "alice", Password: "secret"})
	s.Games.Insert(entities.GameState{
		ID:                18446744073709551615,
		Word:              "gopher",
		GuessedLetters:    []string{"g", "z"},
		IncorrectAttempts: 1,
		LastMove:          "Guessed letter: z",
	})
	return s
}

func TestSnapshot_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		state  *State
		pretty bool
	}{
		{name: "empty", state: NewState()},
		{name: "populated", state: sampleState()},
		{name: "populated pretty", state: sampleState(), pretty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "database.json")

			require.NoError(t, WriteSnapshot(path, tt.state, SnapshotOptions{Pretty: tt.pretty}))

			loaded, err := LoadSnapshot(path)
			require.NoError(t, err)
			assert.Equal(t, Export(tt.state), Export(loaded))
		})
	}
}

func TestSnapshot_Layout(t *testing.T) {
	s := NewState()
	s.Tasks.Insert(entities.Task{ID: 7, Name: "buy milk"})

	data, err := Encode(s, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"tasks": {"7": {"id": 7, "name": "buy milk", "completed": false}},
		"users": {},
		"games": {}
	}`, string(data))
}

func TestSnapshot_PrettyIsIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, WriteSnapshot(path, sampleState(), SnapshotOptions{Pretty: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"tasks\"")
}

func TestSnapshot_OverwritesPreviousContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, WriteSnapshot(path, sampleState(), SnapshotOptions{}))
	require.NoError(t, WriteSnapshot(path, NewState(), SnapshotOptions{}))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Tasks.Len())
	assert.Equal(t, 0, loaded.Users.Len())
	assert.Equal(t, 0, loaded.Games.Len())
}

func TestLoadSnapshot_Missing(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestDecode_AcceptsEitherVariantLayout(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tasks int
		users int
		games int
	}{
		{
			name:  "task variant",
			input: `{"tasks":{"1":{"id":1,"name":"a","completed":true}},"users":{"2":{"id":2,"username":"u","password":"p"}}}`,
			tasks: 1, users: 1,
		},
		{
			name:  "game variant",
			input: `{"games":{"9":{"id":9,"word":"go","guessed_letters":["o"],"incorrect_attempts":0,"last_move":"Guessed letter: o"}}}`,
			games: 1,
		},
		{
			name:  "null sections",
			input: `{"tasks":null,"users":null,"games":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.tasks, s.Tasks.Len())
			assert.Equal(t, tt.users, s.Users.Len())
			assert.Equal(t, tt.games, s.Games.Len())
		})
	}
}

func TestDecode_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "not json", input: "tasks: []"},
		{name: "truncated", input: `{"tasks":{"1":{"id":1,"name":"a"`},
		{name: "wrong type", input: `{"tasks":{"1":{"id":"one","name":"a","completed":false}}}`},
		{name: "negative id", input: `{"tasks":{"1":{"id":-1,"name":"a","completed":false}}}`},
		{name: "non numeric key", input: `{"tasks":{"abc":{"id":1,"name":"a","completed":false}}}`},
		{name: "key differs from id", input: `{"tasks":{"1":{"id":2,"name":"a","completed":false}}}`},
		{name: "unknown section", input: `{"tasks":{},"notes":{}}`},
		{name: "unknown field", input: `{"users":{"1":{"id":1,"username":"u","password":"p","admin":true}}}`},
		{name: "multi char guess", input: `{"games":{"1":{"id":1,"word":"go","guessed_letters":["go"],"incorrect_attempts":0,"last_move":""}}}`},
		{name: "attempts overflow", input: `{"games":{"1":{"id":1,"word":"go","guessed_letters":[],"incorrect_attempts":256,"last_move":""}}}`},
		{name: "trailing document", input: `{"tasks":{}}{"tasks":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.input))
			assert.ErrorIs(t, err, ErrSnapshotInvalid)
			assert.Nil(t, s)
		})
	}
}

func TestDecode_NoPartialRecovery(t *testing.T) {
	// The first task is fine, the second is not: nothing must come back.
	input := `{"tasks":{"1":{"id":1,"name":"ok","completed":false},"2":{"id":3,"name":"bad","completed":false}}}`
	s, err := Decode([]byte(input))
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestWriteSnapshot_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "database.json")

	err := WriteSnapshot(path, sampleState(), SnapshotOptions{})
	assert.ErrorIs(t, err, ErrSnapshotWrite)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteSnapshot_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, WriteSnapshot(path, sampleState(), SnapshotOptions{}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"database.json"}, names)
}
