package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/moby/sys/atomicwriter"
	"github.com/tidwall/pretty"

	"github.com/taskmaster/lite/internal/domain/entities"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot file not found")
	ErrSnapshotInvalid  = errors.New("snapshot file is malformed")
	ErrSnapshotWrite    = errors.New("failed to write snapshot")
)

// Document is the on-disk layout. Map keys are the record ids.
type Document struct {
	Tasks map[uint64]entities.Task      `json:"tasks"`
	Users map[uint64]entities.User      `json:"users"`
	Games map[uint64]entities.GameState `json:"games"`
}

// SnapshotOptions controls how a snapshot is written
type SnapshotOptions struct {
	Pretty   bool
	FileMode os.FileMode
}

func (o SnapshotOptions) fileMode() os.FileMode {
	if o.FileMode == 0 {
		return 0o644
	}
	return o.FileMode
}

// Export copies the state into a document
func Export(s *State) Document {
	return Document{
		Tasks: s.Tasks.export(),
		Users: s.Users.export(),
		Games: s.Games.export(),
	}
}

// Encode serializes the whole state
func Encode(s *State, indent bool) ([]byte, error) {
	data, err := json.Marshal(Export(s))
	if err != nil {
		return nil, err
	}
	if indent {
		data = pretty.Pretty(data)
	}
	return data, nil
}

// Decode parses a snapshot document. Anything that does not match the
// layout exactly is rejected as a whole; there is no partial result.
func Decode(data []byte) (*State, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after document", ErrSnapshotInvalid)
	}

	st := NewState()
	for id, t := range doc.Tasks {
		if id != t.ID {
			return nil, fmt.Errorf("%w: task key %d holds id %d", ErrSnapshotInvalid, id, t.ID)
		}
		st.Tasks.Insert(t)
	}
	for id, u := range doc.Users {
		if id != u.ID {
			return nil, fmt.Errorf("%w: user key %d holds id %d", ErrSnapshotInvalid, id, u.ID)
		}
		st.Users.Insert(u)
	}
	for id, g := range doc.Games {
		if id != g.ID {
			return nil, fmt.Errorf("%w: game key %d holds id %d", ErrSnapshotInvalid, id, g.ID)
		}
		for _, l := range g.GuessedLetters {
			if err := entities.ValidateLetter(l); err != nil {
				return nil, fmt.Errorf("%w: game %d: %v", ErrSnapshotInvalid, id, err)
			}
		}
		st.Games.Insert(g)
	}
	return st, nil
}

// WriteSnapshot replaces the file at path with the full state. The file is
// written to a temporary sibling and renamed into place.
func WriteSnapshot(path string, s *State, opts SnapshotOptions) error {
	data, err := Encode(s, opts.Pretty)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	if err := atomicwriter.WriteFile(path, data, opts.fileMode()); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	return nil
}

// LoadSnapshot reads the state stored at path
func LoadSnapshot(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, path)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}
