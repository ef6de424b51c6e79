package database

import "github.com/taskmaster/lite/internal/domain/entities"

// State is everything the service keeps in memory: tasks, users and games.
type State struct {
	Tasks *Collection[entities.Task]
	Users *Collection[entities.User]
	Games *Collection[entities.GameState]
}

// NewState returns an empty state
func NewState() *State {
	return &State{
		Tasks: NewCollection[entities.Task](),
		Users: NewCollection[entities.User](),
		Games: NewCollection[entities.GameState](),
	}
}

// FindUserByName returns the first user with the given username. Usernames
// are not unique, and which duplicate wins is unspecified.
func (s *State) FindUserByName(username string) (entities.User, bool) {
	return s.Users.Find(func(u entities.User) bool {
		return u.Username == username
	})
}

// Counts returns the number of records per collection
func (s *State) Counts() map[string]int {
	return map[string]int{
		"tasks": s.Tasks.Len(),
		"users": s.Users.Len(),
		"games": s.Games.Len(),
	}
}
