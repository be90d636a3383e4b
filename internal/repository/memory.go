package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/deppfellow/visited-countries/internal/model"
	"github.com/deppfellow/visited-countries/internal/sqlerr"
)

// MemoryStore keeps users, reference countries and visits in process memory.
//
// It enforces the same constraints as the Postgres schema (not-null user
// fields, unique visits, visits referencing an existing user) and reports
// violations as *sqlerr.Error, so services behave identically on both.
// It is safe for concurrent use and intended for tests and development.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int
	users     []model.User
	countries []model.Country
	visited   []model.VisitedCountry
}

// NewMemoryStore returns a store whose reference list holds countries.
func NewMemoryStore(countries ...model.Country) *MemoryStore {
	return &MemoryStore{
		nextID:    1,
		countries: append([]model.Country(nil), countries...),
	}
}

// SeedUser appends a raw row, duplicates included.
func (s *MemoryStore) SeedUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
	if u.ID >= s.nextID {
		s.nextID = u.ID + 1
	}
}

func (s *MemoryStore) ListDeduplicated(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dedupeUsers(s.users), nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetByName(ctx context.Context, name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Name == name {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Create(ctx context.Context, name, color string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, col := range [][2]string{{"name", name}, {"color", color}} {
		column, value := col[0], col[1]
		if value == "" {
			return nil, &sqlerr.Error{
				Code:       sqlerr.NotNullViolation,
				Severity:   sqlerr.SeverityError,
				Message:    `null value in column "` + column + `" violates not-null constraint`,
				TableName:  "users",
				ColumnName: column,
			}
		}
	}

	u := model.User{ID: s.nextID, Name: name, Color: color}
	s.nextID++
	s.users = append(s.users, u)
	return &u, nil
}

func (s *MemoryStore) Rename(ctx context.Context, id int, name, newName string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := []model.User{}
	for i := range s.users {
		if s.users[i].ID == id && s.users[i].Name == name {
			s.users[i].Name = newName
			updated = append(updated, s.users[i])
		}
	}
	return updated, nil
}

func (s *MemoryStore) ChangeColor(ctx context.Context, id int, color string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := []model.User{}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Color = color
			updated = append(updated, s.users[i])
		}
	}
	return updated, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.visited {
		if v.UserID == id {
			return &sqlerr.Error{
				Code:           sqlerr.ForeignKeyViolation,
				Severity:       sqlerr.SeverityError,
				Message:        "update or delete on table \"users\" violates foreign key constraint",
				TableName:      "visited_countries",
				ConstraintName: "visited_countries_user_id_fkey",
			}
		}
	}
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

func (s *MemoryStore) FindByNameFragment(ctx context.Context, fragment string) (*model.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(fragment)
	var first *model.Country
	for i := range s.countries {
		name := strings.ToLower(s.countries[i].Name)
		if name == needle {
			found := s.countries[i]
			return &found, nil
		}
		if first == nil && strings.Contains(name, needle) {
			found := s.countries[i]
			first = &found
		}
	}
	return first, nil
}

func (s *MemoryStore) FindByName(ctx context.Context, name string) (*model.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.countries {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListVisitedCodes(ctx context.Context, userID int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := []string{}
	for _, v := range s.visited {
		if v.UserID == userID {
			codes = append(codes, v.CountryCode)
		}
	}
	return codes, nil
}

func (s *MemoryStore) AddVisited(ctx context.Context, userID int, code string) (*model.VisitedCountry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasUser(userID) {
		return nil, &sqlerr.Error{
			Code:           sqlerr.ForeignKeyViolation,
			Severity:       sqlerr.SeverityError,
			Message:        "insert or update on table \"visited_countries\" violates foreign key constraint",
			TableName:      "visited_countries",
			ConstraintName: "visited_countries_user_id_fkey",
		}
	}
	for _, v := range s.visited {
		if v.UserID == userID && v.CountryCode == code {
			return nil, &sqlerr.Error{
				Code:           sqlerr.UniqueViolation,
				Severity:       sqlerr.SeverityError,
				Message:        "duplicate key value violates unique constraint",
				TableName:      "visited_countries",
				ConstraintName: "visited_countries_user_id_country_code_key",
			}
		}
	}

	v := model.VisitedCountry{UserID: userID, CountryCode: code}
	s.visited = append(s.visited, v)
	return &v, nil
}

func (s *MemoryStore) DeleteVisited(ctx context.Context, userID int, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.visited {
		if v.UserID == userID && v.CountryCode == code {
			s.visited = append(s.visited[:i], s.visited[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) DeleteAllVisited(ctx context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.visited[:0]
	for _, v := range s.visited {
		if v.UserID != userID {
			kept = append(kept, v)
		}
	}
	s.visited = kept
	return nil
}

func (s *MemoryStore) hasUser(id int) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}
