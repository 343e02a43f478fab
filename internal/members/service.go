package members

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tally-dev/tally/internal/model"
)

// File is the members file path relative to the group root.
const File = "members.csv"

// ErrDuplicate is returned when adding a member whose ID is taken.
var ErrDuplicate = errors.New("member already exists")

// Service provides in-memory lookup over a group's members.
type Service struct {
	members []model.Member
	byID    map[int64]model.Member
}

// NewService creates a Service from a slice of members.
func NewService(members []model.Member) *Service {
	byID := make(map[int64]model.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	return &Service{members: members, byID: byID}
}

// Load reads members.csv from a group root.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, File))
	if err != nil {
		return nil, fmt.Errorf("opening members: %w", err)
	}
	defer f.Close()

	ms, err := ReadMembers(f)
	if err != nil {
		return nil, fmt.Errorf("reading members: %w", err)
	}
	return NewService(ms), nil
}

// Save writes members.csv under root.
func (s *Service) Save(root string) error {
	f, err := os.Create(filepath.Join(root, File))
	if err != nil {
		return fmt.Errorf("creating members file: %w", err)
	}
	defer f.Close()

	if err := WriteMembers(f, s.members); err != nil {
		return fmt.Errorf("writing members: %w", err)
	}
	return nil
}

// Add registers a new member.
func (s *Service) Add(m model.Member) error {
	if _, ok := s.byID[m.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicate, m.ID)
	}
	if m.Name == "" {
		return fmt.Errorf("member %d has no name", m.ID)
	}
	s.members = append(s.members, m)
	s.byID[m.ID] = m
	return nil
}

// All returns all members in file order.
func (s *Service) All() []model.Member {
	return s.members
}

// Get returns a member by ID.
func (s *Service) Get(id int64) (model.Member, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// Exists reports whether a member ID exists.
func (s *Service) Exists(id int64) bool {
	_, ok := s.byID[id]
	return ok
}

// Name returns the member's display name, or "#<id>" for unknown IDs.
func (s *Service) Name(id int64) string {
	if m, ok := s.byID[id]; ok {
		return m.Name
	}
	return "#" + strconv.FormatInt(id, 10)
}
