package team

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
)

var ErrSessionNotFound = errors.New("builder session not found")

// Service runs builder sessions: it loads a stored team into an Engine,
// applies one action and stores the result. Actions are serialised so a
// session always has a single writer.
type Service struct {
	catalog *formation.Catalog
	dir     *player.Directory
	repo    SessionRepository
	log     *zap.Logger

	mu    sync.Mutex
	newID func() string
}

// NewService creates a builder Service.
func NewService(catalog *formation.Catalog, dir *player.Directory, repo SessionRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog: catalog,
		dir:     dir,
		repo:    repo,
		log:     log,
		newID:   uuid.NewString,
	}
}

// Catalog returns the formation catalog used by the sessions.
func (s *Service) Catalog() *formation.Catalog { return s.catalog }

// Directory returns the player directory used by the sessions.
func (s *Service) Directory() *player.Directory { return s.dir }

// Create opens a session. A non-empty share token seeds the team; a token
// that does not decode is logged and the session starts empty.
func (s *Service) Create(ctx context.Context, shareToken string) (string, TeamState, error) {
	e, err := NewEngineFromShareToken(s.catalog, s.dir, shareToken)
	if err != nil {
		s.log.Info("Ignoring share token", zap.Error(err))
	}

	id := s.newID()
	if err := s.repo.Save(ctx, id, NewDocument(e.State())); err != nil {
		return "", TeamState{}, fmt.Errorf("save session: %w", err)
	}
	return id, e.State(), nil
}

// Engine loads a session for reading. Changes made to the returned engine
// are not stored.
func (s *Service) Engine(ctx context.Context, id string) (*Engine, error) {
	doc, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if doc == nil {
		return nil, ErrSessionNotFound
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	e := NewEngine(s.catalog, s.dir)
	if err := e.ImportDocument(raw); err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	return e, nil
}

// Get returns the current team of a session.
func (s *Service) Get(ctx context.Context, id string) (TeamState, error) {
	e, err := s.Engine(ctx, id)
	if err != nil {
		return TeamState{}, err
	}
	return e.State(), nil
}

// Update applies action to the session's team and stores the result. When
// action fails nothing is stored.
func (s *Service) Update(ctx context.Context, id string, action func(*Engine) error) (TeamState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.Engine(ctx, id)
	if err != nil {
		return TeamState{}, err
	}
	if err := action(e); err != nil {
		return TeamState{}, err
	}
	if err := s.repo.Save(ctx, id, NewDocument(e.State())); err != nil {
		return TeamState{}, fmt.Errorf("save session: %w", err)
	}
	return e.State(), nil
}

// Delete drops a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if doc == nil {
		return ErrSessionNotFound
	}
	return s.repo.Delete(ctx, id)
}
