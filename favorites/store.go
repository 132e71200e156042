package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// StorageKey is the key the favorites list is persisted under
const StorageKey = "kobis-favorites"

// Store is the persisted, deduplicated, insertion-ordered favorites list.
// Every mutation updates memory and flushes to storage under one lock.
// Storage failures are logged and never returned: a corrupt or missing
// value loads as an empty list, and a failed write keeps the in-memory
// change.
type Store struct {
	mu        sync.RWMutex
	storage   Storage
	key       string
	logger    zerolog.Logger
	now       func() time.Time
	favorites []FavoriteMovie
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used for AddedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Open loads the favorites list from storage
func Open(storage Storage, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     StorageKey,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.favorites = s.load()
	return s
}

func (s *Store) load() []FavoriteMovie {
	data, err := s.storage.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn().Err(err).Str("key", s.key).Msg("Failed to read favorites, starting empty")
		}
		return []FavoriteMovie{}
	}

	var stored []FavoriteMovie
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("Favorites are corrupt, starting empty")
		return []FavoriteMovie{}
	}

	favorites := dedupe(stored)
	if len(favorites) != len(stored) {
		s.logger.Warn().
			Int("stored", len(stored)).
			Int("kept", len(favorites)).
			Msg("Dropped duplicate or invalid favorites")
	}

	s.logger.Debug().Int("count", len(favorites)).Msg("Loaded favorites")
	return favorites
}

// persistLocked flushes the list; the caller holds s.mu
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.favorites)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode favorites")
		return
	}
	if err := s.storage.Set(s.key, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("Failed to persist favorites")
	}
}

func (s *Store) indexLocked(movieCd string) int {
	return slices.IndexFunc(s.favorites, func(f FavoriteMovie) bool {
		return f.MovieCd == movieCd
	})
}

// Add bookmarks movie. It is a no-op when the movie is already a favorite
// or has no identifier. It reports whether the movie was added.
func (s *Store) Add(movie Movie) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addLocked(movie)
}

func (s *Store) addLocked(movie Movie) bool {
	if strings.TrimSpace(movie.MovieCd) == "" {
		s.logger.Warn().Str("title", movie.MovieNm).Msg("Ignoring favorite without movie code")
		return false
	}
	if s.indexLocked(movie.MovieCd) >= 0 {
		return false
	}

	s.favorites = append(s.favorites, FavoriteMovie{
		Movie:   movie,
		AddedAt: s.now().UTC(),
	})
	s.persistLocked()

	s.logger.Debug().Str("movie_cd", movie.MovieCd).Str("title", movie.MovieNm).Msg("Added favorite")
	return true
}

// Remove deletes the favorite with movieCd. It reports whether one existed.
func (s *Store) Remove(movieCd string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(movieCd)
}

func (s *Store) removeLocked(movieCd string) bool {
	i := s.indexLocked(movieCd)
	if i < 0 {
		return false
	}

	s.favorites = slices.Delete(s.favorites, i, i+1)
	s.persistLocked()

	s.logger.Debug().Str("movie_cd", movieCd).Msg("Removed favorite")
	return true
}

// Toggle removes movie if it is a favorite and adds it otherwise. It
// returns whether the movie is a favorite afterwards.
func (s *Store) Toggle(movie Movie) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(movie.MovieCd) >= 0 {
		s.removeLocked(movie.MovieCd)
		return false
	}
	return s.addLocked(movie)
}

// IsFavorite reports whether movieCd is bookmarked
func (s *Store) IsFavorite(movieCd string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexLocked(movieCd) >= 0
}

// Get returns the favorite with movieCd
func (s *Store) Get(movieCd string) (FavoriteMovie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(movieCd); i >= 0 {
		return s.favorites[i], true
	}
	return FavoriteMovie{}, false
}

// ClearAll removes every favorite
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = []FavoriteMovie{}
	s.persistLocked()

	s.logger.Debug().Msg("Cleared favorites")
}

// List returns a copy of the favorites in insertion order
func (s *Store) List() []FavoriteMovie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.favorites)
}

// Count returns the number of favorites
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.favorites)
}

// Genres returns the distinct non-empty genre labels across all favorites,
// sorted.
func (s *Store) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	genres := []string{}
	for _, f := range s.favorites {
		for _, label := range f.GenreLabels() {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			genres = append(genres, label)
		}
	}
	slices.Sort(genres)
	return genres
}

// Export writes the favorites as an indented JSON array
func (s *Store) Export(w io.Writer) error {
	favorites := s.List()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(favorites); err != nil {
		return fmt.Errorf("failed to export favorites: %w", err)
	}
	return nil
}

// Import merges a JSON array of favorites into the store. Entries already
// present are skipped; imported entries keep their AddedAt. It returns the
// number of entries added.
func (s *Store) Import(r io.Reader) (int, error) {
	var incoming []FavoriteMovie
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return 0, fmt.Errorf("failed to decode favorites: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, f := range dedupe(incoming) {
		if s.indexLocked(f.MovieCd) >= 0 {
			continue
		}
		if f.AddedAt.IsZero() {
			f.AddedAt = s.now().UTC()
		}
		s.favorites = append(s.favorites, f)
		added++
	}
	if added > 0 {
		s.persistLocked()
	}

	s.logger.Info().Int("added", added).Int("total", len(s.favorites)).Msg("Imported favorites")
	return added, nil
}

// dedupe keeps the first entry per movie code and drops entries without one
func dedupe(in []FavoriteMovie) []FavoriteMovie {
	seen := make(map[string]struct{}, len(in))
	out := make([]FavoriteMovie, 0, len(in))
	for _, f := range in {
		if strings.TrimSpace(f.MovieCd) == "" {
			continue
		}
		if _, ok := seen[f.MovieCd]; ok {
			continue
		}
		seen[f.MovieCd] = struct{}{}
		out = append(out, f)
	}
	return out
}
