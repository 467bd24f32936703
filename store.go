package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrValidation   = errors.New("title and description are required")
	ErrIDExhausted  = errors.New("id generator kept returning ids already in use")
)

// maxIDAttempts bounds how often Create asks the generator for a fresh id.
const maxIDAttempts = 8

// CardStore is the authoritative in-memory card collection. Cards keep
// insertion order and mutations never interleave.
type CardStore struct {
	mu    sync.RWMutex
	cards []Card
	ids   IDGenerator
}

// NewCardStore builds a store holding a copy of seed. Seed cards must have
// unique, non-empty ids.
func NewCardStore(ids IDGenerator, seed []Card) (*CardStore, error) {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	seen := make(map[string]struct{}, len(seed))
	for i, c := range seed {
		if c.ID == "" {
			return nil, fmt.Errorf("seed card %d: empty id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("seed card %d: duplicate id %q", i, c.ID)
		}
		if !validCard(c.Title, c.Description) {
			return nil, fmt.Errorf("seed card %q: %w", c.ID, ErrValidation)
		}
		seen[c.ID] = struct{}{}
	}
	cards := make([]Card, len(seed))
	copy(cards, seed)
	return &CardStore{cards: cards, ids: ids}, nil
}

// List returns a snapshot of every card in insertion order.
func (s *CardStore) List() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// GetByTitle returns the first card whose title equals title, ignoring case.
func (s *CardStore) GetByTitle(title string) (Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if strings.EqualFold(c.Title, title) {
			return c, nil
		}
	}
	return Card{}, fmt.Errorf("title %q: %w", title, ErrCardNotFound)
}

func (s *CardStore) Create(title, description string) (Card, error) {
	if !validCard(title, description) {
		return Card{}, ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.freshID()
	if err != nil {
		return Card{}, err
	}
	card := Card{ID: id, Title: title, Description: description}
	s.cards = append(s.cards, card)
	return card, nil
}

// freshID asks the generator for an id not yet in the collection. Callers
// hold the write lock.
func (s *CardStore) freshID() (string, error) {
	for range maxIDAttempts {
		if id := s.ids.NewID(); id != "" && findCardIndex(s.cards, id) == -1 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// Has reports whether a card with id exists.
func (s *CardStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findCardIndex(s.cards, id) != -1
}

// Update replaces title and description of the card with the given id.
// Both fields are replaced, even when empty.
func (s *CardStore) Update(id, title, description string) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findCardIndex(s.cards, id)
	if i == -1 {
		return Card{}, fmt.Errorf("id %q: %w", id, ErrCardNotFound)
	}
	s.cards[i] = Card{ID: id, Title: title, Description: description}
	return s.cards[i], nil
}

func (s *CardStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findCardIndex(s.cards, id)
	if i == -1 {
		return fmt.Errorf("id %q: %w", id, ErrCardNotFound)
	}
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	return nil
}

func (s *CardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

func validCard(title, description string) bool {
	return title != "" && description != ""
}

func findCardIndex(cards []Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
