package client

import (
	"strings"
	"unicode/utf8"
)

// MinSearchLen is the shortest search term that filters the list.
const MinSearchLen = 3

// State is the client's view of the collection and of the edit modal.
// Transitions never touch Cards on failure.
type State struct {
	Cards      []Card
	SearchTerm string
	Current    Card
	Error      string
	ModalOpen  bool
	Editing    bool
}

// Loaded applies the outcome of the initial List call.
func (s *State) Loaded(cards []Card, err error) {
	if err != nil {
		s.Error = err.Error()
		s.Cards = nil
		return
	}
	s.Cards = append([]Card(nil), cards...)
}

func (s *State) SetSearch(term string) {
	s.SearchTerm = term
}

// Visible returns the cards to display. Terms shorter than MinSearchLen
// show everything; longer ones keep titles containing the term, ignoring case.
func (s *State) Visible() []Card {
	if !s.filtering() {
		return s.Cards
	}
	needle := strings.ToLower(s.SearchTerm)
	out := make([]Card, 0, len(s.Cards))
	for _, c := range s.Cards {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			out = append(out, c)
		}
	}
	return out
}

// NoResults reports whether the "no cards found" indicator should show.
func (s *State) NoResults() bool {
	return s.Error == "" && s.filtering() && len(s.Visible()) == 0
}

func (s *State) filtering() bool {
	return utf8.RuneCountInString(s.SearchTerm) >= MinSearchLen
}

// OpenCreate opens the modal on an empty card.
func (s *State) OpenCreate() {
	s.Current = Card{}
	s.Editing = false
	s.ModalOpen = true
}

// OpenEdit opens the modal on a copy of card.
func (s *State) OpenEdit(card Card) {
	s.Current = card
	s.Editing = card.ID != ""
	s.ModalOpen = true
}

func (s *State) CloseModal() {
	s.ModalOpen = false
	s.Editing = false
}

// Edit sets the form fields of the card being created or edited.
func (s *State) Edit(title, description string) {
	s.Current.Title = title
	s.Current.Description = description
}

// Submitted applies the server's reply to a create or update.
func (s *State) Submitted(card Card, err error) {
	if err != nil {
		s.Error = err.Error()
		return
	}
	if s.Editing {
		for i := range s.Cards {
			if s.Cards[i].ID == s.Current.ID {
				s.Cards[i] = card
			}
		}
	} else {
		s.Cards = append(s.Cards, card)
	}
	s.Current = Card{}
	s.ModalOpen = false
	s.Editing = false
}

// Deleted applies the server's reply to a delete of id.
func (s *State) Deleted(id string, err error) {
	if err != nil {
		s.Error = err.Error()
		return
	}
	out := make([]Card, 0, len(s.Cards))
	for _, c := range s.Cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.Cards = out
}

func (s *State) DismissError() {
	s.Error = ""
}
