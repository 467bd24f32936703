package client

import (
	"context"
	"sync"
)

// API is the card API surface the controller drives. *Client implements it.
type API interface {
	List(ctx context.Context) ([]Card, error)
	Create(ctx context.Context, title, description string) (Card, error)
	Update(ctx context.Context, id, title, description string) (Card, error)
	Delete(ctx context.Context, id string) error
}

// Controller issues API calls and folds each reply into a State. Requests
// run outside the lock, so the state stays readable while they are in flight.
type Controller struct {
	api   API
	mu    sync.Mutex
	state State
}

func NewController(api API) *Controller {
	return &Controller{api: api}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Cards = append([]Card(nil), c.state.Cards...)
	return s
}

// Update runs fn against the state under the lock, for local transitions
// such as SetSearch, OpenCreate or DismissError.
func (c *Controller) Update(fn func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

func (c *Controller) Load(ctx context.Context) error {
	cards, err := c.api.List(ctx)
	c.Update(func(s *State) { s.Loaded(cards, err) })
	return err
}

// Submit creates or updates the modal's card depending on edit mode.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	current, editing := c.state.Current, c.state.Editing
	c.mu.Unlock()

	var (
		card Card
		err  error
	)
	if editing {
		card, err = c.api.Update(ctx, current.ID, current.Title, current.Description)
	} else {
		card, err = c.api.Create(ctx, current.Title, current.Description)
	}
	c.Update(func(s *State) {
		if err == nil && (s.Editing != editing || s.Current.ID != current.ID) {
			// The modal changed while the request was in flight; apply the
			// reply to what was actually submitted.
			s.Editing, s.Current.ID = editing, current.ID
		}
		s.Submitted(card, err)
	})
	return err
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.api.Delete(ctx, id)
	c.Update(func(s *State) { s.Deleted(id, err) })
	return err
}
