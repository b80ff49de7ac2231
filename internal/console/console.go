package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/bloomview/bloomview-api/internal/entity"
)

type State int

const (
	StateLocked State = iota
	StateAuthorizing
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateAuthorizing:
		return "authorizing"
	case StateUnlocked:
		return "unlocked"
	default:
		return "locked"
	}
}

// Console is the admin portal state machine. It holds a cached, disposable
// view of the lead list; the server stays authoritative, so every mutation
// triggers a full refetch instead of patching the cache in place.
type Console struct {
	client *Client

	// All fields below are guarded by methods; Console is used from a single
	// operator loop, the loading flag just prevents overlapping refreshes.
	state    State
	passcode string
	leads    []entity.Lead
	loading  bool
}

func New(client *Client) *Console {
	return &Console{client: client, state: StateLocked}
}

func (c *Console) State() State {
	return c.state
}

// Leads returns the cached lead view from the last successful fetch.
func (c *Console) Leads() []entity.Lead {
	return c.leads
}

// Login presents the passcode to the backend by issuing an authorized list
// call. A wrong passcode returns ErrUnauthorized and leaves the console
// locked with nothing cached.
func (c *Console) Login(ctx context.Context, passcode string) error {
	c.state = StateAuthorizing

	leads, err := c.client.ListLeads(ctx, passcode)
	if err != nil {
		c.state = StateLocked
		return err
	}

	c.passcode = passcode
	c.leads = leads
	c.state = StateUnlocked
	return nil
}

// Refresh refetches the lead list. At most one refresh is in flight: a call
// that lands while another is loading is a no-op rather than a second
// request racing the first.
func (c *Console) Refresh(ctx context.Context) error {
	if c.state != StateUnlocked {
		return fmt.Errorf("console is %s", c.state)
	}
	if c.loading {
		return nil
	}
	c.loading = true
	defer func() { c.loading = false }()

	leads, err := c.client.ListLeads(ctx, c.passcode)
	if err != nil {
		return err
	}

	c.leads = leads
	return nil
}

// Filter applies the case-insensitive substring match over name, email and
// service to the cached view. Pure and local; it never re-queries.
func (c *Console) Filter(query string) []entity.Lead {
	if query == "" {
		return c.leads
	}

	q := strings.ToLower(query)
	matched := []entity.Lead{}
	for _, l := range c.leads {
		if strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Email), q) ||
			strings.Contains(strings.ToLower(l.Service), q) {
			matched = append(matched, l)
		}
	}
	return matched
}

// SetStatus updates a lead's status on the server, then refetches.
func (c *Console) SetStatus(ctx context.Context, id, status string) error {
	if c.state != StateUnlocked {
		return fmt.Errorf("console is %s", c.state)
	}
	if !entity.ValidStatus(status) {
		return entity.ErrInvalidStatus
	}

	if err := c.client.UpdateLeadStatus(ctx, c.passcode, id, status); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes a lead on the server, then refetches.
func (c *Console) Delete(ctx context.Context, id string) error {
	if c.state != StateUnlocked {
		return fmt.Errorf("console is %s", c.state)
	}

	if err := c.client.DeleteLead(ctx, c.passcode, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Logout discards the secret and the cached leads and returns to locked.
func (c *Console) Logout() {
	c.passcode = ""
	c.leads = nil
	c.state = StateLocked
}
