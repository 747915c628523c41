package main

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/clement-dufour/maraude-cli/rema"
)

type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateAuthenticated
	// StateAuthenticatedStale means the session is nominally established
	// but the last load came from the fallback snapshot. The UI must not
	// confuse it with plain demo mode.
	StateAuthenticatedStale
)

func (s AuthState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAuthenticatedStale:
		return "authenticated-stale"
	default:
		return "unauthenticated"
	}
}

type AddResult string

const (
	AddSuccess       AddResult = "success"
	AddAlreadyExists AddResult = "already_exists"
	AddNotFound      AddResult = "not_found"
)

// Console owns the session state of one maraude console run: the full
// ménage set, the displayed subset, the active filters and the auth
// state. All mutations go through its methods.
type Console struct {
	client *RemaClient

	state               AuthState
	allHouseholds       []rema.Household
	displayedHouseholds []rema.Household
	filters             rema.Filters
	usingFallback       bool
	source              string
}

func NewConsole(client *RemaClient) *Console {
	return &Console{client: client}
}

// Load runs one fetch cycle and reseeds the household sets. A fallback
// load while the session is nominally established degrades the auth
// state to authenticated-stale; a live load restores it.
func (c *Console) Load() error {
	response, err := c.client.FetchHouseholds()
	if err != nil {
		return err
	}
	c.SetHouseholds(response.Households)
	c.usingFallback = response.IsUsingFallback
	c.source = response.Source

	if response.IsUsingFallback && c.state == StateAuthenticated {
		c.state = StateAuthenticatedStale
	} else if !response.IsUsingFallback && c.state == StateAuthenticatedStale {
		c.state = StateAuthenticated
	}
	return nil
}

// SetHouseholds replaces the full set wholesale. The displayed set
// mirrors the full set whenever the two diverge in size: everything is
// shown by default, filtering stays a view concern.
func (c *Console) SetHouseholds(households []rema.Household) {
	c.allHouseholds = households
	if len(c.displayedHouseholds) != len(c.allHouseholds) {
		c.displayedHouseholds = append([]rema.Household(nil), c.allHouseholds...)
	}
}

// SetDisplayedHouseholds replaces the displayed subset directly.
func (c *Console) SetDisplayedHouseholds(households []rema.Household) {
	c.displayedHouseholds = households
}

// AddByIdentifier looks identifier up against the idSisiao column of the
// full set and prepends the match to the displayed set.
func (c *Console) AddByIdentifier(identifier string) AddResult {
	var found *rema.Household
	for i := range c.allHouseholds {
		if c.allHouseholds[i].IDSisiao == identifier {
			found = &c.allHouseholds[i]
			break
		}
	}
	if found == nil {
		return AddNotFound
	}
	for i := range c.displayedHouseholds {
		if c.displayedHouseholds[i].ID == found.ID {
			return AddAlreadyExists
		}
	}
	c.displayedHouseholds = append([]rema.Household{*found}, c.displayedHouseholds...)
	return AddSuccess
}

// UpdateHousehold shallow-merges update onto the matching record in both
// sets, preserving positions. It reports whether the id was known.
func (c *Console) UpdateHousehold(id string, update rema.HouseholdUpdate) bool {
	found := false
	for i := range c.allHouseholds {
		if c.allHouseholds[i].ID == id {
			update.Apply(&c.allHouseholds[i])
			found = true
		}
	}
	for i := range c.displayedHouseholds {
		if c.displayedHouseholds[i].ID == id {
			update.Apply(&c.displayedHouseholds[i])
		}
	}
	return found
}

func (c *Console) SetFilters(filters rema.Filters) {
	c.filters = filters
}

func (c *Console) Filters() rema.Filters {
	return c.filters
}

// Filtered derives the visible subset from the displayed set and the
// active filters. Pure with respect to console state.
func (c *Console) Filtered() []rema.Household {
	return rema.FilterHouseholds(c.displayedHouseholds, c.filters)
}

func (c *Console) AllHouseholds() []rema.Household {
	return c.allHouseholds
}

func (c *Console) DisplayedHouseholds() []rema.Household {
	return c.displayedHouseholds
}

func (c *Console) FindHousehold(id string) (rema.Household, bool) {
	for _, h := range c.allHouseholds {
		if h.ID == id {
			return h, true
		}
	}
	return rema.Household{}, false
}

func (c *Console) State() AuthState {
	return c.state
}

func (c *Console) SetAuthenticated() {
	c.state = StateAuthenticated
}

func (c *Console) SetUnauthenticated() {
	c.state = StateUnauthenticated
}

func (c *Console) UsingFallback() bool {
	return c.usingFallback
}

func (c *Console) Source() string {
	return c.source
}

// Watch re-runs Load on a fixed interval until stop is closed. A failed
// refresh only logs; the loop keeps going and the next tick retries. The
// filters are left alone, only the underlying sets are refreshed.
func (c *Console) Watch(interval time.Duration, stop <-chan struct{}, onRefresh func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.Load(); err != nil {
				log.Errorf("periodic refresh failed: %s", err)
				continue
			}
			log.Infof("Refreshed %d ménages (source: %s)", len(c.allHouseholds), c.source)
			if onRefresh != nil {
				onRefresh()
			}
		}
	}
}
