package easports

import (
	"fmt"
	"slices"
)

// ClubIDs returns a copy of the tracked club ids.
func (c *Client) ClubIDs() []int64 {
	c.clubMu.RLock()
	defer c.clubMu.RUnlock()
	return slices.Clone(c.clubIDs)
}

// SetClubIDs replaces the tracked clubs. Duplicates are collapsed.
func (c *Client) SetClubIDs(ids []int64) error {
	next := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("club id must be greater than zero: %d", id)
		}
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}

	c.clubMu.Lock()
	c.clubIDs = next
	c.clubMu.Unlock()
	c.invalidateMatches()
	return nil
}

// AddClubID tracks id; adding a tracked club is a no-op.
func (c *Client) AddClubID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("club id must be greater than zero: %d", id)
	}

	c.clubMu.Lock()
	added := !slices.Contains(c.clubIDs, id)
	if added {
		c.clubIDs = append(c.clubIDs, id)
	}
	c.clubMu.Unlock()
	if added {
		c.invalidateMatches()
	}
	return nil
}

func (c *Client) RemoveClubID(id int64) {
	c.clubMu.Lock()
	before := len(c.clubIDs)
	c.clubIDs = slices.DeleteFunc(c.clubIDs, func(existing int64) bool { return existing == id })
	removed := len(c.clubIDs) != before
	c.clubMu.Unlock()
	if removed {
		c.invalidateMatches()
	}
}
