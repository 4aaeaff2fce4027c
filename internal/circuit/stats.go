package circuit

import (
	"cmp"
	"slices"

	"github.com/nvandessel/lasercircuit/internal/models"
)

// ActivatedCount returns how many receivers have been activated.
func (c *Circuit) ActivatedCount() int {
	n := 0
	for _, r := range c.receivers {
		if r.Activated {
			n++
		}
	}
	return n
}

// activated returns the activated receivers in symbol order.
func (c *Circuit) activated() []models.Receiver {
	var out []models.Receiver
	for _, r := range c.receivers {
		if r.Activated {
			out = append(out, r)
		}
	}
	return out
}

// ActivationTimes returns the activated receivers, earliest first.
// Receivers activated at the same time keep symbol order.
func (c *Circuit) ActivationTimes() []models.Receiver {
	out := c.activated()
	slices.SortStableFunc(out, func(a, b models.Receiver) int {
		return cmp.Compare(a.ActivatedAt, b.ActivatedAt)
	})
	return out
}

// TotalEnergy returns the activated receivers, most energy first.
// Receivers with equal energy keep symbol order.
func (c *Circuit) TotalEnergy() []models.Receiver {
	out := c.activated()
	slices.SortStableFunc(out, func(a, b models.Receiver) int {
		return cmp.Compare(b.Energy, a.Energy)
	})
	return out
}
