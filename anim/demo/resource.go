package demo

import "fmt"

// ResourceUnit is a plain value carrying the explicit numeric identity that
// ends up in resource_use log rows. Ids are 1-based and fixed for the life
// of the pool.
type ResourceUnit struct {
	ID int
}

// ResourcePool is an explicit indexed pool of resource units. Acquire hands
// out the lowest-numbered free unit; that is a documented policy, not an
// accident of ordering, so slot reuse in the resulting animation is
// reproducible run to run.
type ResourcePool struct {
	units []ResourceUnit
	busy  []bool
}

// NewResourcePool creates a pool of n units with ids 1..n.
func NewResourcePool(n int) *ResourcePool {
	p := &ResourcePool{
		units: make([]ResourceUnit, n),
		busy:  make([]bool, n),
	}
	for i := range p.units {
		p.units[i] = ResourceUnit{ID: i + 1}
	}
	return p
}

// Acquire claims the lowest-numbered free unit. The second return is false
// when every unit is busy.
func (p *ResourcePool) Acquire() (ResourceUnit, bool) {
	for i := range p.units {
		if !p.busy[i] {
			p.busy[i] = true
			return p.units[i], true
		}
	}
	return ResourceUnit{}, false
}

// Release frees the unit with the given id.
func (p *ResourcePool) Release(id int) error {
	i := id - 1
	if i < 0 || i >= len(p.units) {
		return fmt.Errorf("release: no unit with id %d in pool of %d", id, len(p.units))
	}
	if !p.busy[i] {
		return fmt.Errorf("release: unit %d is not in use", id)
	}
	p.busy[i] = false
	return nil
}

// Size returns the total number of units.
func (p *ResourcePool) Size() int {
	return len(p.units)
}

// InUse returns the number of busy units.
func (p *ResourcePool) InUse() int {
	n := 0
	for _, b := range p.busy {
		if b {
			n++
		}
	}
	return n
}
