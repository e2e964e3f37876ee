// Package resource implements the dispatcher's resource allocation
// structure (RAS) list: a flat pool of indivisible device units, grouped
// by kind, each with a non-owning back-reference to the process record
// currently holding it.
package resource

import "hostd/internal/config"

// Unit is one device unit in the pool (a printer, scanner, modem, or CD).
// Holder is the process record ID currently bound to this unit, or 0 if
// the unit is free — process record IDs are assigned starting at 1, so
// 0 is never a valid holder.
type Unit struct {
	ID     uint
	Kind   config.ResourceKind
	Holder uint
}

// Held reports whether the unit is currently allocated.
func (u Unit) Held() bool { return u.Holder != 0 }

// Pool is a flat, creation-ordered list of resource units: all printers,
// then all scanners, then all modems, then all CDs.
type Pool struct {
	units  []Unit
	nextID uint
}

// NewPool creates a pool with the given per-kind unit counts.
func NewPool(cfg config.Config) *Pool {
	p := &Pool{nextID: 1}
	p.addUnits(config.Printer, cfg.AvailablePrinters)
	p.addUnits(config.Scanner, cfg.AvailableScanners)
	p.addUnits(config.Modem, cfg.AvailableModems)
	p.addUnits(config.CD, cfg.AvailableCDs)
	return p
}

func (p *Pool) addUnits(kind config.ResourceKind, count uint) {
	for i := uint(0); i < count; i++ {
		p.units = append(p.units, Unit{ID: p.nextID, Kind: kind})
		p.nextID++
	}
}

// Units returns a copy of the unit list, in creation order, for display.
func (p *Pool) Units() []Unit {
	out := make([]Unit, len(p.units))
	copy(out, p.units)
	return out
}

// TotalOf returns how many units of the given kind exist in the pool.
func (p *Pool) TotalOf(kind config.ResourceKind) uint {
	var n uint
	for _, u := range p.units {
		if u.Kind == kind {
			n++
		}
	}
	return n
}

// Check returns the first free unit of the given kind, left to right,
// without mutating the pool.
func (p *Pool) Check(kind config.ResourceKind) (Unit, bool) {
	for _, u := range p.units {
		if u.Kind == kind && !u.Held() {
			return u, true
		}
	}
	return Unit{}, false
}

// Acquire binds the first free unit of the given kind to the process
// identified by recordID. It fails if no free unit of that kind exists.
func (p *Pool) Acquire(kind config.ResourceKind, recordID uint) (Unit, bool) {
	for i := range p.units {
		if p.units[i].Kind == kind && !p.units[i].Held() {
			p.units[i].Holder = recordID
			return p.units[i], true
		}
	}
	return Unit{}, false
}

// ReleaseAll clears the back-reference on every unit currently held by
// recordID. It is a no-op for units that recordID does not hold.
func (p *Pool) ReleaseAll(recordID uint) {
	if recordID == 0 {
		return
	}
	for i := range p.units {
		if p.units[i].Holder == recordID {
			p.units[i].Holder = 0
		}
	}
}
