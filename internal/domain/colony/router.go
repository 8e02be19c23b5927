package colony

import "sort"

// Transfer records one commodity movement that actually happened between two
// facilities during a routing pass.
type Transfer struct {
	SourceID      int64
	DestinationID int64
	TypeID        int64
	Quantity      int64
}

// routeTarget pairs a route with its resolved destination for one pass
type routeTarget struct {
	route Route
	dest  *Facility
}

// Distribute pushes the given available quantities from the source facility
// along its outgoing routes. Factories that still need a commodity this
// cycle are served before storage, emptiest input buffer first; what is left
// is split evenly across storage routes by descending free volume. Passes
// repeat while any transfer landed, so a factory whose buffer just filled
// can accept a following commodity in the same output event. Whatever no
// destination can admit stays at the source.
//
// Routing never creates or destroys units: every transfer debits the source
// by exactly what the destination credits.
func Distribute(c *Colony, source *Facility, available map[int64]int64) ([]Transfer, map[int64]int64) {
	remaining := make(map[int64]int64, len(available))
	for typeID, qty := range available {
		if qty > 0 {
			remaining[typeID] = qty
		}
	}

	var transfers []Transfer
	for {
		moved := false
		for _, typeID := range sortedTypeIDs(remaining) {
			qty := remaining[typeID]
			if qty <= 0 {
				continue
			}
			processors, stores := partitionTargets(c, source.ID, typeID)

			sort.SliceStable(processors, func(i, j int) bool {
				ri := inputFillRatio(processors[i].dest, typeID)
				rj := inputFillRatio(processors[j].dest, typeID)
				if ri != rj {
					return ri < rj
				}
				return processors[i].dest.ID < processors[j].dest.ID
			})
			for _, target := range processors {
				if qty <= 0 {
					break
				}
				grant := min(qty, target.dest.AcceptLimit(typeID, c.Catalog), target.route.Cap())
				n := move(c, source, target.dest, typeID, grant)
				if n > 0 {
					qty -= n
					moved = true
					transfers = append(transfers, Transfer{
						SourceID:      source.ID,
						DestinationID: target.dest.ID,
						TypeID:        typeID,
						Quantity:      n,
					})
				}
			}

			if qty > 0 {
				sort.SliceStable(stores, func(i, j int) bool {
					fi := stores[i].dest.FreeVolume()
					fj := stores[j].dest.FreeVolume()
					if fi != fj {
						return fi > fj
					}
					return stores[i].dest.ID < stores[j].dest.ID
				})
				for i, target := range stores {
					if qty <= 0 {
						break
					}
					// Even ceiling-division split across the storage routes
					// still to be visited, not first-come-takes-all.
					share := ceilDiv(qty, int64(len(stores)-i))
					grant := min(share, target.dest.AcceptLimit(typeID, c.Catalog), target.route.Cap())
					n := move(c, source, target.dest, typeID, grant)
					if n > 0 {
						qty -= n
						moved = true
						transfers = append(transfers, Transfer{
							SourceID:      source.ID,
							DestinationID: target.dest.ID,
							TypeID:        typeID,
							Quantity:      n,
						})
					}
				}
			}

			if qty > 0 {
				remaining[typeID] = qty
			} else {
				delete(remaining, typeID)
			}
		}
		if !moved || len(remaining) == 0 {
			break
		}
	}
	return transfers, remaining
}

// PullInputs lets a factory that just completed a cycle draw the next
// cycle's inputs from directly connected storage, before it is re-scheduled.
func PullInputs(c *Colony, factory *Facility) []Transfer {
	if factory.Schematic == nil {
		return nil
	}
	routes := c.RoutesTo(factory.ID)
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].TypeID != routes[j].TypeID {
			return routes[i].TypeID < routes[j].TypeID
		}
		return routes[i].SourceID < routes[j].SourceID
	})

	var transfers []Transfer
	for _, r := range routes {
		if !factory.Schematic.Accepts(r.TypeID) {
			continue
		}
		src := c.Facility(r.SourceID)
		if src == nil || !src.Kind.IsStorage() {
			continue
		}
		grant := min(factory.AcceptLimit(r.TypeID, c.Catalog), src.Quantity(r.TypeID), r.Cap())
		n := move(c, src, factory, r.TypeID, grant)
		if n > 0 {
			transfers = append(transfers, Transfer{
				SourceID:      src.ID,
				DestinationID: factory.ID,
				TypeID:        r.TypeID,
				Quantity:      n,
			})
		}
	}
	return transfers
}

// move performs one conservative transfer of up to qty units and returns
// what actually landed. Units the destination refuses go straight back to
// the source.
func move(c *Colony, source, dest *Facility, typeID, qty int64) int64 {
	if qty <= 0 {
		return 0
	}
	taken := source.Remove(typeID, qty, c.Catalog)
	if taken <= 0 {
		return 0
	}
	got := dest.Receive(typeID, taken, c.Catalog)
	if got < taken {
		source.deposit(typeID, taken-got, c.Catalog)
	}
	return got
}

// partitionTargets splits the source's outgoing routes for one commodity
// into factories that need it this cycle and storage destinations. Routes
// with unresolvable endpoints are skipped, not fatal.
func partitionTargets(c *Colony, sourceID, typeID int64) (processors, stores []routeTarget) {
	for _, r := range c.Routes {
		if r.SourceID != sourceID || r.TypeID != typeID {
			continue
		}
		dest := c.Facility(r.DestinationID)
		if dest == nil {
			continue
		}
		switch {
		case dest.Kind == KindFactory:
			if dest.AcceptLimit(typeID, c.Catalog) > 0 {
				processors = append(processors, routeTarget{route: r, dest: dest})
			}
		case dest.Kind.IsStorage():
			stores = append(stores, routeTarget{route: r, dest: dest})
		}
	}
	return processors, stores
}

// inputFillRatio is how far along a factory's buffer is toward the per-cycle
// requirement of one input type
func inputFillRatio(f *Facility, typeID int64) float64 {
	required := f.Schematic.RequiredInput(typeID)
	if required <= 0 {
		return 1
	}
	return float64(f.Quantity(typeID)) / float64(required)
}

func sortedTypeIDs(m map[int64]int64) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
