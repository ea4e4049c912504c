package postgres

import "uwaveapi/internal/repository"

// place returns a new order with ids inserted at the placement. ids must not be
// present in order.
func place(order, ids []string, at repository.Placement) []string {
	idx := 0
	switch {
	case at.AtEnd:
		idx = len(order)
	case at.After != "":
		for i, id := range order {
			if id == at.After {
				idx = i + 1
				break
			}
		}
	}

	out := make([]string, 0, len(order)+len(ids))
	out = append(out, order[:idx]...)
	out = append(out, ids...)
	out = append(out, order[idx:]...)
	return out
}

// move relocates the ids that are part of order to the placement, keeping the
// relative order given by ids. Unknown ids are ignored.
func move(order, ids []string, at repository.Placement) []string {
	present := make(map[string]bool, len(order))
	for _, id := range order {
		present[id] = true
	}
	moving := make(map[string]bool, len(ids))
	picked := make([]string, 0, len(ids))
	for _, id := range ids {
		if present[id] && !moving[id] {
			moving[id] = true
			picked = append(picked, id)
		}
	}

	rest := make([]string, 0, len(order))
	for _, id := range order {
		if !moving[id] {
			rest = append(rest, id)
		}
	}
	if moving[at.After] {
		at.After = ""
	}
	return place(rest, picked, at)
}
