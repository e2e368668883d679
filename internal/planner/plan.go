package planner

// Plan runs a breadth-first forward search from initial to goal, per
// spec.md §4.4. It returns ([], true) if goal is already satisfied by
// initial, (plan, true) on the first state reached whose predicates are
// a superset of goal, and (nil, false) if the search exhausts depthBound
// or the frontier without finding one.
//
// Determinism: schemas are tried in the order given (DefaultSchemas
// fixes this to GoTo, PickUp, PutDown per spec.md §4.4), and each
// schema's own Bindings order fixes binding order within it — so ties
// are broken identically across runs given the same inputs.
func Plan(initial, goal WorldState, schemas []Schema, depthBound int) (Plan, bool) {
	if initial.Subset(goal) {
		return Plan{}, true
	}

	type frontierEntry struct {
		state WorldState
		plan  Plan
	}

	queue := []frontierEntry{{state: initial, plan: nil}}
	visited := map[string]bool{initial.key(): true}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		if len(entry.plan) >= depthBound {
			continue
		}

		for _, schema := range schemas {
			for _, b := range schema.Bindings(entry.state) {
				next, action := schema.Apply(entry.state, b)
				newPlan := make(Plan, len(entry.plan)+1)
				copy(newPlan, entry.plan)
				newPlan[len(entry.plan)] = action

				if next.Subset(goal) {
					return newPlan, true
				}

				k := next.key()
				if visited[k] {
					continue
				}
				visited[k] = true
				queue = append(queue, frontierEntry{state: next, plan: newPlan})
			}
		}
	}
	return nil, false
}
