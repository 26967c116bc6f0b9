package scheduler

// counterSet is a multiset over chunkserver IDs. Scatter maps are
// counter sets: the key set is the neighbor set, the count is how many
// copysets are shared with that neighbor.
//
// The decrement contract is erase-at-zero: a neighbor edge only
// disappears when no shared copyset remains. Keeping this rule in one
// place is what makes the zero-multiplicity edge-removal behavior of
// migration simulation auditable.
type counterSet map[string]int

func (c counterSet) increment(id string) {
	c[id]++
}

// decrementOrRemove removes one occurrence of id, deleting the key
// when the count reaches zero. Decrementing an absent id is a no-op.
func (c counterSet) decrementOrRemove(id string) {
	if c[id] <= 1 {
		delete(c, id)
	} else {
		c[id]--
	}
}

// distinct returns the number of distinct ids present, i.e. the
// scatter-width when the set is a scatter map.
func (c counterSet) distinct() int {
	return len(c)
}
