package liveactivity

// Registry is the set of tracked games, unique by GameID.
// Methods never modify the receiver; mutations return a new Registry so that a
// snapshot handed to a reader stays fully formed.
type Registry []TrackedGame

// Add inserts game unless a record for its GameID exists. The first registration wins.
func (r Registry) Add(game TrackedGame) Registry {
	if r.Contains(game.GameID) {
		return r
	}
	out := make(Registry, 0, len(r)+1)
	out = append(out, r...)
	return append(out, game)
}

// Remove drops the record for gameID, if any.
func (r Registry) Remove(gameID int) Registry {
	if !r.Contains(gameID) {
		return r
	}
	return r.Filter(func(g TrackedGame) bool { return g.GameID != gameID })
}

// Filter returns the records for which keep reports true.
func (r Registry) Filter(keep func(TrackedGame) bool) Registry {
	out := make(Registry, 0, len(r))
	for _, g := range r {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func (r Registry) Get(gameID int) (TrackedGame, bool) {
	for _, g := range r {
		if g.GameID == gameID {
			return g, true
		}
	}
	return TrackedGame{}, false
}

func (r Registry) Contains(gameID int) bool {
	_, ok := r.Get(gameID)
	return ok
}

// Holds reports whether the exact record (same game and activity) is present.
func (r Registry) Holds(game TrackedGame) bool {
	current, ok := r.Get(game.GameID)
	return ok && current == game
}

func (r Registry) Len() int { return len(r) }

func (r Registry) ActivityIDs() []string {
	ids := make([]string, 0, len(r))
	for _, g := range r {
		ids = append(ids, g.ActivityID)
	}
	return ids
}

// Equal compares two registries ignoring order.
func (r Registry) Equal(other Registry) bool {
	if len(r) != len(other) {
		return false
	}
	for _, g := range r {
		if !other.Holds(g) {
			return false
		}
	}
	return true
}

// dedupe collapses duplicate game ids, keeping the first record of each.
func dedupe(games []TrackedGame) Registry {
	var out Registry
	for _, g := range games {
		out = out.Add(g)
	}
	return out
}
