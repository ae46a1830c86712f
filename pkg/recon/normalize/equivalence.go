package normalize

// Pair states that From and To denote the same statistical category.
type Pair struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// Equivalences is a pairwise semantic equivalence table. Lookups are
// case-insensitive and symmetric but never transitive: A≡B and B≡C do not
// make A≡C.
type Equivalences struct {
	forward map[string]string
	reverse map[string]string
}

// NewEquivalences indexes pairs. When a label appears in several pairs the
// first one wins.
func NewEquivalences(pairs []Pair) Equivalences {
	e := Equivalences{
		forward: make(map[string]string, len(pairs)),
		reverse: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		from, to := Fold(p.From), Fold(p.To)
		if _, ok := e.forward[from]; !ok {
			e.forward[from] = p.To
		}
		if _, ok := e.reverse[to]; !ok {
			e.reverse[to] = p.From
		}
	}
	return e
}

// Canonical maps s through the forward direction only, so both spellings of
// a pair converge on the same key.
func (e Equivalences) Canonical(s string) string {
	if to, ok := e.forward[Fold(s)]; ok {
		return to
	}
	return s
}

// Equivalent returns the other side of the pair containing s, or s itself.
func (e Equivalences) Equivalent(s string) string {
	f := Fold(s)
	if to, ok := e.forward[f]; ok {
		return to
	}
	if from, ok := e.reverse[f]; ok {
		return from
	}
	return s
}

// Equal reports whether a and b are the same label or a stored pair in either
// direction.
func (e Equivalences) Equal(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == fb {
		return true
	}
	if to, ok := e.forward[fa]; ok && Fold(to) == fb {
		return true
	}
	if to, ok := e.forward[fb]; ok && Fold(to) == fa {
		return true
	}
	return false
}
