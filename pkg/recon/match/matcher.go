package match

import (
	"math"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
)

// Sides of a comparison, used in duplicate reports.
const (
	SidePublished = "published"
	SideRecreated = "recreated"
)

// toleranceSlack absorbs float rounding in differences such as
// 100.3 - 99.3.
const toleranceSlack = 1e-9

// Options controls pairing and value comparison.
type Options struct {
	// Tolerance is the inclusive absolute difference accepted as a match.
	Tolerance float64 `mapstructure:"tolerance"`
	// LevelThreshold is the minimum label similarity a single level needs to
	// contribute to a fuzzy score.
	LevelThreshold float64 `mapstructure:"level_threshold"`
	// AcceptThreshold is the minimum fuzzy score for a pair.
	AcceptThreshold float64 `mapstructure:"accept_threshold"`
}

// DefaultOptions returns the default matcher options.
func DefaultOptions() Options {
	return Options{
		Tolerance:       1.0,
		LevelThreshold:  0.8,
		AcceptThreshold: 0.7,
	}
}

// Matcher reconciles recreated data points against published ones.
type Matcher struct {
	norm *normalize.Normalizer
	opts Options
}

// New creates a Matcher. A nil normalizer uses the default rules.
func New(n *normalize.Normalizer, opts Options) *Matcher {
	if n == nil {
		n = normalize.Default()
	}
	return &Matcher{norm: n, opts: opts}
}

type entry struct {
	key     Key
	id      string
	point   models.DataPoint
	claimed bool
}

type pairing struct {
	b         *entry
	matchType models.MatchType
	score     float64
}

// Reconcile pairs every recreated point with at most one published point.
// Pairing runs in passes: exact keys for all points first, then semantic
// equivalence of every level, then fuzzy similarity. Published points are
// tried in sheet order, so the first unclaimed candidate wins ties.
func (m *Matcher) Reconcile(sheet string, recreated, published []models.DataPoint) *models.SheetResult {
	res := &models.SheetResult{Sheet: sheet}

	as, _, dupA := m.index(SideRecreated, recreated)
	bs, byID, dupB := m.index(SidePublished, published)
	res.Duplicates = append(dupA, dupB...)
	res.RecreatedPoints = len(as)
	res.PublishedPoints = len(bs)

	pairs := make([]pairing, len(as))

	for i, a := range as {
		if b, ok := byID[a.id]; ok && !b.claimed {
			b.claimed = true
			pairs[i] = pairing{b: b, matchType: models.MatchExact, score: 1}
		}
	}

	for i, a := range as {
		if pairs[i].b != nil {
			continue
		}
		for _, b := range bs {
			if b.claimed || !m.equivalent(a.key, b.key) {
				continue
			}
			b.claimed = true
			pairs[i] = pairing{b: b, matchType: models.MatchSemantic, score: 1}
			break
		}
	}

	for i, a := range as {
		if pairs[i].b != nil {
			continue
		}
		var best *entry
		bestScore := 0.0
		for _, b := range bs {
			if b.claimed {
				continue
			}
			if s := score(a.key, b.key, m.norm, m.opts.LevelThreshold); s >= m.opts.AcceptThreshold && s > bestScore {
				best, bestScore = b, s
			}
		}
		if best != nil {
			best.claimed = true
			pairs[i] = pairing{b: best, matchType: models.MatchFuzzy, score: bestScore}
		}
	}

	for i, a := range as {
		p := pairs[i]
		if p.b == nil {
			res.MissingPublished = append(res.MissingPublished, models.Comparison{
				Coordinate:     a.key.String(),
				MatchType:      models.MatchNone,
				RecreatedValue: float(a.point.Value),
				OriginRow:      a.point.Origin.Row,
				OriginCol:      a.point.Origin.Col,
			})
			continue
		}

		diff := a.point.Value - p.b.point.Value
		c := models.Comparison{
			Coordinate:     a.key.String(),
			MatchType:      p.matchType,
			Score:          p.score,
			RecreatedValue: float(a.point.Value),
			PublishedValue: float(p.b.point.Value),
			Difference:     float(diff),
			OriginRow:      a.point.Origin.Row,
			OriginCol:      a.point.Origin.Col,
			PublishedRow:   p.b.point.Origin.Row,
			PublishedCol:   p.b.point.Origin.Col,
		}
		if p.matchType != models.MatchExact {
			c.MatchedCoordinate = p.b.key.String()
		}
		if math.Abs(diff) <= m.opts.Tolerance+toleranceSlack {
			res.Matches = append(res.Matches, c)
		} else {
			res.Differences = append(res.Differences, c)
		}
	}

	for _, b := range bs {
		if b.claimed {
			continue
		}
		res.MissingRecreated = append(res.MissingRecreated, models.Comparison{
			Coordinate:     b.key.String(),
			MatchType:      models.MatchNone,
			PublishedValue: float(b.point.Value),
			OriginRow:      b.point.Origin.Row,
			OriginCol:      b.point.Origin.Col,
			PublishedRow:   b.point.Origin.Row,
			PublishedCol:   b.point.Origin.Col,
		})
	}

	res.CorrectMatches = len(res.Matches)
	res.ValueDifferences = len(res.Differences)
	res.MissingInPublished = len(res.MissingPublished)
	res.MissingInRecreated = len(res.MissingRecreated)
	if res.RecreatedPoints > 0 {
		res.Accuracy = float64(res.CorrectMatches) / float64(res.RecreatedPoints)
	}
	return res
}

// index keys the points of one side. When two points share a key the first
// in sheet order is kept and the later one is reported as a duplicate.
func (m *Matcher) index(side string, points []models.DataPoint) ([]*entry, map[string]*entry, []models.Duplicate) {
	entries := make([]*entry, 0, len(points))
	byID := make(map[string]*entry, len(points))
	var dups []models.Duplicate

	for _, p := range points {
		key := KeyOf(p, m.norm)
		id := key.ID()
		if kept, ok := byID[id]; ok {
			dups = append(dups, models.Duplicate{
				Side:       side,
				Coordinate: key.String(),
				Kept:       kept.point.Origin,
				Dropped:    p.Origin,
				Value:      p.Value,
			})
			continue
		}
		e := &entry{key: key, id: id, point: p}
		entries = append(entries, e)
		byID[id] = e
	}
	return entries, byID, dups
}

// equivalent reports whether both keys have the same levels and every level
// is equal or semantically equivalent.
func (m *Matcher) equivalent(a, b Key) bool {
	if !a.SameShape(b) {
		return false
	}
	for i := range a {
		if !m.norm.Equal(a[i].Label, b[i].Label) {
			return false
		}
	}
	return true
}

func float(v float64) *float64 {
	return &v
}
