package pathfinding

import (
	"context"
	"fmt"

	"github.com/icydoge/avaroute/internal/core/domain"
)

const noPredecessor = -1

// SearchResult is the outcome of one search that reached its goal.
type SearchResult struct {
	Start Index
	Goal  Index
	Cost  float64 // accumulated edge cost of the path
	Stats domain.SearchStats

	grid *Grid
	prev []int
}

// Search runs a best-first search from start to goal over g with risk
// weighing w. All search state is local to the call so one grid can serve
// concurrent searches. ctx is checked at every frontier pop.
//
// The frontier is ordered by accumulated cost plus CostModel.Heuristic. A
// node is queued again whenever its cost strictly improves; there is no
// closed set. Exhausting the frontier returns domain.ErrNoPathFound.
func Search(ctx context.Context, g *Grid, start, goal Index, w float64) (*SearchResult, error) {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil, fmt.Errorf("%w: start %v or goal %v outside %dx%d grid",
			domain.ErrInvalidInput, start, goal, g.Width, g.Height)
	}

	r := newSearchRunner(g, start, goal, w)
	if err := r.run(ctx); err != nil {
		return nil, err
	}

	return &SearchResult{
		Start: start,
		Goal:  goal,
		Cost:  r.cost[r.goal],
		grid:  g,
		prev:  r.prev,
		Stats: r.stats,
	}, nil
}

// searchRunner holds the per-call state of one search.
type searchRunner struct {
	g          *Grid
	model      CostModel
	start      int
	goal       int
	goalIdx    Index
	goalHeight float64

	cost    []float64
	reached []bool
	prev    []int
	open    *frontier
	stats   domain.SearchStats
}

func newSearchRunner(g *Grid, start, goal Index, w float64) *searchRunner {
	n := g.Width * g.Height
	r := &searchRunner{
		g:          g,
		model:      NewCostModel(g, w),
		start:      g.index(start.X, start.Y),
		goal:       g.index(goal.X, goal.Y),
		goalIdx:    goal,
		goalHeight: g.Node(goal).Elevation,
		cost:       make([]float64, n),
		reached:    make([]bool, n),
		prev:       make([]int, n),
		open:       newFrontier(n),
		stats:      domain.SearchStats{GridWidth: g.Width, GridHeight: g.Height},
	}
	for i := range r.prev {
		r.prev[i] = noPredecessor
	}
	return r
}

func (r *searchRunner) run(ctx context.Context) error {
	r.reached[r.start] = true
	r.push(r.start, 0)

	for !r.open.empty() {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := r.open.pop()
		r.stats.FrontierPops++
		if item.node == r.goal {
			return nil
		}
		r.stats.Expanded++
		r.relax(item.node)
	}

	return fmt.Errorf("%w: frontier exhausted after %d pops", domain.ErrNoPathFound, r.stats.FrontierPops)
}

// relax is evaluated against the node's current best cost, not the cost the
// popped item was queued with.
func (r *searchRunner) relax(u int) {
	node := &r.g.nodes[u]
	for _, e := range node.Edges {
		v := r.g.index(e.To.X, e.To.Y)
		next := &r.g.nodes[v]
		risk := r.model.NodeRisk(next)
		c := r.cost[u] + r.model.EdgeCost(e, risk)
		if r.reached[v] && c >= r.cost[v] {
			continue
		}
		r.reached[v] = true
		r.cost[v] = c
		r.prev[v] = u
		r.push(v, c+r.model.Heuristic(e.To, r.goalIdx, next.Elevation, r.goalHeight, risk))
	}
}

func (r *searchRunner) push(node int, priority float64) {
	r.open.push(node, priority)
	r.stats.FrontierPushes++
}

// Path backtracks predecessors from the goal and returns the visited grid
// indices from start to goal inclusive.
func (s *SearchResult) Path() []Index {
	goal := s.grid.index(s.Goal.X, s.Goal.Y)
	start := s.grid.index(s.Start.X, s.Start.Y)

	var rev []Index
	// A predecessor chain never revisits a node, so it has at most len(prev) links.
	for i, cur := 0, goal; i <= len(s.prev); i++ {
		rev = append(rev, s.grid.coordinate(cur))
		if cur == start {
			break
		}
		cur = s.prev[cur]
		if cur == noPredecessor {
			break
		}
	}

	path := make([]Index, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = idx
	}
	return path
}
