package pathfinding

import "math"

// CostModel weighs terrain effort against risk for one search.
type CostModel struct {
	Weighing float64    // 0 ignores risk, 1 ignores distance
	Naismith Range      // raw edge distance range of the grid
	Res      Resolution // per-step ground distances of the grid
}

// NewCostModel binds a risk weighing to a built grid.
func NewCostModel(g *Grid, weighing float64) CostModel {
	return CostModel{Weighing: weighing, Naismith: g.Naismith, Res: g.Res}
}

// NodeRisk is the weighted risk of entering a node.
func (c CostModel) NodeRisk(n *Node) float64 { return n.Risk * c.Weighing }

// EdgeCost is the cost of traversing e into a node whose weighted risk is
// nodeRisk.
func (c CostModel) EdgeCost(e Edge, nodeRisk float64) float64 {
	return c.Naismith.Scale(e.Raw)*(1-c.Weighing) + nodeRisk
}

// Heuristic estimates the remaining cost from a node at from with elevation
// height to the goal. The diagonal distance plus the ascent penalty is
// multiplied by the node's weighted risk and scaled like an edge distance.
// The estimate is not a lower bound.
func (c CostModel) Heuristic(from, goal Index, height, goalHeight, nodeRisk float64) float64 {
	dx := abs(from.X - goal.X)
	dy := abs(from.Y - goal.Y)

	longer, shorter := c.Res.X, dy
	if dx < dy {
		longer, shorter = c.Res.Y, dx
	}

	d := longer*float64(abs(dx-dy)) +
		float64(shorter)*c.Res.Diagonal +
		NaismithConstant*math.Max(0, height-goalHeight)
	return c.Naismith.Scale(d * nodeRisk)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
