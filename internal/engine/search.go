package engine

import (
	"context"
	"fmt"

	"chessmove/internal/chess"
)

// Node is one position of a search tree. Trees are rebuilt from scratch for
// every depth and never shared between passes.
type Node struct {
	Position *chess.Position
	Value    int
	Children []*Node
}

// Best returns the first child holding the extreme value for side, or nil.
func (n *Node) Best(side chess.Side) *Node {
	if len(n.Children) == 0 {
		return nil
	}
	best := n.Children[0]
	for _, ch := range n.Children[1:] {
		if side == chess.Maximizer && ch.Value > best.Value {
			best = ch
		}
		if side == chess.Minimizer && ch.Value < best.Value {
			best = ch
		}
	}
	return best
}

// pass is the state of one fixed-depth search.
type pass struct {
	ctx     context.Context
	weights Weights
	pruning bool

	nodes int64
	// set when a live position was cut off by the depth limit; a pass
	// without it has resolved the whole tree
	depthLimited bool
}

func (s *pass) cancelled() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return nil
}

// expand builds the subtree of pos with side to move. alpha and beta are the
// bounds as they stood when this node was created; updates stay local.
func (s *pass) expand(pos *chess.Position, side chess.Side, depth, alpha, beta int) (*Node, error) {
	if err := s.cancelled(); err != nil {
		return nil, err
	}
	s.nodes++

	node := &Node{Position: pos}
	if chess.IsOver(pos) {
		node.Value = Evaluate(pos, side.Opposite(), s.weights)
		return node, nil
	}
	if depth <= 0 {
		s.depthLimited = true
		node.Value = Evaluate(pos, side.Opposite(), s.weights)
		return node, nil
	}

	if side == chess.Maximizer {
		node.Value = MinScore
	} else {
		node.Value = MaxScore
	}

	children := chess.Generate(pos, side)
	node.Children = make([]*Node, 0, len(children))
	for i, childPos := range children {
		if i > 0 {
			if err := s.cancelled(); err != nil {
				return nil, err
			}
		}
		child, err := s.expand(childPos, side.Opposite(), depth-1, alpha, beta)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)

		if side == chess.Maximizer {
			node.Value = max(node.Value, child.Value)
			alpha = max(alpha, child.Value)
		} else {
			node.Value = min(node.Value, child.Value)
			beta = min(beta, child.Value)
		}
		if s.pruning && beta <= alpha {
			break
		}
	}
	return node, nil
}
