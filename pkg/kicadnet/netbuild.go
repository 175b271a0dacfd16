package kicadnet

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/netxref/pkg/kicad/schematic"
)

// posKey identifies a schematic coordinate at KiCad's native grid
// resolution; wires, junctions, pins and labels that share a key are
// electrically connected.
type posKey string

func keyOf(p schematic.Position) posKey {
	return posKey(fmt.Sprintf("%.3f,%.3f", p.X, p.Y))
}

// netBuilder unions connection points into electrical nets with a
// union-find structure, the same shape as the teacher's pin-based net
// discovery (parent/rank maps with path compression) but keyed on
// schematic position instead of chain/device/pin identity.
type netBuilder struct {
	parent map[posKey]posKey
	rank   map[posKey]int

	labelAt map[posKey][]labelHit
	pinAt   map[posKey][]pinHit
}

type labelHit struct {
	text string
	rank int // lower wins when a net carries more than one label kind
}

type pinHit struct {
	device *deviceImpl
	pin    *pinImpl
}

func newNetBuilder() *netBuilder {
	return &netBuilder{
		parent:  make(map[posKey]posKey),
		rank:    make(map[posKey]int),
		labelAt: make(map[posKey][]labelHit),
		pinAt:   make(map[posKey][]pinHit),
	}
}

func (b *netBuilder) touch(k posKey) {
	if _, ok := b.parent[k]; !ok {
		b.parent[k] = k
		b.rank[k] = 0
	}
}

func (b *netBuilder) find(k posKey) posKey {
	b.touch(k)
	root := k
	for b.parent[root] != root {
		root = b.parent[root]
	}
	cur := k
	for cur != root {
		next := b.parent[cur]
		b.parent[cur] = root
		cur = next
	}
	return root
}

func (b *netBuilder) union(a, c posKey) {
	ra, rc := b.find(a), b.find(c)
	if ra == rc {
		return
	}
	if b.rank[ra] < b.rank[rc] {
		b.parent[ra] = rc
	} else if b.rank[ra] > b.rank[rc] {
		b.parent[rc] = ra
	} else {
		b.parent[rc] = ra
		b.rank[ra]++
	}
}

func (b *netBuilder) addLabel(p schematic.Position, text string, rank int) {
	k := keyOf(p)
	b.touch(k)
	b.labelAt[k] = append(b.labelAt[k], labelHit{text: text, rank: rank})
}

func (b *netBuilder) addPin(p schematic.Position, dev *deviceImpl, pin *pinImpl) {
	k := keyOf(p)
	b.touch(k)
	b.pinAt[k] = append(b.pinAt[k], pinHit{device: dev, pin: pin})
}

// group is one finalized net: its representative key, every pin hit that
// landed on it, and the best label name found among its points.
type group struct {
	key   posKey
	pins  []pinHit
	label string
}

// finalize groups every touched point by union-find root, then unions
// groups that carry the same label text — KiCad global labels name the
// same net wherever they appear, even across schematic sheets with no
// physical wire between them.
func (b *netBuilder) finalize() []group {
	byRoot := make(map[posKey][]posKey)
	for k := range b.parent {
		r := b.find(k)
		byRoot[r] = append(byRoot[r], k)
	}

	roots := make([]posKey, 0, len(byRoot))
	for r := range byRoot {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	byLabel := make(map[string]posKey)
	for _, r := range roots {
		best, ok := bestLabel(byRoot[r], b.labelAt)
		if !ok {
			continue
		}
		if existing, ok := byLabel[best]; ok {
			b.union(existing, r)
		} else {
			byLabel[best] = r
		}
	}

	merged := make(map[posKey][]posKey)
	for _, r := range roots {
		root := b.find(r)
		merged[root] = append(merged[root], byRoot[r]...)
	}

	mergedRoots := make([]posKey, 0, len(merged))
	for r := range merged {
		mergedRoots = append(mergedRoots, r)
	}
	sort.Slice(mergedRoots, func(i, j int) bool { return mergedRoots[i] < mergedRoots[j] })

	groups := make([]group, 0, len(mergedRoots))
	for _, r := range mergedRoots {
		keys := merged[r]
		g := group{key: r}
		if name, ok := bestLabel(keys, b.labelAt); ok {
			g.label = name
		}
		for _, k := range keys {
			g.pins = append(g.pins, b.pinAt[k]...)
		}
		groups = append(groups, g)
	}
	return groups
}

func bestLabel(keys []posKey, labelAt map[posKey][]labelHit) (string, bool) {
	found := false
	var best labelHit
	for _, k := range keys {
		for _, hit := range labelAt[k] {
			if !found || hit.rank < best.rank || (hit.rank == best.rank && hit.text < best.text) {
				best, found = hit, true
			}
		}
	}
	return best.text, found
}
