package fertility

import (
	"math/rand"
	"sort"
)

// node is one vertex of a binary decision tree. Leaves carry a class distribution.
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	dist      []float64
}

func (n *node) leaf() bool {
	return n.left == nil
}

// treeBuilder grows a CART tree with Gini impurity over a bootstrap sample
type treeBuilder struct {
	X           [][]float64
	y           []int
	numClasses  int
	maxFeatures int
	maxDepth    int
	minSplit    int
	rng         *rand.Rand
}

func (b *treeBuilder) build(idx []int, depth int) *node {
	counts := b.classCounts(idx)
	if depth >= b.maxDepth || len(idx) < b.minSplit || pure(counts) {
		return &node{dist: normalize(counts)}
	}

	feature, threshold, ok := b.bestSplit(idx, counts)
	if !ok {
		return &node{dist: normalize(counts)}
	}

	var left, right []int
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      b.build(left, depth+1),
		right:     b.build(right, depth+1),
	}
}

// bestSplit scans a random subset of features for the threshold with the lowest
// weighted Gini impurity. ok is false when no candidate reduces impurity.
func (b *treeBuilder) bestSplit(idx []int, parent []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	best := gini(parent, n)

	features := b.rng.Perm(len(b.X[0]))[:b.maxFeatures]
	sorted := make([]int, n)
	for _, f := range features {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.X[sorted[i]][f] < b.X[sorted[j]][f]
		})

		left := make([]int, b.numClasses)
		right := append([]int(nil), parent...)
		for k := 0; k < n-1; k++ {
			c := b.y[sorted[k]]
			left[c]++
			right[c]--

			lo, hi := b.X[sorted[k]][f], b.X[sorted[k+1]][f]
			if lo == hi {
				continue
			}

			nl, nr := k+1, n-k-1
			score := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(n)
			if score < best {
				best = score
				feature = f
				threshold = lo + (hi-lo)/2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) classCounts(idx []int) []int {
	counts := make([]int, b.numClasses)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	return counts
}

func (n *node) predict(x []float64) []float64 {
	for !n.leaf() {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.dist
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func pure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func normalize(counts []int) []float64 {
	var total int
	for _, c := range counts {
		total += c
	}
	dist := make([]float64, len(counts))
	if total == 0 {
		return dist
	}
	for i, c := range counts {
		dist[i] = float64(c) / float64(total)
	}
	return dist
}
