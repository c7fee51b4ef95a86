package classifier

import (
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

const leafFeature = -1

// node is a flattened tree node. Leaves carry Feature == leafFeature and
// Value, the weighted fraction of positive samples that reached them.
type node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v"`
}

type tree []node

func (t tree) predict(row []float64) float64 {
	i := 0
	for t[i].Feature != leafFeature {
		if row[t[i].Feature] <= t[i].Threshold {
			i = t[i].Left
		} else {
			i = t[i].Right
		}
	}
	return t[i].Value
}

type forest []tree

// predict averages the per-tree leaf values in tree order, so the result is
// reproducible bit for bit for the same forest.
func (f forest) predict(row []float64) float64 {
	sum := 0.0
	for _, t := range f {
		sum += t.predict(row)
	}
	return sum / float64(len(f))
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int
}

// fitForest grows nTrees trees on bootstrap samples in parallel. Every tree
// gets its seed from the master rng up front, so the result does not depend
// on scheduling.
func fitForest(x [][]float64, y []int, nTrees int, params treeParams, seed int64) (forest, error) {
	master := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	seeds := make([]uint64, nTrees)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	trees := make(forest, nTrees)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range nTrees {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seeds[i], seeds[i]>>1|1))
			weights := bootstrapWeights(y, rng)
			trees[i] = growTree(x, y, weights, params, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}

// bootstrapWeights draws len(y) samples with replacement and turns the draw
// counts into balanced_subsample weights: each class present in the draw
// gets total weight n/k.
func bootstrapWeights(y []int, rng *rand.Rand) []float64 {
	n := len(y)
	counts := make([]int, n)
	for range n {
		counts[rng.IntN(n)]++
	}

	var classCount [2]int
	for i, c := range counts {
		classCount[y[i]] += c
	}
	present := 0
	for _, c := range classCount {
		if c > 0 {
			present++
		}
	}

	weights := make([]float64, n)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		classWeight := float64(n) / (float64(present) * float64(classCount[y[i]]))
		weights[i] = float64(c) * classWeight
	}
	return weights
}

type treeBuilder struct {
	x      [][]float64
	y      []int
	w      []float64
	params treeParams
	rng    *rand.Rand
	nodes  tree
}

func growTree(x [][]float64, y []int, w []float64, params treeParams, rng *rand.Rand) tree {
	idx := make([]int, 0, len(y))
	for i, weight := range w {
		if weight > 0 {
			idx = append(idx, i)
		}
	}
	b := &treeBuilder{x: x, y: y, w: w, params: params, rng: rng}
	b.build(idx, 0)
	return b.nodes
}

func (b *treeBuilder) classWeights(idx []int) (w0, w1 float64) {
	for _, i := range idx {
		if b.y[i] == 1 {
			w1 += b.w[i]
		} else {
			w0 += b.w[i]
		}
	}
	return w0, w1
}

func (b *treeBuilder) build(idx []int, depth int) int {
	w0, w1 := b.classWeights(idx)
	self := len(b.nodes)
	b.nodes = append(b.nodes, node{Feature: leafFeature, Value: w1 / (w0 + w1)})

	if w0 == 0 || w1 == 0 ||
		len(idx) < b.params.minSamplesSplit ||
		(b.params.maxDepth > 0 && depth >= b.params.maxDepth) {
		return self
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return self
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[self] = node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return self
}

// bestSplit visits features in random order until maxFeatures non-constant
// features have been evaluated, and returns the split with the lowest
// weighted Gini impurity.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	nFeatures := len(b.x[idx[0]])
	order := b.rng.Perm(nFeatures)

	bestFeature, bestThreshold, bestImpurity := -1, 0.0, 0.0
	visited := 0
	sorted := make([]int, len(idx))

	for _, f := range order {
		if visited >= b.params.maxFeatures {
			break
		}

		copy(sorted, idx)
		sort.Slice(sorted, func(a, c int) bool {
			return b.x[sorted[a]][f] < b.x[sorted[c]][f]
		})
		if b.x[sorted[0]][f] == b.x[sorted[len(sorted)-1]][f] {
			continue
		}
		visited++

		total0, total1 := b.classWeights(sorted)
		var left0, left1 float64
		for k := 0; k < len(sorted)-1; k++ {
			i := sorted[k]
			if b.y[i] == 1 {
				left1 += b.w[i]
			} else {
				left0 += b.w[i]
			}

			lo, hi := b.x[i][f], b.x[sorted[k+1]][f]
			if lo == hi {
				continue
			}

			impurity := weightedGini(left0, left1) + weightedGini(total0-left0, total1-left1)
			if bestFeature == -1 || impurity < bestImpurity {
				threshold := lo + (hi-lo)/2
				if threshold >= hi {
					threshold = lo
				}
				bestFeature, bestThreshold, bestImpurity = f, threshold, impurity
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature != -1
}

// weightedGini is the Gini impurity of a child scaled by its total weight.
func weightedGini(w0, w1 float64) float64 {
	total := w0 + w1
	if total == 0 {
		return 0
	}
	p0, p1 := w0/total, w1/total
	return total * (1 - p0*p0 - p1*p1)
}
