package classify

import (
	"math"

	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
)

// KMeans is the two-centroid clustering classifier, modeled on kmeans.py.
type KMeans struct {
	Distance Distance // defaults to L2 if nil
	MaxIter int // defaults to 10 if <= 0
	Log *obslog.Logger
}

type kmeansItem struct {
	pair record.Pair
	values []float64
	present []bool
}

// Classify runs k=2 k-means over the vectors in pairs. Initialisation
// sets the match centroid to the per-component observed maximum and the
// non-match centroid to the per-component observed minimum (similarity
// vectors live in [0,1]^d, so the match cluster starts near the upper
// corner). Termination is by fixed point or MaxIter, whichever comes
// first. Each classified vector is scored
// log10((distance(v,low)+0.1)/(distance(v,high)+0.1)).
func (k KMeans) Classify(pairs *blockindex.PairMap) (matches, nonmatches *Scores) {
	matches, nonmatches = NewScores(), NewScores()
	if pairs.Len() == 0 {
		return matches, nonmatches
	}

	distance := k.Distance
	if distance == nil {
		distance = L2
	}
	maxIter := k.MaxIter
	if maxIter <= 0 {
		maxIter = 10
	}

	var items []kmeansItem
	dim := 0
	pairs.Range(func(pair record.Pair, vec recordsim.Vector) {
			values, present := vec.Floats()
			items = append(items, kmeansItem{pair: pair, values: values, present: present})
			dim = len(values)
	})
	if dim == 0 {
		return matches, nonmatches
	}

	if k.Log != nil {
		k.Log.Debugf("kmeans: dimension=%d maxiter=%d pairs=%d", dim, maxIter, len(items))
	}

	high := make([]float64, dim)
	low := make([]float64, dim)
	highPresent := make([]bool, dim)
	lowPresent := make([]bool, dim)
	for _, it := range items {
		for i := 0; i < dim; i++ {
			if !it.present[i] {
				continue
			}
			if !highPresent[i] || it.values[i] > high[i] {
				high[i] = it.values[i]
				highPresent[i] = true
			}
			if !lowPresent[i] || it.values[i] < low[i] {
				low[i] = it.values[i]
				lowPresent[i] = true
			}
		}
	}

	assigned := make([]bool, len(items)) // true = match cluster
	changed := 1
	iters := 0
	for changed > 0 && iters < maxIter {
		changed = 0
		iters++

		highTotal := make([]float64, dim)
		lowTotal := make([]float64, dim)
		highCount := make([]int, dim)
		lowCount := make([]int, dim)

		for idx, it := range items {
			dHigh := distance(it.values, high, it.present, highPresent)
			dLow := distance(it.values, low, it.present, lowPresent)
			isMatch := dHigh < dLow
			if isMatch != assigned[idx] {
				changed++
			}
			assigned[idx] = isMatch

			total, count := lowTotal, lowCount
			if isMatch {
				total, count = highTotal, highCount
			}
			for i := 0; i < dim; i++ {
				if it.present[i] {
					total[i] += it.values[i]
					count[i]++
				}
			}
		}

		for i := 0; i < dim; i++ {
			if highCount[i] > 0 {
				high[i] = highTotal[i] / float64(highCount[i])
				highPresent[i] = true
			} else {
				highPresent[i] = false
			}
			if lowCount[i] > 0 {
				low[i] = lowTotal[i] / float64(lowCount[i])
				lowPresent[i] = true
			} else {
				lowPresent[i] = false
			}
		}

		if k.Log != nil {
			k.Log.Debugf("kmeans: iteration=%d changed=%d", iters, changed)
		}
	}

	for idx, it := range items {
		dLow := distance(it.values, low, it.present, lowPresent)
		dHigh := distance(it.values, high, it.present, highPresent)
		score := math.Log10((dLow + 0.1) / (dHigh + 0.1))
		if assigned[idx] {
			matches.Set(it.pair, score)
		} else {
			nonmatches.Set(it.pair, score)
		}
	}

	if k.Log != nil {
		k.Log.Infof("kmeans: pairs=%d matches=%d nonmatches=%d iterations=%d", len(items), matches.Len(), nonmatches.Len(), iters)
	}

	return matches, nonmatches
}
