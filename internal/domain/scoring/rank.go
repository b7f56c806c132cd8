package scoring

import "sort"

// RankAverage assigns ascending 1-based ranks where tied values share the
// average of the positions they occupy. Four teams at 10, 20, 20, 30 rank
// 1, 2.5, 2.5, 4. Output index i ranks values[i].
func RankAverage(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]] < values[order[j]] })

	ranks := make([]float64, n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && values[order[end]] == values[order[start]] {
			end++
		}
		// positions start+1..end, averaged across the tie group
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[order[k]] = avg
		}
		start = end
	}

	return ranks
}

// RankMinDescending assigns descending 1-based ranks where tied values all
// take the smallest position in their group and the following rank skips
// past the group: totals 80, 80, 60 rank 1, 1, 3.
func RankMinDescending(values []float64) []int {
	n := len(values)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]] > values[order[j]] })

	ranks := make([]int, n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && values[order[end]] == values[order[start]] {
			end++
		}
		for k := start; k < end; k++ {
			ranks[order[k]] = start + 1
		}
		start = end
	}

	return ranks
}
