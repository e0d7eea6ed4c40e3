package enumerate

// fillSeq writes the first composition with the given sum: a greedy
// left-to-right fill where seq[i] takes min(maxs[i], remainder). It
// reports whether the sum could be exhausted at all.
func fillSeq(needSum int, maxs, seq []int) bool {
	for i := range seq {
		d := maxs[i]
		if d > needSum {
			d = needSum
		}
		seq[i] = d
		needSum -= d
	}
	return needSum == 0
}

// incSeq advances seq to the next composition with the same sum:
// pour elements into a running slack until a position can grow,
// increment it, then refill the prefix. It reports false when the
// current sum has no further compositions.
func incSeq(maxs, seq []int) bool {
	sum := 0
	for _, v := range seq {
		sum += v
	}
	for s := sum; ; {
		i := 0
		for ; i < len(seq); i++ {
			if seq[i] < maxs[i] {
				seq[i]++
				s++
				break
			}
			s -= seq[i]
			seq[i] = 0
		}
		if i == len(seq) {
			return false
		}
		if s == sum {
			return true
		}
	}
}
