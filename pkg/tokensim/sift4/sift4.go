// Package sift4 implements Sift4, a single-pass approximate edit distance
// that detects transpositions within a bounded look-ahead window.
//
// Distances are computed over runes and are not guaranteed to be symmetric.
package sift4

// DefaultMaxOffset is the look-ahead window used when none is given.
const DefaultMaxOffset = 5

// Stats describes the work done by one scan.
type Stats struct {
	Comparisons int  // rune comparisons performed
	EarlyExit   bool // the scan stopped at MaxDistance
}

// Scanner holds the Sift4 parameters. MaxOffset <= 0 selects
// DefaultMaxOffset; MaxDistance 0 means unbounded.
type Scanner struct {
	MaxOffset   int
	MaxDistance int
}

// Distance is the package-level form of Scanner.Distance.
func Distance(src, tar string, maxOffset, maxDistance int) int {
	return Scanner{MaxOffset: maxOffset, MaxDistance: maxDistance}.Distance(src, tar)
}

// Distance returns the Sift4 extended distance.
func (s Scanner) Distance(src, tar string) int {
	d, _ := s.Measure(src, tar)
	return d
}

// Dist normalizes Distance by the longer input; two empty strings are at 0.
func (s Scanner) Dist(src, tar string) float64 {
	longest := max(len([]rune(src)), len([]rune(tar)))
	if longest == 0 {
		return 0
	}
	return float64(s.Distance(src, tar)) / float64(longest)
}

// Sim is 1 - Dist.
func (s Scanner) Sim(src, tar string) float64 {
	return 1 - s.Dist(src, tar)
}

// offset records where a common rune was matched.
type offset struct {
	src, tar int
	trans    bool
}

// Measure returns the distance together with scan statistics.
func (s Scanner) Measure(src, tar string) (int, Stats) {
	a, b := []rune(src), []rune(tar)
	if len(a) == 0 {
		return len(b), Stats{}
	}
	if len(b) == 0 {
		return len(a), Stats{}
	}

	maxOffset := s.MaxOffset
	if maxOffset <= 0 {
		maxOffset = DefaultMaxOffset
	}

	var (
		st      Stats
		sc, tc  int
		lcss    int // committed common runes
		local   int // current run of common runes
		trans   int
		offsets []offset
	)

	for sc < len(a) && tc < len(b) {
		st.Comparisons++
		if a[sc] == b[tc] {
			local++
			isTrans := false
			for i := 0; i < len(offsets); {
				ofs := &offsets[i]
				if sc <= ofs.src || tc <= ofs.tar {
					// an earlier match crosses this one
					isTrans = abs(tc-sc) >= abs(ofs.tar-ofs.src)
					if isTrans {
						trans++
					} else if !ofs.trans {
						ofs.trans = true
						trans++
					}
					break
				} else if sc > ofs.tar && tc > ofs.src {
					offsets = append(offsets[:i], offsets[i+1:]...)
				} else {
					i++
				}
			}
			offsets = append(offsets, offset{src: sc, tar: tc, trans: isTrans})
		} else {
			lcss += local
			local = 0
			if sc != tc {
				sc = min(sc, tc)
				tc = sc
			}
			// cursors are left one short; the increment below lands them
			for i := 0; i < maxOffset; i++ {
				if sc+i >= len(a) && tc+i >= len(b) {
					break
				}
				if sc+i < len(a) {
					st.Comparisons++
					if a[sc+i] == b[tc] {
						sc += i - 1
						tc--
						break
					}
				}
				if tc+i < len(b) {
					st.Comparisons++
					if a[sc] == b[tc+i] {
						sc--
						tc += i - 1
						break
					}
				}
			}
		}

		sc++
		tc++

		if s.MaxDistance > 0 {
			estimate := max(sc, tc) - (lcss + local) + trans
			if estimate >= s.MaxDistance {
				st.EarlyExit = true
				return estimate, st
			}
		}

		if sc >= len(a) || tc >= len(b) {
			lcss += local
			local = 0
			sc = min(sc, tc)
			tc = sc
		}
	}

	lcss += local
	return max(len(a), len(b)) - lcss + trans, st
}

// Simplest is the plain Sift4 variant without transposition tracking or a
// distance bound.
func Simplest(src, tar string, maxOffset int) int {
	a, b := []rune(src), []rune(tar)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if maxOffset <= 0 {
		maxOffset = DefaultMaxOffset
	}

	var sc, tc, lcss, local int
	for sc < len(a) && tc < len(b) {
		if a[sc] == b[tc] {
			local++
		} else {
			lcss += local
			local = 0
			if sc != tc {
				sc = max(sc, tc)
				tc = sc
			}
			for i := 0; i < maxOffset; i++ {
				if sc+i >= len(a) && tc+i >= len(b) {
					break
				}
				// realignment can push either cursor past its end
				if sc+i < len(a) && tc < len(b) && a[sc+i] == b[tc] {
					sc += i
					local++
					break
				}
				if tc+i < len(b) && sc < len(a) && a[sc] == b[tc+i] {
					tc += i
					local++
					break
				}
			}
		}
		sc++
		tc++
	}
	lcss += local
	return max(len(a), len(b)) - lcss
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
