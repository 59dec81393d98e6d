package mutate

import "fmt"

// Stats counts what an engine has done so far.
type Stats struct {
	Rounds     int   // completed rounds
	Growths    int   // rounds that actually inserted bytes
	Emitted    int64 // bytes written to the sink
	Considered int64 // byte positions that got a percent roll
	Replaced   int64 // positions whose roll hit
	Changed    int64 // replaced positions whose value differs from before
}

// ReplaceRate is Replaced / Considered, or 0 before any byte was considered.
func (s Stats) ReplaceRate() float64 {
	if s.Considered == 0 {
		return 0
	}

	return float64(s.Replaced) / float64(s.Considered)
}

// String formats the stats as a single key=value line.
func (s Stats) String() string {
	return fmt.Sprintf(
		"rounds=%d growths=%d emitted=%d considered=%d replaced=%d changed=%d rate=%.4f",
		s.Rounds, s.Growths, s.Emitted, s.Considered, s.Replaced, s.Changed, s.ReplaceRate(),
	)
}
