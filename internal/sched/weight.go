package sched

// Nice range and the weight of a nice-0 task. Vruntime charging is
// normalized against BaselineWeight so a nice-0 task accrues virtual
// time at wall rate.
const (
	NiceMin        = -20
	NiceMax        = 19
	BaselineWeight = 1024
)

// niceWeights maps nice NiceMin..NiceMax to scheduling weight. Each
// step is roughly a 1.25x change, so one nice level shifts a task's
// CPU share by about 10%.
var niceWeights = [NiceMax - NiceMin + 1]int64{
	88761, 71755, 56483, 46273, 36291, // -20 .. -16
	29154, 23254, 18705, 14949, 11916, // -15 .. -11
	9548, 7620, 6100, 4904, 3906, // -10 .. -6
	3121, 2501, 1991, 1586, 1277, //  -5 .. -1
	1024, 820, 655, 526, 423, //   0 ..  4
	335, 272, 215, 172, 137, //   5 ..  9
	110, 87, 70, 56, 45, //  10 .. 14
	36, 29, 23, 18, 15, //  15 .. 19
}

// WeightOf returns the scheduling weight for a nice value. Out-of-range
// values saturate at the table ends.
func WeightOf(nice int) int64 {
	if nice < NiceMin {
		nice = NiceMin
	} else if nice > NiceMax {
		nice = NiceMax
	}
	return niceWeights[nice-NiceMin]
}
