package calendar

// window is an inclusive pair of offsets from the first year of a block.
type window struct {
	from, to int
}

// Offsets differ by era: AD blocks count forward from year 1 so "mid" starts
// 29 years in, while BC and BP blocks count from their far end.
var (
	centuryForward = map[Precision]window{
		PrecisionHalf1:    {0, 49},
		PrecisionHalf2:    {49, 99},
		PrecisionEarly:    {0, 39},
		PrecisionMid:      {29, 69},
		PrecisionLate:     {59, 99},
		PrecisionThird1:   {0, 33},
		PrecisionThird2:   {33, 66},
		PrecisionThird3:   {66, 99},
		PrecisionQuarter1: {0, 24},
		PrecisionQuarter2: {24, 49},
		PrecisionQuarter3: {49, 74},
		PrecisionQuarter4: {74, 99},
	}
	centuryBackward = map[Precision]window{
		PrecisionHalf1:    {0, 50},
		PrecisionHalf2:    {50, 99},
		PrecisionEarly:    {0, 40},
		PrecisionMid:      {30, 70},
		PrecisionLate:     {60, 99},
		PrecisionThird1:   {0, 33},
		PrecisionThird2:   {33, 66},
		PrecisionThird3:   {66, 99},
		PrecisionQuarter1: {0, 25},
		PrecisionQuarter2: {25, 50},
		PrecisionQuarter3: {50, 75},
		PrecisionQuarter4: {75, 99},
	}
	millenniumForward = map[Precision]window{
		PrecisionHalf1:    {0, 499},
		PrecisionHalf2:    {499, 999},
		PrecisionEarly:    {0, 399},
		PrecisionMid:      {299, 699},
		PrecisionLate:     {599, 999},
		PrecisionThird1:   {0, 333},
		PrecisionThird2:   {333, 666},
		PrecisionThird3:   {666, 999},
		PrecisionQuarter1: {0, 249},
		PrecisionQuarter2: {249, 499},
		PrecisionQuarter3: {499, 749},
		PrecisionQuarter4: {749, 999},
	}
	millenniumBackward = map[Precision]window{
		PrecisionHalf1:    {0, 500},
		PrecisionHalf2:    {500, 999},
		PrecisionEarly:    {0, 400},
		PrecisionMid:      {300, 700},
		PrecisionLate:     {600, 999},
		PrecisionThird1:   {0, 333},
		PrecisionThird2:   {333, 666},
		PrecisionThird3:   {666, 999},
		PrecisionQuarter1: {0, 250},
		PrecisionQuarter2: {250, 500},
		PrecisionQuarter3: {500, 750},
		PrecisionQuarter4: {750, 999},
	}
)

func windowFor(size int, p Precision, era Era) window {
	table := centuryForward
	switch {
	case size == 1000 && (era == EraBC || era == EraBP):
		table = millenniumBackward
	case size == 1000:
		table = millenniumForward
	case era == EraBC || era == EraBP:
		table = centuryBackward
	}

	switch p {
	case PrecisionEarlyMid:
		return window{table[PrecisionEarly].from, table[PrecisionMid].to}
	case PrecisionMidLate:
		return window{table[PrecisionMid].from, table[PrecisionLate].to}
	}
	if w, ok := table[p]; ok {
		return w
	}
	return window{0, size - 1}
}
