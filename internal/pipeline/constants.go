package pipeline

// Buffer sizing
const (
	defaultCapacity    = 1024 // Initial capacity when none is requested
	bufferGrowthFactor = 2    // Factor for buffer growth

	// A consumed prefix is reclaimed once it is at least this large and
	// makes up at least half of the backing array.
	compactThreshold = 4096
)
