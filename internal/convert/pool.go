package convert

// Worker pool bounds. Workers wait on converter subprocesses, so the default
// is the upper bound rather than a share of the CPUs.
const (
	MinWorkers     = 1
	MaxWorkers     = 8
	DefaultWorkers = MaxWorkers
)

// ResolvePoolSize clamps workers to [MinWorkers, MaxWorkers]. Zero or a
// negative value selects DefaultWorkers.
func ResolvePoolSize(workers int) int {
	switch {
	case workers <= 0:
		return DefaultWorkers
	case workers > MaxWorkers:
		return MaxWorkers
	default:
		return workers
	}
}
