package classroom

import "github.com/h64/homework-cloner/status"

// Stats ...
var (
	Stats            = status.NewSection("classroom")
	FetchedPulls     = Stats.Counter("FetchedPulls")
	CloneSuccessRate = Stats.Ratio("CloneSuccessRate")
	SkipRatio        = Stats.Ratio("SkipRatio")
)
