package constant

// Timeline geometry shared by the engine and its presentation layers.
const (
	// MinZoom and MaxZoom bound the timeline scale in pixels per second.
	MinZoom = 20
	MaxZoom = 240

	// DefaultZoom is the initial timeline scale in pixels per second.
	DefaultZoom = 80
)

// ProjectExtension is the file suffix used for saved timelines.
const ProjectExtension = ".cfp"
