package graph

const (
	// Link weight constants
	defaultLinkWeight   = 1.0 // Initial weight for new links
	linkWeightIncrement = 0.5 // Weight increase when the same edge recurs

	// Node type names
	NodeTypePrime     = "prime"
	NodeTypeComposite = "composite"

	// Display labels longer than this are abbreviated (large powers
	// produce values with hundreds of digits)
	maxLabelDigits = 12
)
