package sink

// Colors shared by the SVG and PNG sinks.
const (
	colorBackground = "#ffffff"
	colorLeafFill   = "#f5f7fa"
	colorLeafStroke = "#7b8794"
	colorGroupFill  = "#e6f0ff"
	colorGroupStrk  = "#3e6bbf"
	colorEdge       = "#52606d"
	colorRerouted   = "#3e6bbf"
	colorHalo       = "#ffffff"
	colorChipFill   = "#ffffff"
	colorChipStroke = "#cbd2d9"
	colorPortIn     = "#2f9e44"
	colorPortOut    = "#e8590c"
	colorBandEven   = "#f8f9fb"
	colorBandOdd    = "#eef1f5"
	colorBandText   = "#9aa5b1"
)

const (
	cornerRadius = 6.0
	chipRadius   = 4.0
	edgeWidth    = 1.5
	haloWidth    = 6.0
)
