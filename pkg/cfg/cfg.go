package cfg

// Eps is the general tolerance for coordinate comparisons.
const Eps = 0.0001

// EpsCoarse is used where accumulated rounding makes Eps too strict,
// e.g. the rest-area search.
const EpsCoarse = 0.001

// MinBorderMM is the distance from a sheet edge below which a linear cut
// parallel to that edge is dropped. It is converted to file units before use.
const MinBorderMM = 2.0

// MinContinuity is the largest gap between two shape segments that still
// counts as a continuous tool-down run.
const MinContinuity = 0.0001

// DefaultLinearAdvanceMM is applied when a pattern has no positive LinearAdvance.
const DefaultLinearAdvanceMM = 1.0

// MinPositiveRotation replaces near-zero rotations in tangent mode, which
// the controller rejects.
const MinPositiveRotation = 0.001

// DefaultContinuityAngle is the minimum tangent discontinuity (degrees)
// that splits a shape macro into separate runs. A schema MinAngle can only raise it.
const DefaultContinuityAngle = 15.0

const (
	MMPerInch       = 25.4
	MMPerTenthsInch = 30.303
)

// Tool codes.
const (
	DefaultLinearTool = 3
	DefaultShapedTool = 31

	// ToolTypeShaped is the shape-geometry tool type (C=1) handled by the shaped tool.
	ToolTypeShaped = 1

	// MaxToolTypes bounds the per-shape tool usage table.
	MaxToolTypes = 10
)

// Version is written into the generated program header.
var Version = "0.1.0"

// Creator is written into the generated program header.
var Creator = "otdconvert"
