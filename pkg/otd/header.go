package otd

import (
	"strings"

	"otdconvert/pkg/model"
)

type header struct {
	version string
	unit    model.Unit
	date    string
}

func parseHeader(lines []string) header {
	var h header
	for _, line := range content(lines) {
		key, value, ok := keyValue(line)
		if !ok {
			continue
		}
		switch key {
		case "OTDCutVersion", "AWCutVersion":
			h.version = value
		case "Dimension":
			h.unit, _ = model.ParseUnit(value)
		case "Date":
			h.date = value
		}
	}
	return h
}

func parseSignature(lines []string) (creator string) {
	for _, line := range content(lines) {
		if key, value, ok := keyValue(line); ok && key == "Creator" {
			creator = value
		}
	}
	return creator
}

// isCoordinateStart reports whether line opens the coordinate block of a
// pattern.
func isCoordinateStart(line string) bool {
	return strings.HasPrefix(line, "X=") || strings.HasPrefix(line, "Y=") || strings.HasPrefix(line, "Z=")
}

// parsePatternHeader fills s from the Key=Value lines of a [Pattern] section
// that precede its coordinate block. Values that fail to parse are ignored.
func parsePatternHeader(s *model.Schema, lines []string) {
	for _, line := range content(lines) {
		if isCoordinateStart(line) {
			break
		}
		key, value, ok := keyValue(line)
		if !ok {
			continue
		}

		setString := func(dst *string) { *dst = value }
		setFloat := func(dst *float64) {
			if v, ok := parseFloat(value); ok {
				*dst = v
			}
		}
		setInt := func(dst *int) {
			if v, ok := parseInt(value); ok {
				*dst = v
			}
		}
		setFlag := func(dst *bool) {
			if v, ok := parseInt(value); ok {
				*dst = v == 1
			}
		}

		switch key {
		case "MachineName":
			setString(&s.MachineName)
		case "MachineNumber":
			setInt(&s.MachineNumber)
		case "GlassID":
			setString(&s.GlassID)
		case "GlassDescription":
			setString(&s.GlassDescription)
		case "GlassThickness":
			setFloat(&s.Thickness)
		case "GlassStructured":
			setFlag(&s.GlassStructured)
		case "GlassCoated":
			setFlag(&s.GlassCoated)
		case "Width":
			setFloat(&s.Width)
		case "Height":
			setFloat(&s.Height)
		case "TrimLeft":
			setFloat(&s.TrimLeft)
		case "TrimBottom":
			setFloat(&s.TrimBottom)
		case "Pieces":
			if v, ok := parseInt(value); ok {
				s.Quantity = max(v, 1)
			}
		case "CuttingOrder":
			setInt(&s.CuttingOrder)
		case "LinearAdvance":
			setFloat(&s.LinearAdvance)
		case "MinAngle":
			setFloat(&s.MinAngle)
		case "CoatingMinAngle":
			setFloat(&s.CoatingMinAngle)
		case "LinearToolCode":
			setInt(&s.LinearTool)
		case "ToolCode1":
			setInt(&s.ShapedTool)
		case "ToolCode2":
			setInt(&s.IncisionTool)
		case "ToolCode6":
			setInt(&s.OpenShapedTool)
		case "ShapeOptimization":
			setFlag(&s.OptimizeShapeOrder)
		}
	}
}
