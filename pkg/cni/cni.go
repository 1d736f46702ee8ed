// Package cni writes the CNI program read by the cutting table: a sequence of
// bracketed sections holding the machine parameters, the G-code contour
// program, per-sheet piece lists and DXF previews.
package cni

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/dxf"
	"otdconvert/pkg/errcode"
	"otdconvert/pkg/gcode"
	"otdconvert/pkg/model"
)

// Generate writes the CNI document for schemas. filename is the name of the
// layout file the schemas were read from; it is written into the comment and
// piece list sections.
func Generate(schemas []*model.Schema, filename string, m cfg.MachineConfig) (string, error) {
	if len(schemas) == 0 {
		return "", errcode.NewNoPatternSection()
	}

	var out strings.Builder
	writeComment(&out, schemas, filename)

	out.WriteString("[CENTRO01]\n\n")

	writeParameters(&out, schemas[0], m)
	writeTools(&out, schemas, m)

	out.WriteString("[LAVORAZIONI01]\n%\n\n")

	out.WriteString("[CONTORNATURA01]\n")
	out.WriteString(contourProgram(schemas, m))
	out.WriteString("\n")

	writeDistributions(&out, schemas, filename)

	for i, s := range schemas {
		fmt.Fprintf(&out, "[*PRWB%04d_01]\n", i+1)
		out.WriteString(dxf.Draw(s, dxf.Normal()))
		fmt.Fprintf(&out, "[*PRWC%04d_01]\n", i+1)
		out.WriteString(dxf.Draw(s, dxf.Mirrored(s.Width)))
	}

	return out.String(), nil
}

func writeComment(out *strings.Builder, schemas []*model.Schema, filename string) {
	out.WriteString("[COMMENTO]\n")
	fmt.Fprintf(out, "; Project: %s\n", filename)
	fmt.Fprintf(out, "; Material : %s\n", schemas[0].GlassID)
	fmt.Fprintf(out, "; Creator: %s\n", cfg.Creator)
	fmt.Fprintf(out, "; Version: %s\n", cfg.Version)
	out.WriteString("\n")
}

// writeParameters writes the sheet of the first schema, which sets up the table.
func writeParameters(out *strings.Builder, s *model.Schema, m cfg.MachineConfig) {
	out.WriteString("[PARAMETRI01]\n")
	fmt.Fprintf(out, "N10 %s LX=%s LY=%s LZ=%s P103=%d\n",
		s.Unit.GCode(),
		gcode.FormatCoord(s.Width),
		gcode.FormatCoord(s.Height),
		gcode.FormatCoord(s.Thickness),
		m.Number)
	out.WriteString("%\n\n")
}

func writeTools(out *strings.Builder, schemas []*model.Schema, m cfg.MachineConfig) {
	out.WriteString("[UTENSILI01]\n")
	var tools []int
	for _, s := range schemas {
		if len(s.LinearCuts) > 0 {
			tools = append(tools, orDefault(s.LinearTool, linearTool(m)))
		}
		if usesShapedTool(s) {
			tools = append(tools, orDefault(s.ShapedTool, shapedTool(m)))
		}
	}
	slices.Sort(tools)
	for _, t := range slices.Compact(tools) {
		fmt.Fprintf(out, "%04d\n", t)
	}
	out.WriteString("%\n\n")
}

// writeDistributions writes one piece list per schema: the sheet, then each
// distinct positive non-waste piece code once, with the number of pieces
// carrying it.
func writeDistributions(out *strings.Builder, schemas []*model.Schema, filename string) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "output"
	}

	for i, s := range schemas {
		fmt.Fprintf(out, "[*LDIST%04d_01]\n", i+1)
		fmt.Fprintf(out, ";Cod=%s%d\n", base, i+1)
		fmt.Fprintf(out, ";DimX=%s\n", gcode.FormatCoord(s.Width))
		fmt.Fprintf(out, ";DimY=%s\n", gcode.FormatCoord(s.Height))
		fmt.Fprintf(out, ";Spes=%s\n", gcode.FormatCoord(s.Thickness))
		fmt.Fprintf(out, ";Qta=%d\n", s.Quantity)
		fmt.Fprintf(out, ";TipoVetro=%s\n", s.GlassID)

		seen := map[int]bool{}
		for _, p := range s.Pieces {
			t, ok := s.PieceType(p)
			if !ok || t.PieceCode <= 0 || t.Waste || seen[t.PieceCode] {
				continue
			}
			seen[t.PieceCode] = true

			name := ""
			if shape, ok := s.Shape(p); ok {
				name = shape.Name
			}
			fmt.Fprintf(out, ";NomeSagoma=%s\n", name)
			fmt.Fprintf(out, ";CodPz=%d\n", t.PieceCode)
			fmt.Fprintf(out, ";DimXPz=%s\n", gcode.FormatCoord(p.Width))
			fmt.Fprintf(out, ";DimYPz=%s\n", gcode.FormatCoord(p.Height))
			fmt.Fprintf(out, ";QtaPz=%d\n", countPieceCode(s, t.PieceCode))
			fmt.Fprintf(out, ";ClientePz=%s\n", t.Customer)
			fmt.Fprintf(out, ";OrdinePz=%s\n", t.OrderNo)
		}
		out.WriteString("%\n")
	}
	out.WriteString("\n")
}

func countPieceCode(s *model.Schema, code int) int {
	n := 0
	for _, p := range s.Pieces {
		if t, ok := s.PieceType(p); ok && t.PieceCode == code {
			n++
		}
	}
	return n
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func linearTool(m cfg.MachineConfig) int {
	return orDefault(m.LinearTool, cfg.DefaultLinearTool)
}

func shapedTool(m cfg.MachineConfig) int {
	return orDefault(m.ShapedTool, cfg.DefaultShapedTool)
}

func usesShapedTool(s *model.Schema) bool {
	for _, shape := range s.Shapes {
		if shape.UsesTool(cfg.ToolTypeShaped) {
			return true
		}
	}
	return false
}
