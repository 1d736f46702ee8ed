// Package otd reads OTD cutting layouts, and their encrypted OTX form, into
// schemas.
package otd

import (
	"os"
	"path/filepath"
	"strings"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/errcode"
	"otdconvert/pkg/model"
)

// ParseFile reads and parses the layout at path. Files with an .otx
// extension, in any case, are decrypted first.
func ParseFile(path string) ([]*model.Schema, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errcode.NewFileNotFound(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errcode.NewFileNotFound(path, err)
	}

	text := string(data)
	if strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), "otx") {
		text, err = DecryptOTX(data)
		if err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, errcode.NewEmptyFile(path)
	}
	return Parse(text)
}

// Parse builds one schema per [Pattern] section of an OTD document.
func Parse(text string) ([]*model.Schema, error) {
	sections := findSections(splitLines(text))

	var patterns []int
	for i, sec := range sections {
		if sec.name == "Pattern" {
			patterns = append(patterns, i)
		}
	}
	if len(patterns) == 0 {
		return nil, errcode.NewNoPatternSection()
	}

	var h header
	var creator string
	if sec, ok := first(sections, "Header"); ok {
		h = parseHeader(sec.lines)
	}
	if sec, ok := first(sections, "Signature"); ok {
		creator = parseSignature(sec.lines)
	}

	schemas := make([]*model.Schema, 0, len(patterns))
	for k, idx := range patterns {
		s := model.NewSchema()
		s.Version = h.version
		s.Unit = h.unit
		s.Date = h.date
		s.Creator = creator

		pattern := sections[idx]
		parsePatternHeader(s, pattern.lines)
		if s.LinearAdvance <= 0 {
			s.LinearAdvance = cfg.DefaultLinearAdvanceMM / s.Unit.ToMM()
		}
		s.LinearCuts, s.Pieces = buildLayout(s, parseCoordinates(pattern.lines))

		// Sections up to the next pattern belong to this one.
		end := len(sections)
		if k+1 < len(patterns) {
			end = patterns[k+1]
		}
		for _, sec := range sections[idx+1 : end] {
			applySection(s, sec)
		}

		s.ResolveReferences()
		s.ComputeEdges()
		schemas = append(schemas, s)
	}
	return schemas, nil
}

func applySection(s *model.Schema, sec section) {
	switch sec.name {
	case "Info":
		if t, ok := parseInfo(sec.lines); ok {
			s.PieceTypes = append(s.PieceTypes, t)
		}
	case "Shape":
		if shape, ok := parseShape(sec.lines); ok {
			s.Shapes = append(s.Shapes, shape)
		}
	case "Cuttings":
		cuts, pieces := parseCuttings(sec.lines)
		if len(cuts) > 0 {
			s.LinearCuts = cuts
			s.LinearOptimized = true
		}
		if len(pieces) > 0 {
			s.Pieces = pieces
			s.OptimizeShapeOrder = false
		}
	case "LowE":
		s.LowECuts, s.LowEPieces = parseCuttings(sec.lines)
	}
}

func first(sections []section, name string) (section, bool) {
	for _, sec := range sections {
		if sec.name == name {
			return sec, true
		}
	}
	return section{}, false
}
