// Package validate checks parsed schemas for problems that would make the
// generated program wrong or unsafe to run.
package validate

import (
	"fmt"
	"strings"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/errcode"
	"otdconvert/pkg/float"
	"otdconvert/pkg/model"
	"otdconvert/pkg/transform"
)

// Result collects findings. Warnings never fail a validation; any error does.
type Result struct {
	Passed   bool
	Warnings []string
	Errors   []string
}

func NewResult() *Result {
	return &Result{Passed: true}
}

func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) Fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Passed = false
}

// Merge appends other's findings to r.
func (r *Result) Merge(other *Result) {
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Errors = append(r.Errors, other.Errors...)
	if !other.Passed {
		r.Passed = false
	}
}

// Schemas validates every schema, numbering them from 1. An empty list is an
// error rather than a failed result.
func Schemas(schemas []*model.Schema) (*Result, error) {
	if len(schemas) == 0 {
		return nil, errcode.NewNoPatternSection()
	}
	r := NewResult()
	for i, s := range schemas {
		r.Merge(Schema(s, i+1))
	}
	return r, nil
}

// Schema validates one schema. n is its 1-based number in messages.
func Schema(s *model.Schema, n int) *Result {
	r := NewResult()
	f := float.Format

	if s.Width <= 0 || s.Height <= 0 {
		r.Fail("Schema %d: Invalid sheet dimensions (%sx%s)", n, f(s.Width), f(s.Height))
	}
	if s.Thickness <= 0 {
		r.Warn("Schema %d: Missing or zero thickness", n)
	}

	for i, p := range s.Pieces {
		if p.Width <= 0 || p.Height <= 0 {
			r.Fail("Schema %d, Piece %d: Invalid dimensions (%sx%s)", n, i+1, f(p.Width), f(p.Height))
		}
		if p.X < 0 || p.Y < 0 || p.XMax() > s.Width+cfg.Eps || p.YMax() > s.Height+cfg.Eps {
			r.Warn("Schema %d, Piece %d: Extends beyond sheet bounds", n, i+1)
		}
		if p.ShapeID != nil && s.FindShape(*p.ShapeID) < 0 {
			r.Fail("Schema %d, Piece %d: Shape %d not found", n, i+1, *p.ShapeID)
		}
		if p.InfoID != nil && s.FindPieceType(*p.InfoID) < 0 {
			r.Fail("Schema %d, Piece %d: Info %d not found", n, i+1, *p.InfoID)
		}
	}

	for _, sh := range s.Shapes {
		if len(sh.Cuts) == 0 {
			r.Warn("Schema %d, Shape %d: No cuts defined", n, sh.ID)
		}
		if !sh.Open && !sh.IsClosed() {
			r.Warn("Schema %d, Shape %d: Shape is not closed", n, sh.ID)
		}
		for k, c := range sh.Cuts {
			if !c.IsArc() {
				continue
			}
			chord := c.Start().Distance(c.End())
			if c.Radius < chord/2-cfg.Eps {
				r.Fail("Schema %d, Shape %d, Cut %d: Arc radius %s is too small for chord length %s",
					n, sh.ID, k+1, f(c.Radius), f(chord))
			}
		}
	}

	for _, id := range transform.ShapeSizeMismatches(s) {
		r.Fail("Schema %d: Shape %d is used on pieces of different sizes", n, id)
	}

	if len(s.LinearCuts) == 0 && len(s.Shapes) == 0 {
		r.Warn("Schema %d: No cuts or shapes defined", n)
	}
	return r
}

// HasCuts reports whether s has any active linear cut or any shape with cuts.
func HasCuts(s *model.Schema) bool {
	for _, c := range s.LinearCuts {
		if c.Active {
			return true
		}
	}
	for _, sh := range s.Shapes {
		if len(sh.Cuts) > 0 {
			return true
		}
	}
	return false
}

// Overlap is a pair of piece indices, I < J.
type Overlap struct {
	I, J int
}

// PieceOverlaps returns every pair of pieces whose areas overlap. Pieces that
// only share an edge do not overlap.
func PieceOverlaps(s *model.Schema) []Overlap {
	var out []Overlap
	for i := range s.Pieces {
		for j := i + 1; j < len(s.Pieces); j++ {
			if s.Pieces[i].Bounds().Overlaps(s.Pieces[j].Bounds()) {
				out = append(out, Overlap{i, j})
			}
		}
	}
	return out
}

// Quick validates schemas and turns a failed result into a ParseError joining
// every error message.
func Quick(schemas []*model.Schema) error {
	r, err := Schemas(schemas)
	if err != nil {
		return err
	}
	if !r.Passed {
		return errcode.NewParseError(0, strings.Join(r.Errors, "; "))
	}
	return nil
}
