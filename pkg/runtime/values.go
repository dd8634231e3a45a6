package runtime

import (
	"fmt"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/diagnostics"
)

// MaxArrayCells caps the storage a single array declaration may allocate.
const MaxArrayCells = 1 << 24

// ArrayValue is the storage behind an ARRAY binding. Cells are kept in
// row-major order; a nil cell has never been written.
type ArrayValue struct {
	Element ast.PrimitiveType
	Ranges  []diagnostics.Range
	cells   []ast.Value
}

// CreateArray allocates unset storage sized upper-lower+1 per dimension.
func CreateArray(element ast.PrimitiveType, ranges []diagnostics.Range) (*ArrayValue, error) {
	if len(ranges) == 0 {
		return nil, diagnostics.Errorf(diagnostics.KindAssignment, "array needs at least one dimension")
	}
	total := int64(1)
	for _, r := range ranges {
		if r.Upper < r.Lower {
			return nil, diagnostics.Errorf(diagnostics.KindAssignment, "array bounds [%s] have upper bound below lower bound", r)
		}
		// The span is computed unsigned so bounds at the int64 limits cannot wrap.
		if span := uint64(r.Upper) - uint64(r.Lower); span >= MaxArrayCells {
			return nil, tooManyCells()
		}
		size := r.Size()
		if total > MaxArrayCells/size {
			return nil, tooManyCells()
		}
		total *= size
	}
	return &ArrayValue{
		Element: element,
		Ranges:  append([]diagnostics.Range(nil), ranges...),
		cells:   make([]ast.Value, total),
	}, nil
}

func tooManyCells() error {
	return diagnostics.Errorf(diagnostics.KindAssignment, "array of more than %d cells", MaxArrayCells)
}

// Len is the total number of cells across all dimensions.
func (a *ArrayValue) Len() int { return len(a.cells) }

// Clone returns an independent copy of the storage.
func (a *ArrayValue) Clone() *ArrayValue {
	return &ArrayValue{
		Element: a.Element,
		Ranges:  append([]diagnostics.Range(nil), a.Ranges...),
		cells:   append([]ast.Value(nil), a.cells...),
	}
}

func (a *ArrayValue) String() string {
	return fmt.Sprintf("ARRAY%v OF %s", a.Ranges, a.Element)
}

// offset maps declared indices to a cell position.
func (a *ArrayValue) offset(name string, indices []int64) (int, error) {
	if len(indices) != len(a.Ranges) {
		return 0, diagnostics.IndexError(name, indices, a.Ranges,
			fmt.Sprintf("expected %d indices, got %d", len(a.Ranges), len(indices)))
	}
	off := int64(0)
	for i, idx := range indices {
		r := a.Ranges[i]
		if !r.Contains(idx) {
			return 0, diagnostics.IndexError(name, indices, a.Ranges, "")
		}
		off = off*r.Size() + (idx - r.Lower)
	}
	return int(off), nil
}

// Get reads a cell; reading a never-written cell is an error naming it.
func (a *ArrayValue) Get(name string, indices []int64) (ast.Value, error) {
	off, err := a.offset(name, indices)
	if err != nil {
		return nil, err
	}
	v := a.cells[off]
	if v == nil {
		return nil, diagnostics.Undefined(cellName(name, indices))
	}
	return v, nil
}

func (a *ArrayValue) Set(name string, indices []int64, value ast.Value) error {
	off, err := a.offset(name, indices)
	if err != nil {
		return err
	}
	a.cells[off] = value
	return nil
}

func cellName(name string, indices []int64) string {
	s := name
	for _, idx := range indices {
		s += fmt.Sprintf("[%d]", idx)
	}
	return s
}
