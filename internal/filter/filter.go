// Package filter provides the --where row predicate using expr-lang/expr.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/couchcryptid/hurdat2-etl/internal/domain"
)

// Row is the expression environment: one normalized observation flattened
// into filterable fields. Unrecorded numeric values appear as 0 and the
// category as "", so expressions like `wind > 0` can select recorded rows.
type Row struct {
	StormID  string  `expr:"storm_id"`
	Basin    string  `expr:"basin"`
	Name     string  `expr:"name"`
	Year     int     `expr:"year"`
	Month    int     `expr:"month"`
	Status   string  `expr:"status"`
	Record   string  `expr:"record"`
	Lat      float64 `expr:"lat"`
	Lon      float64 `expr:"lon"`
	Wind     int     `expr:"wind"`
	Pressure int     `expr:"pressure"`
	Category string  `expr:"category"`
}

// Filter is a compiled boolean row predicate.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile compiles an expression such as `basin == "AL" && wind >= 96`
// against the Row environment. The expression must evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.Env(Row{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

// Match evaluates the predicate against one observation.
func (f *Filter) Match(obs domain.Observation) (bool, error) {
	out, err := expr.Run(f.program, rowEnv(obs))
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.source, err)
	}
	return out.(bool), nil
}

// String returns the original expression source.
func (f *Filter) String() string {
	return f.source
}

func rowEnv(obs domain.Observation) Row {
	row := Row{
		StormID: obs.StormID,
		Basin:   obs.Basin,
		Name:    obs.Name,
		Year:    obs.Year,
		Month:   int(obs.ObservedAt.Month()),
		Status:  obs.Status,
		Record:  obs.RecordIdentifier,
		Lat:     obs.Latitude,
		Lon:     obs.Longitude,
	}
	if obs.MaxWindKts != nil {
		row.Wind = *obs.MaxWindKts
	}
	if obs.MinPressureMb != nil {
		row.Pressure = *obs.MinPressureMb
	}
	if obs.Category != nil {
		row.Category = *obs.Category
	}
	return row
}
