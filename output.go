/*
Copyright © 2026 the EnergyMet authors.
This file is part of EnergyMet.

EnergyMet is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

EnergyMet is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with EnergyMet.  If not, see <http://www.gnu.org/licenses/>.
*/

package energymet

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/Knetic/govaluate"
)

// Outputter computes user-requested output variables and writes them as
// CSV time series.
//
// outputVariables maps output column names to expressions defining how
// they are calculated from the pipeline series (for example
// {"Demand": "Demand", "Anomaly": "Demand - 100"}). Expressions are
// evaluated independently at each time step with the pipeline series
// values as scalar variables, and can use the functions in
// outputFunctions.
type Outputter struct {
	fileName        string
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
}

// NewOutputter initializes a new Outputter and adds a set of default
// output functions: 'exp(x)', 'abs(x)', 'min(x, y)', and 'max(x, y)'.
// Additional functions may be supplied in outputFunctions.
func NewOutputter(fileName string, outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("energymet: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
		"abs": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("energymet: got %d arguments for function 'abs', but needs 1", len(arg))
			}
			return math.Abs(arg[0].(float64)), nil
		},
		"min": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 2 {
				return nil, fmt.Errorf("energymet: got %d arguments for function 'min', but needs 2", len(arg))
			}
			return math.Min(arg[0].(float64), arg[1].(float64)), nil
		},
		"max": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 2 {
				return nil, fmt.Errorf("energymet: got %d arguments for function 'max', but needs 2", len(arg))
			}
			return math.Max(arg[0].(float64), arg[1].(float64)), nil
		},
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}
	if len(outputVariables) == 0 {
		return nil, fmt.Errorf("energymet: there are no variables specified for output; " +
			"fill in the OutputVariables configuration and try again")
	}
	o := &Outputter{
		fileName:        fileName,
		outputVariables: outputVariables,
		outputFunctions: defaultOutputFuncs,
	}
	return o, nil
}

// Results evaluates the output expressions against the given pipeline
// series. All series must have the same length; expressions referring to
// a variable that is not among the series fail.
func (o *Outputter) Results(series map[string][]float64) (map[string][]float64, error) {
	nt := -1
	for name, s := range series {
		if nt == -1 {
			nt = len(s)
		} else if len(s) != nt {
			return nil, fmt.Errorf("energymet: output series %s has %d steps; want %d", name, len(s), nt)
		}
	}
	results := make(map[string][]float64, len(o.outputVariables))
	for name, exprStr := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(exprStr, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("energymet: output variable %s: %v", name, err)
		}
		for _, v := range expression.Vars() {
			if _, ok := series[v]; !ok {
				return nil, fmt.Errorf("energymet: output variable %s: undefined variable name '%s'", name, v)
			}
		}
		out := make([]float64, nt)
		params := make(map[string]interface{}, len(series))
		for i := 0; i < nt; i++ {
			for v, s := range series {
				params[v] = s[i]
			}
			result, err := expression.Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("energymet: evaluating output variable %s at step %d: %v", name, i, err)
			}
			val, ok := result.(float64)
			if !ok {
				return nil, fmt.Errorf("energymet: output variable %s evaluates to %T; want float64", name, result)
			}
			out[i] = val
		}
		results[name] = out
	}
	return results, nil
}

// Output evaluates the output expressions and writes the results to the
// Outputter's file as CSV, with a step-index column followed by one
// column per output variable in sorted name order.
func (o *Outputter) Output(series map[string][]float64) error {
	results, err := o.Results(series)
	if err != nil {
		return err
	}
	vars := make([]string, 0, len(results))
	for v := range results {
		vars = append(vars, v)
	}
	sort.Strings(vars)

	f, err := os.Create(o.fileName)
	if err != nil {
		return fmt.Errorf("energymet: creating output file: %v", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"step"}, vars...)); err != nil {
		return fmt.Errorf("energymet: writing output file: %v", err)
	}
	var nt int
	for _, v := range results {
		nt = len(v)
		break
	}
	row := make([]string, len(vars)+1)
	for i := 0; i < nt; i++ {
		row[0] = strconv.Itoa(i)
		for j, v := range vars {
			row[j+1] = strconv.FormatFloat(results[v][i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("energymet: writing output file: %v", err)
		}
	}
	w.Flush()
	return w.Error()
}
