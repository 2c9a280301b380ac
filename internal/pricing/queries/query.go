// internal/pricing/queries/query.go
package queries

import (
	"fmt"
	"time"
)

const (
	ParamWindowStart = "window_start"
	ParamWindowEnd   = "window_end"
	ParamLimit       = "limit"

	TypeDate  = "DATE"
	TypeInt64 = "INT64"

	dateLayout = "2006-01-02"
)

// Parameter is one positional placeholder of a query. Value stays nil until
// the query is bound.
type Parameter struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// Query is a templated statement plus its ordered parameters. Placeholder $N
// refers to Params[N-1].
type Query struct {
	Name   string      `json:"name"`
	SQL    string      `json:"sql"`
	Params []Parameter `json:"params"`
}

// Window is the inclusive date range the filter stage selects.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow reads a window from two YYYY-MM-DD dates.
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return Window{}, fmt.Errorf("parse window start %q: %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return Window{}, fmt.Errorf("parse window end %q: %w", end, err)
	}
	if e.Before(s) {
		return Window{}, fmt.Errorf("window end %s is before start %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

func (w Window) StartDate() string { return w.Start.Format(dateLayout) }
func (w Window) EndDate() string   { return w.End.Format(dateLayout) }

// Bind returns a copy of q with every placeholder filled.
func (q Query) Bind(w Window, limit int) Query {
	bound := q
	bound.Params = make([]Parameter, len(q.Params))
	for i, p := range q.Params {
		switch p.Name {
		case ParamWindowStart:
			p.Value = w.StartDate()
		case ParamWindowEnd:
			p.Value = w.EndDate()
		case ParamLimit:
			p.Value = int64(limit)
		}
		bound.Params[i] = p
	}
	return bound
}

// Args returns the parameter values in placeholder order.
func (q Query) Args() []interface{} {
	args := make([]interface{}, len(q.Params))
	for i, p := range q.Params {
		args[i] = p.Value
	}
	return args
}

// Bound reports whether every parameter has a value.
func (q Query) Bound() bool {
	for _, p := range q.Params {
		if p.Value == nil {
			return false
		}
	}
	return true
}
