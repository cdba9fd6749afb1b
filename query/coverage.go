package query

import (
	"fmt"
	"strconv"
)

// Coverage scopes stats to at most one of a date, a season or a week.
type Coverage struct {
	Date   string
	Season int
	Week   int
}

// Path returns the coverage clause, such as ";type=week;week=5", or "" when
// no field is set. Setting more than one field is an error.
func (c Coverage) Path() (string, error) {
	set := 0
	for _, ok := range []bool{c.Date != "", c.Season != 0, c.Week != 0} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return "", &UsageError{Method: "stats", Args: c.args(), Err: ErrExclusiveFilters}
	}

	switch {
	case c.Date != "":
		return ";type=date;date=" + c.Date, nil
	case c.Season != 0:
		return ";type=season;season=" + strconv.Itoa(c.Season), nil
	case c.Week != 0:
		return ";type=week;week=" + strconv.Itoa(c.Week), nil
	default:
		return "", nil
	}
}

func (c Coverage) args() []string {
	var args []string
	if c.Date != "" {
		args = append(args, "date="+c.Date)
	}
	if c.Season != 0 {
		args = append(args, fmt.Sprintf("season=%d", c.Season))
	}
	if c.Week != 0 {
		args = append(args, fmt.Sprintf("week=%d", c.Week))
	}
	return args
}
