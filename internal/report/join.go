package report

import (
	"fmt"
	"strings"
)

// CollisionPolicy decides the output names when both join sides carry a
// non-key column of the same name. It returns the name to use for the left
// and right side, or an error to abort the join.
type CollisionPolicy func(name string) (leftName, rightName string, err error)

// SuffixCollisions renames colliding columns with _x/_y suffixes, keeping
// both sides' data. This reproduces the report's historical column naming;
// it is a blind rename, so consumers must know which suffix is which side.
func SuffixCollisions(name string) (string, string, error) {
	return name + "_x", name + "_y", nil
}

// ErrorOnCollisions aborts the join on the first colliding column name.
func ErrorOnCollisions(name string) (string, string, error) {
	return "", "", fmt.Errorf("join: column %q present on both sides", name)
}

// Join inner-joins two normalized tables on their datetime key. Keys are
// coerced to the canonical rendering on both sides first, so a precision or
// separator mismatch between sources cannot silently empty the result.
// Duplicate keys multiply: every left row pairs with every right row sharing
// its key, left order outer, right order inner. Synthetic index columns
// (empty name, or the "Unnamed" placeholders produced by re-read side files)
// are dropped from the output. A nil policy means SuffixCollisions.
func Join(left, right *Table, policy CollisionPolicy) (*Table, error) {
	if policy == nil {
		policy = SuffixCollisions
	}
	if !left.HasColumn(DatetimeColumn) {
		return nil, fmt.Errorf("join: left table has no %s column", DatetimeColumn)
	}
	if !right.HasColumn(DatetimeColumn) {
		return nil, fmt.Errorf("join: right table has no %s column", DatetimeColumn)
	}

	leftCols := dataColumns(left)
	rightCols := dataColumns(right)

	shared := map[string]bool{}
	for _, c := range rightCols {
		shared[c] = false
	}
	for _, c := range leftCols {
		if _, ok := shared[c]; ok {
			shared[c] = true
		}
	}

	leftName := map[string]string{}
	rightName := map[string]string{}
	for _, c := range leftCols {
		leftName[c] = c
	}
	for _, c := range rightCols {
		rightName[c] = c
	}
	for name, collides := range shared {
		if !collides {
			continue
		}
		l, r, err := policy(name)
		if err != nil {
			return nil, err
		}
		leftName[name] = l
		rightName[name] = r
	}

	out := &Table{Columns: []string{DatetimeColumn}}
	for _, c := range leftCols {
		out.Columns = append(out.Columns, leftName[c])
	}
	for _, c := range rightCols {
		out.Columns = append(out.Columns, rightName[c])
	}

	// Index right rows by coerced key, preserving row order per key.
	byKey := map[string][]Row{}
	for _, r := range right.Rows {
		key := CoerceDatetime(r[DatetimeColumn])
		byKey[key] = append(byKey[key], r)
	}

	for _, l := range left.Rows {
		key := CoerceDatetime(l[DatetimeColumn])
		for _, r := range byKey[key] {
			row := Row{DatetimeColumn: key}
			for _, c := range leftCols {
				row[leftName[c]] = l[c]
			}
			for _, c := range rightCols {
				row[rightName[c]] = r[c]
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// dataColumns returns a table's columns minus the key and minus synthetic
// index placeholders left behind by prior processing steps.
func dataColumns(t *Table) []string {
	var cols []string
	for _, c := range t.Columns {
		if c == DatetimeColumn || isSyntheticColumn(c) {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

func isSyntheticColumn(name string) bool {
	return name == "" || strings.HasPrefix(name, "Unnamed")
}
