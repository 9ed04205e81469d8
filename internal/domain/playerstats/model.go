package playerstats

// Table is a pass-through tabular result whose column schema is owned
// by the fallback source. It is exported verbatim, one row per player.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}
