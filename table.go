package gauge

import "fmt"

// Table is an ordered sequence of named columns. Constant columns hold
// a single value replicated across all rows and must be declared before
// the first row is appended; per-row columns hold one value per
// appended row. Column order equals declaration order and is what
// positional sinks render.
type Table struct {
	order   []string
	columns map[string]*column
	rows    int
}

type column struct {
	constant   bool
	constValue any
	values     []any
}

func NewTable() *Table {
	return &Table{columns: make(map[string]*column)}
}

// AddConstColumn declares a constant column. Declaring a constant
// column after the first row, or redeclaring an existing column, is a
// programming error.
func (t *Table) AddConstColumn(name string, value any) {
	if t.rows > 0 {
		panic(fmt.Sprintf("gauge: constant column %q declared after the first row", name))
	}
	if _, ok := t.columns[name]; ok {
		panic(fmt.Sprintf("gauge: column %q declared twice", name))
	}
	t.order = append(t.order, name)
	t.columns[name] = &column{constant: true, constValue: value}
}

// AddColumn declares a per-row column. Declaring a per-row column that
// already exists is a no-op, so StoreRun implementations may declare
// lazily.
func (t *Table) AddColumn(name string) {
	if existing, ok := t.columns[name]; ok {
		if existing.constant {
			panic(fmt.Sprintf("gauge: per-row column %q already declared as constant", name))
		}
		return
	}
	t.order = append(t.order, name)
	t.columns[name] = &column{values: make([]any, t.rows)}
}

// AddRow appends a new row. Per-row values are nil until set.
func (t *Table) AddRow() {
	t.rows++
	for _, c := range t.columns {
		if !c.constant {
			c.values = append(c.values, nil)
		}
	}
}

// SetValue sets a per-row column's value for the most recently appended
// row.
func (t *Table) SetValue(name string, value any) {
	c, ok := t.columns[name]
	if !ok || c.constant {
		panic(fmt.Sprintf("gauge: set value on missing or constant column %q", name))
	}
	if t.rows == 0 {
		panic(fmt.Sprintf("gauge: set value on column %q before the first row", name))
	}
	c.values[t.rows-1] = value
}

// HasColumn reports whether a column with this name is declared.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// IsConst reports whether the named column is a constant column.
func (t *Table) IsConst(name string) bool {
	c, ok := t.columns[name]
	return ok && c.constant
}

// DropColumn removes a column. Dropping an absent column is a no-op.
func (t *Table) DropColumn(name string) {
	if _, ok := t.columns[name]; !ok {
		return
	}
	delete(t.columns, name)
	for i, existing := range t.order {
		if existing == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.order...)
}

// Rows returns the number of appended rows.
func (t *Table) Rows() int {
	return t.rows
}

// Value returns the value of a column at a row. Constant columns yield
// their value for any row.
func (t *Table) Value(name string, row int) any {
	c, ok := t.columns[name]
	if !ok {
		return nil
	}
	if c.constant {
		return c.constValue
	}
	if row < 0 || row >= len(c.values) {
		return nil
	}
	return c.values[row]
}

// Clone returns a deep copy. Sinks that retain dispatched tables past
// the run window keep clones.
func (t *Table) Clone() *Table {
	clone := &Table{
		order:   append([]string(nil), t.order...),
		columns: make(map[string]*column, len(t.columns)),
		rows:    t.rows,
	}
	for name, c := range t.columns {
		clone.columns[name] = &column{
			constant:   c.constant,
			constValue: c.constValue,
			values:     append([]any(nil), c.values...),
		}
	}
	return clone
}
