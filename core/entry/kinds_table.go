package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Table struct {
	Meta
	Caption         string         `json:"caption,omitempty"`
	Intro           []Entry        `json:"intro,omitzero"`
	Outro           []Entry        `json:"outro,omitzero"`
	IsStriped       *bool          `json:"isStriped,omitempty"`
	IsNameGenerator *bool          `json:"isNameGenerator,omitempty"`
	Style           string         `json:"style,omitempty"`
	ColLabels       []string       `json:"colLabels,omitzero"`
	ColStyles       []string       `json:"colStyles,omitzero"`
	RowLabels       []string       `json:"rowLabels,omitzero"`
	RowStyles       []string       `json:"rowStyles,omitzero"`
	Rows            []TableRowItem `json:"rows"`
	Footnotes       []Entry        `json:"footnotes,omitzero"`
}

// TableRowItem is one table row: either a plain list of cells, written as a
// JSON array, or a row block such as TableRow, written as an object.
type TableRowItem struct {
	Cells []Entry
	Row   *Entry
}

// Cols returns the entries of the row, looking through a TableRow block.
func (t TableRowItem) Cols() []Entry {
	if t.Row == nil {
		return t.Cells
	}
	if b, ok := t.Row.Block(); ok {
		if row, ok := b.(*TableRow); ok {
			return row.Row
		}
	}
	return []Entry{*t.Row}
}

func (t TableRowItem) MarshalJSON() ([]byte, error) {
	if t.Row != nil {
		return json.Marshal(*t.Row)
	}
	if t.Cells == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Cells)
}

func (t *TableRowItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*t = TableRowItem{Row: &e}
		return nil
	}
	var cells []Entry
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	if len(cells) == 0 {
		cells = nil
	}
	*t = TableRowItem{Cells: cells}
	return nil
}

// TableGroup groups related tables. It has no effect on rendering.
type TableGroup struct {
	Meta
	Tables []Entry `json:"tables,omitzero"`
}

type TableRow struct {
	Meta
	Style string  `json:"style,omitempty"`
	Row   []Entry `json:"row"`
}

// TableCell is a cell carrying a roll range for random tables.
type TableCell struct {
	Meta
	Width *int64   `json:"width,omitempty"`
	Roll  CellRoll `json:"roll"`
	Entry *Entry   `json:"entry,omitempty"`
}

// CellRoll is either an inclusive Min-Max range or, when Exact is set, a
// single value.
type CellRoll struct {
	Min   int64
	Max   int64
	Exact *int64
	Pad   *bool
}

// String formats the roll the way printed tables do: "3", "3-4", or with
// Pad set "03-04".
func (c CellRoll) String() string {
	f := "%d"
	if c.Pad != nil && *c.Pad {
		f = "%02d"
	}
	if c.Exact != nil {
		return fmt.Sprintf(f, *c.Exact)
	}
	if c.Min == c.Max {
		return fmt.Sprintf(f, c.Min)
	}
	return fmt.Sprintf(f+"-"+f, c.Min, c.Max)
}

type cellRollJSON struct {
	Min   *int64 `json:"min,omitempty"`
	Max   *int64 `json:"max,omitempty"`
	Exact *int64 `json:"exact,omitempty"`
	Pad   *bool  `json:"pad,omitempty"`
}

func (c CellRoll) MarshalJSON() ([]byte, error) {
	if c.Exact != nil {
		return json.Marshal(cellRollJSON{Exact: c.Exact, Pad: c.Pad})
	}
	return json.Marshal(cellRollJSON{Min: &c.Min, Max: &c.Max, Pad: c.Pad})
}

func (c *CellRoll) UnmarshalJSON(data []byte) error {
	var raw cellRollJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Exact != nil:
		*c = CellRoll{Exact: raw.Exact, Pad: raw.Pad}
	case raw.Min != nil && raw.Max != nil:
		*c = CellRoll{Min: *raw.Min, Max: *raw.Max, Pad: raw.Pad}
	default:
		return fmt.Errorf("cell roll needs exact or both min and max")
	}
	return nil
}

type List struct {
	Meta
	Columns *int64  `json:"columns,omitempty"`
	Style   string  `json:"style,omitempty"`
	Items   []Entry `json:"items"`
}
