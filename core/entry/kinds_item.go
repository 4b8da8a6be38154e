package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Item is a named list item. Exactly one of Entry or Entries is set.
type Item struct {
	Meta
	Style   string  `json:"style,omitempty"`
	Name    string  `json:"name"`
	Entry   *Entry  `json:"entry,omitempty"`
	Entries []Entry `json:"entries,omitzero"`
}

func (b *Item) Metadata() Meta { return withName(b.Meta, b.Name) }

// Body returns the item's content as a list.
func (b *Item) Body() []Entry {
	if b.Entry != nil {
		return []Entry{*b.Entry}
	}
	return b.Entries
}

func (b *Item) validate() error {
	if (b.Entry == nil) == (b.Entries == nil) {
		return fmt.Errorf("item %q needs exactly one of entry or entries", b.Name)
	}
	return nil
}

type ItemSub struct {
	Meta
	Name  string `json:"name"`
	Entry *Entry `json:"entry"`
}

func (b *ItemSub) Metadata() Meta { return withName(b.Meta, b.Name) }

type ItemSpell struct {
	Meta
	Name  string `json:"name"`
	Entry *Entry `json:"entry"`
}

func (b *ItemSpell) Metadata() Meta { return withName(b.Meta, b.Name) }

// Ingredient is a recipe line. Entry may reference amounts with
// "{=amount1}" placeholders; the amounts are numeric keys flattened into the
// same JSON object.
type Ingredient struct {
	Meta
	Entry   *Entry                 `json:"entry"`
	Amounts map[string]json.Number `json:"-"`
}

var ingredientKeys = map[string]bool{
	"type": true, "name": true, "source": true, "data": true, "page": true, "id": true, "entry": true,
}

func (b Ingredient) MarshalJSON() ([]byte, error) {
	type plain Ingredient
	body, err := json.Marshal(plain(b))
	if err != nil {
		return nil, err
	}
	if len(b.Amounts) == 0 {
		return body, nil
	}
	var buf bytes.Buffer
	buf.Write(body[:len(body)-1])
	for i, k := range SortedKeys(b.Amounts) {
		if i > 0 || len(body) > 2 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(k))
		buf.WriteByte(':')
		buf.WriteString(b.Amounts[k].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *Ingredient) UnmarshalJSON(data []byte) error {
	type plain Ingredient
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var rest map[string]json.RawMessage
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	for k, raw := range rest {
		if ingredientKeys[k] {
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("ingredient amount %q is not a number", k)
		}
		if p.Amounts == nil {
			p.Amounts = make(map[string]json.Number)
		}
		p.Amounts[k] = n
	}
	*b = Ingredient(p)
	return nil
}
