package entry

import (
	"encoding/json"
	"fmt"
)

// The Data kinds embed a full record (creature, spell, ...) as an opaque
// payload. Record schemas live outside this package.

type DataCreature struct {
	Meta
	DataCreature json.RawMessage `json:"dataCreature"`
}

type DataSpell struct {
	Meta
	DataSpell json.RawMessage `json:"dataSpell"`
}

type DataTrapHazard struct {
	Meta
	DataTrapHazard json.RawMessage `json:"dataTrapHazard"`
}

type DataObject struct {
	Meta
	DataObject json.RawMessage `json:"dataObject"`
}

type DataItem struct {
	Meta
	DataItem json.RawMessage `json:"dataItem"`
}

// Payload returns the embedded record of any Data kind, or nil for other
// blocks.
func Payload(b Block) json.RawMessage {
	switch d := b.(type) {
	case *DataCreature:
		return d.DataCreature
	case *DataSpell:
		return d.DataSpell
	case *DataTrapHazard:
		return d.DataTrapHazard
	case *DataObject:
		return d.DataObject
	case *DataItem:
		return d.DataItem
	}
	return nil
}

// RefClassFeature points at a class feature by its
// "name|class|classSource|level" reference. Used on class pages only.
type RefClassFeature struct {
	ClassFeature string `json:"classFeature"`
}

func (*RefClassFeature) Metadata() Meta { return Meta{} }

func (b *RefClassFeature) validate() error {
	return requireRef("classFeature", b.ClassFeature)
}

type RefSubclassFeature struct {
	SubclassFeature string `json:"subclassFeature"`
}

func (*RefSubclassFeature) Metadata() Meta { return Meta{} }

func (b *RefSubclassFeature) validate() error {
	return requireRef("subclassFeature", b.SubclassFeature)
}

type RefOptionalFeature struct {
	OptionalFeature string `json:"optionalfeature"`
	Name            string `json:"name,omitempty"`
}

func (b *RefOptionalFeature) Metadata() Meta { return Meta{Name: b.Name} }

func (b *RefOptionalFeature) validate() error {
	return requireRef("optionalfeature", b.OptionalFeature)
}

func requireRef(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s reference is empty", field)
	}
	return nil
}
