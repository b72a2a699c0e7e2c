// Package catalog defines section and widget descriptors and the built-in
// set every homepage starts from.
package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/darkden-lab/homepage/internal/jsonvalue"
)

// FieldType is the editor control used for a config field.
type FieldType string

const (
	FieldBoolean  FieldType = "boolean"
	FieldNumber   FieldType = "number"
	FieldString   FieldType = "string"
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldArray    FieldType = "array"
)

// FieldSpec describes how the editor renders one config field. It is UI
// metadata only; saved block configs are not checked against it.
type FieldSpec struct {
	Type  FieldType `json:"type" yaml:"type" validate:"oneof=boolean number string text textarea array"`
	Label string    `json:"label" yaml:"label"`
	Min   *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max   *float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

// Descriptor describes a section or widget type.
type Descriptor struct {
	ID            string               `json:"id" yaml:"id" validate:"required"`
	Label         string               `json:"label" yaml:"label"`
	Description   string               `json:"description" yaml:"description"`
	Icon          string               `json:"icon" yaml:"icon"`
	DataEndpoint  string               `json:"dataEndpoint,omitempty" yaml:"dataEndpoint,omitempty"`
	DefaultConfig map[string]any       `json:"defaultConfig" yaml:"defaultConfig"`
	ConfigSchema  map[string]FieldSpec `json:"configSchema" yaml:"configSchema" validate:"dive"`

	// SourcePlugin names the contributing extension. Empty for built-ins.
	SourcePlugin string `json:"sourcePlugin,omitempty" yaml:"-"`
}

// Catalog is the result of one discovery pass.
type Catalog struct {
	Sections []Descriptor `json:"sections"`
	Widgets  []Descriptor `json:"widgets"`
}

var validate = validator.New()

// Validate checks the structural shape of a descriptor.
func (d Descriptor) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("descriptor %q: %w", d.ID, err)
	}
	return nil
}

// Clone returns a copy that shares no maps with d.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.DefaultConfig = jsonvalue.CloneMap(d.DefaultConfig)
	if d.ConfigSchema != nil {
		out.ConfigSchema = make(map[string]FieldSpec, len(d.ConfigSchema))
		for k, f := range d.ConfigSchema {
			if f.Min != nil {
				f.Min = bound(*f.Min)
			}
			if f.Max != nil {
				f.Max = bound(*f.Max)
			}
			out.ConfigSchema[k] = f
		}
	}
	return out
}

// CloneAll clones every descriptor in ds.
func CloneAll(ds []Descriptor) []Descriptor {
	if ds == nil {
		return nil
	}
	out := make([]Descriptor, len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}

func bound(v float64) *float64 { return &v }
