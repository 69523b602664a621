package db

import "errors"

// IndexFieldType enumerates supported FT index field types.
type IndexFieldType string

const (
	// IndexFieldTag is an exact/wildcard-matchable attribute field.
	IndexFieldTag IndexFieldType = "TAG"
	// IndexFieldText is a full-text field.
	IndexFieldText IndexFieldType = "TEXT"
	// IndexFieldNumeric is a numeric range field.
	IndexFieldNumeric IndexFieldType = "NUMERIC"
)

// IndexField describes one field of an FT index schema.
type IndexField struct {
	Name             string
	Type             IndexFieldType
	TagSeparator     string
	TagCaseSensitive bool
}

// IndexDefinition describes an FT index over hash keys.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// Validate checks the definition for structural correctness.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}
	seen := make(map[string]struct{}, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required")
		}
		if _, dup := seen[f.Name]; dup {
			return errors.New("duplicate field " + f.Name)
		}
		seen[f.Name] = struct{}{}
		switch f.Type {
		case IndexFieldTag, IndexFieldText, IndexFieldNumeric:
		default:
			return errors.New("unknown field type for " + f.Name)
		}
	}
	return nil
}
