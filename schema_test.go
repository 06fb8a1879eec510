package structmatch

import (
	"errors"
	"testing"
)

func validSchemas() (FieldSchema, FieldSchema) {
	annotations := FieldSchema{Name: "annotations", Tokenizer: "whitespace", OmitPositions: false}
	text := FieldSchema{Name: "text", OmitPositions: false, StoreOffsetsWithPositions: true}
	return annotations, text
}

func TestValidateSchemaAccepsConformingFields(t *testing.T) {
	annotations, text := validSchemas()
	if err := ValidateSchema(annotations, text); err != nil {
		t.Fatalf("ValidateSchema: %v", err)
	}
}

func TestValidateSchemaRejectsViolations(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(annotations, text *FieldSchema)
	}{
		{"wrong tokenizer", func(a, _ *FieldSchema) { a.Tokenizer = "standard" }},
		{"annotations omits positions", func(a, _ *FieldSchema) { a.OmitPositions = true }},
		{"text omits positions", func(_, tx *FieldSchema) { tx.OmitPositions = true }},
		{"text missing offsets", func(_, tx *FieldSchema) { tx.StoreOffsetsWithPositions = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			annotations, text := validSchemas()
			tc.mutate(&annotations, &text)
			err := ValidateSchema(annotations, text)
			if err == nil {
				t.Fatal("expected a SCHEMA_ERROR")
			}
			if !errors.Is(err, ErrSchema) {
				t.Errorf("expected ErrSchema, got %v", err)
			}
		})
	}
}
