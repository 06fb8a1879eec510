package structmatch

// ═══════════════════════════════════════════════════════════════════════════════
// INDEX SCHEMA VALIDATION
// ═══════════════════════════════════════════════════════════════════════════════
// The host's index schema must satisfy a few requirements for this engine's
// payload decoding and offset comparisons to mean anything. Validating them
// once at startup turns a silent wrong-answer bug into a fail-fast
// SCHEMA_ERROR.
// ═══════════════════════════════════════════════════════════════════════════════

// FieldSchema describes the attributes of one indexed field that this
// engine depends on, as reported by the host's index (external).
type FieldSchema struct {
	Name                      string
	Tokenizer                 string
	OmitPositions             bool
	StoreOffsetsWithPositions bool
}

// ValidateSchema checks that the annotations field and the annotated text
// field satisfy what this engine needs to operate correctly:
//
//   - annotationsField uses the whitespace tokenizer and OmitPositions == false
//   - textField has OmitPositions == false and StoreOffsetsWithPositions == true
func ValidateSchema(annotationsField, textField FieldSchema) error {
	if annotationsField.Tokenizer != "whitespace" {
		return schemaErrorf("annotations field %q must use the whitespace tokenizer, got %q",
			annotationsField.Name, annotationsField.Tokenizer)
	}
	if annotationsField.OmitPositions {
		return schemaErrorf("annotations field %q must not omit positions", annotationsField.Name)
	}
	if textField.OmitPositions {
		return schemaErrorf("text field %q must not omit positions", textField.Name)
	}
	if !textField.StoreOffsetsWithPositions {
		return schemaErrorf("text field %q must store character offsets with positions", textField.Name)
	}
	return nil
}
