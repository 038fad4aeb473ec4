package astfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// nodeSchema describes the canonical JSON encoding. Every node carries
// a kind; the other properties are constrained to the fields the
// encoder actually emits, so a malformed or hand-edited dump fails
// validation instead of round-tripping garbage.
const nodeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "https://esta-lang.org/schemas/ast.json",
  "$ref": "#/definitions/node",
  "definitions": {
    "node": {
      "type": "object",
      "required": ["kind"],
      "additionalProperties": false,
      "properties": {
        "kind": {
          "enum": [
            "program", "var", "assign", "while", "if", "for", "fun",
            "return", "break", "continue", "call_stmt", "block",
            "number", "bool", "string", "nil", "ident", "binary",
            "unary", "call"
          ]
        },
        "name": { "type": "string", "minLength": 1 },
        "op": {
          "enum": ["and", "or", "==", "!=", "<", ">", "<=", ">=", "+", "-", "*", "/", "not"]
        },
        "number": {
          "type": "integer",
          "minimum": -2147483648,
          "maximum": 2147483647
        },
        "bool": { "type": "boolean" },
        "text": { "type": "string", "pattern": "^\"[^\"]*\"$" },
        "params": { "type": "array", "items": { "type": "string", "minLength": 1 } },
        "init": { "$ref": "#/definitions/node" },
        "cond": { "$ref": "#/definitions/node" },
        "post": { "$ref": "#/definitions/node" },
        "target": { "$ref": "#/definitions/node" },
        "value": { "$ref": "#/definitions/node" },
        "left": { "$ref": "#/definitions/node" },
        "right": { "$ref": "#/definitions/node" },
        "operand": { "$ref": "#/definitions/node" },
        "then": { "$ref": "#/definitions/node" },
        "else": { "$ref": "#/definitions/node" },
        "body": { "$ref": "#/definitions/node" },
        "call": { "$ref": "#/definitions/node" },
        "args": { "type": "array", "items": { "$ref": "#/definitions/node" } },
        "stmts": { "type": "array", "items": { "$ref": "#/definitions/node" } }
      },
      "allOf": [
        {
          "if": { "properties": { "kind": { "const": "if" } } },
          "then": { "required": ["cond", "then", "else"] }
        },
        {
          "if": { "properties": { "kind": { "const": "binary" } } },
          "then": { "required": ["op", "left", "right"] }
        },
        {
          "if": { "properties": { "kind": { "const": "unary" } } },
          "then": { "required": ["op", "operand"] }
        },
        {
          "if": { "properties": { "kind": { "const": "number" } } },
          "then": { "required": ["number"] }
        },
        {
          "if": { "properties": { "kind": { "const": "string" } } },
          "then": { "required": ["text"] }
        }
      ]
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("esta-ast.schema.json", nodeSchema)
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks a JSON encoding of a canonical tree against the
// AST schema. Returns nil when the document is a well-formed encoding.
func ValidateJSON(data []byte) error {
	sch, err := compiled()
	if err != nil {
		return fmt.Errorf("failed to compile AST schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("AST document does not match schema: %w", err)
	}
	return nil
}
