// Package schema validates the four input documents against embedded
// JSON Schemas before the pipeline runs. A violation is fatal: the run
// aborts without partial output.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Document names accepted by Validate.
const (
	Manifest   = "Manifest"
	Collection = "AnnotationCollection"
)

// registry maps document names to their embedded schema files.
var registry = map[string]string{
	Manifest:   "schemas/manifest.schema.json",
	Collection: "schemas/collection.schema.json",
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// compileAll loads and compiles every registered schema once.
func compileAll() {
	compiled = make(map[string]*jsonschema.Schema, len(registry))
	for name, file := range registry {
		raw, err := schemaFS.ReadFile(file)
		if err != nil {
			compileErr = fmt.Errorf("failed to read schema %s: %w", name, err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(file, bytes.NewReader(raw)); err != nil {
			compileErr = fmt.Errorf("failed to load schema %s: %w", name, err)
			return
		}
		s, err := compiler.Compile(file)
		if err != nil {
			compileErr = fmt.Errorf("failed to compile schema %s: %w", name, err)
			return
		}
		compiled[name] = s
	}
}

// Validate checks a document against the named schema.
func Validate(name string, data []byte) error {
	compileOnce.Do(compileAll)
	if compileErr != nil {
		return compileErr
	}
	s, ok := compiled[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("document does not match %s schema: %w", name, err)
	}
	return nil
}
