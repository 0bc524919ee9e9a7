package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

var compiledSchemas = mustCompileSchemas()

// mustCompileSchemas компилирует все схемы событий. Схемы встроены в бинарник,
// поэтому ошибка здесь - ошибка сборки, а не окружения.
func mustCompileSchemas() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemasFS, "schemas/events", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		// ресурсы добавляются все сразу, чтобы работали ссылки $ref между схемами
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		panic(fmt.Sprintf("contracts: walk schemas: %v", err))
	}

	out := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			panic(fmt.Sprintf("contracts: compile %s: %v", path, err))
		}
		if key := keyFromPath(path); key != "" {
			out[key] = schema
		}
	}
	return out
}

// keyFromPath: "schemas/events/listing-changed/v1.json" -> "ListingChangedEvent/1.0.0"
func keyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/events/"), ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Event")

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return name.String() + "/" + version
}

// ValidateEvent проверяет тело сообщения по схеме события
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	key := eventType + "/" + eventVersion
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, eventVersion)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
