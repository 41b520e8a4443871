package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var scrapeMetadataSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	file, err := schemasFS.Open("schemas/scrape_metadata.json")
	if err != nil {
		log.Fatalf("failed to open embedded metadata schema: %v", err)
	}
	defer file.Close()

	if err := compiler.AddResource("scrape_metadata.json", file); err != nil {
		log.Fatalf("failed to add metadata schema resource: %v", err)
	}

	scrapeMetadataSchema, err = compiler.Compile("scrape_metadata.json")
	if err != nil {
		log.Fatalf("failed to compile metadata schema: %v", err)
	}
}

// ValidateScrapeMetadata проверяет сериализованный metadata sidecar
// по контрактной схеме перед загрузкой в хранилище.
func ValidateScrapeMetadata(payload []byte) error {
	var doc interface{}
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("metadata is not valid JSON: %w", err)
	}

	if err := scrapeMetadataSchema.Validate(doc); err != nil {
		return fmt.Errorf("metadata does not match contract: %w", err)
	}
	return nil
}
