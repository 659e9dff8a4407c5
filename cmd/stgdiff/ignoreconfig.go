package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/stg-tools/stg/diff"
)

// ignoreConfigSchema constrains an ignore-flag config file to an "ignore"
// array of the eight recognised flag names; anything else is rejected
// before it ever reaches diff.IgnoreMask, grounded on core/types/
// validation.go's compile-then-validate use of jsonschema.Compiler.
const ignoreConfigSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "ignore": {
      "type": "array",
      "items": {
        "type": "string",
        "enum": [
          "symbol-type-presence",
          "type-declaration-status",
          "primitive-encoding",
          "member-size",
          "enum-underlying-type",
          "qualifier",
          "interface-addition",
          "symbol-crc"
        ]
      }
    }
  },
  "additionalProperties": false
}`

var ignoreFlagsByName = map[string]diff.IgnoreMask{
	"symbol-type-presence":    diff.IgnoreSymbolTypePresence,
	"type-declaration-status": diff.IgnoreTypeDeclarationStatus,
	"primitive-encoding":      diff.IgnorePrimitiveEncoding,
	"member-size":             diff.IgnoreMemberSize,
	"enum-underlying-type":    diff.IgnoreEnumUnderlyingType,
	"qualifier":               diff.IgnoreQualifier,
	"interface-addition":      diff.IgnoreInterfaceAddition,
	"symbol-crc":              diff.IgnoreSymbolCRC,
}

type ignoreConfig struct {
	Ignore []string `json:"ignore"`
}

// loadIgnoreConfig reads and schema-validates an ignore-flag config file,
// translating the result into a diff.IgnoreMask. An empty path yields the
// zero mask (nothing suppressed).
func loadIgnoreConfig(path string) (diff.IgnoreMask, error) {
	if path == "" {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading ignore config %s: %w", path, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("stgdiff://ignore-config.json", strings.NewReader(ignoreConfigSchema)); err != nil {
		return 0, fmt.Errorf("compiling ignore config schema: %w", err)
	}
	schema, err := compiler.Compile("stgdiff://ignore-config.json")
	if err != nil {
		return 0, fmt.Errorf("compiling ignore config schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parsing ignore config %s: %w", path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return 0, fmt.Errorf("ignore config %s failed validation: %w", path, err)
	}

	var cfg ignoreConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return 0, fmt.Errorf("parsing ignore config %s: %w", path, err)
	}

	var mask diff.IgnoreMask
	for _, name := range cfg.Ignore {
		mask |= ignoreFlagsByName[name]
	}
	return mask, nil
}
