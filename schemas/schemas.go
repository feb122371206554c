// Package schemas embeds the JSON Schemas for documents the CLI accepts.
package schemas

import _ "embed"

// PostingImport is the schema of a posting import file.
//
//go:embed posting_import.schema.json
var PostingImport []byte
