// Package reader loads documents from JSON, YAML and Apache Parquet inputs.
//
// Every input is decoded into a single document.Value that the query
// package can run statements against. Object member order is preserved for
// JSON and YAML inputs.
//
// # Basic Usage
//
// Loading a file, with the format picked from its extension:
//
//	in, err := reader.Load("users.yaml", reader.FormatAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, err := query.Run(in.Value, "SELECT name FROM users")
//
// Reading standard input:
//
//	in, err := reader.Read(os.Stdin, reader.FormatJSON)
//
// # Parquet Files
//
// A parquet file has no enclosing document, so its rows are exposed under
// the "rows" member and queried with FROM rows. Paths may be glob patterns:
//
//	in, err := reader.Load("data/*.parquet", reader.FormatParquet)
//
//	// Each row includes a "_file" member with the source file path
//	rows, err := query.Run(in.Value, "SELECT _file, id FROM rows")
//
// # Root Selection
//
// SelectRoot narrows a document with a JSONPath expression before querying:
//
//	root, err := reader.SelectRoot(in.Value, "$.response.data")
//
// # Schema Introspection
//
// ExtractSchemaInfo lists the leaf fields of a document with their kinds:
//
//	for _, info := range reader.ExtractSchemaInfo(in.Value) {
//	    fmt.Printf("%s: %s\n", info.Name, info.Type)
//	}
//
// The package uses github.com/segmentio/parquet-go for parquet files,
// github.com/goccy/go-yaml for YAML and github.com/theory/jsonpath for
// root selection.
package reader
