// Constants and global variables used across the module.
package globals

import "time"

const (
	// The name of the variable that the document is bound to inside a script environment.
	ScriptVariableName = "json"
	// Delimiter between segments of a dotted path.
	PathDelim = '.'
	// Indent used when marshalling a document back into JSON.
	Indent = "  "
	// Units for HaltingDelay.
	HaltingDelayUnits = time.Second
)

// These are global variables that can be changed.
var (
	// The delay in HaltingDelayUnits after which a running script will be interrupted to stop execution of
	// infinitely executing scripts.
	HaltingDelay = 4
)

// Returns a map of the descriptions for the subcommands that are used in the CLI application.
func CliSubcommandDescriptions() map[string]string {
	return map[string]string{
		"get":      "Resolves a dotted/indexed path within the given JSON/hjson file and prints the value",
		"set":      "Sets the value at the given path within the given JSON/hjson file and writes the file back",
		"fmt":      "Reformats the given JSON/hjson file as canonical indented JSON",
		"validate": "Validates the given JSON/hjson file against a JSON Schema",
		"run":      "Runs a JS script against the given JSON/hjson file and writes the result back",
	}
}
