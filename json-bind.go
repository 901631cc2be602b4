// json-bind is a small host around the document store: it reads a JSON/hjson file into a Document,
// performs one operation on it and writes the canonical indented JSON back out. Run without a
// subcommand for usage.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andygello555/json-bind/binding"
	"github.com/andygello555/json-bind/dom"
	"github.com/andygello555/json-bind/globals"
	"github.com/andygello555/json-bind/schema"
	"github.com/andygello555/json-bind/utils"
	"github.com/fatih/color"
)

// Reads the given file into a Document: canonical JSON first so that member order is kept, falling
// back to relaxed hjson for hand-authored files.
func readDocument(path string) *dom.Document {
	if !utils.CheckFileExists(path) {
		utils.FileDoesNotExistErr.Handle(errors.New(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		utils.ReadFileErr.Handle(err)
	}
	doc := dom.New()
	if err = doc.Unmarshal(data); err != nil {
		if err = doc.UnmarshalRelaxed(data); err != nil {
			utils.UnmarshalErr.Handle(err)
		}
	}
	return doc
}

func writeDocument(doc *dom.Document, path string) {
	out, err := doc.Marshal()
	if err != nil {
		utils.MarshalErr.Handle(err)
	}
	if err = os.WriteFile(path, append(out, '\n'), 0644); err != nil {
		utils.WriteFileErr.Handle(err)
	}
}

// Decodes the -value flag: JSON literals are decoded with the numeric narrowing intact, anything
// that isn't valid JSON is taken as a plain string. An empty value means "remove the key".
// A value that does parse as JSON but carries trailing content is a typo rather than a plain
// string, so it errors instead of being stored verbatim.
func decodeValue(raw string) (interface{}, error) {
	if raw == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return raw, nil
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(raw)
	}
	return value, nil
}

func requireFlags(flagSet *flag.FlagSet, required map[string]*string) {
	for name, value := range required {
		if *value == "" {
			utils.RequiredFlagErr.Handle(errors.New("-"+name), flagSet)
		}
	}
}

func main() {
	descriptions := globals.CliSubcommandDescriptions()

	getCmd := flag.NewFlagSet("get", flag.ExitOnError)
	getFile := getCmd.String("file", "", "The file to read the document from (required)")
	getPath := getCmd.String("path", "", "The dotted/indexed path to resolve (required)")

	setCmd := flag.NewFlagSet("set", flag.ExitOnError)
	setFile := setCmd.String("file", "", "The file to read the document from and write it back to (required)")
	setPath := setCmd.String("path", "", "The dotted/indexed path to write (required)")
	setValue := setCmd.String("value", "", "The value to write: a JSON literal or a plain string, empty removes the key")

	fmtCmd := flag.NewFlagSet("fmt", flag.ExitOnError)
	fmtFile := fmtCmd.String("file", "", "The file to reformat (required)")

	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateFile := validateCmd.String("file", "", "The file holding the document to validate (required)")
	validateSchema := validateCmd.String("schema", "", "The file holding the JSON Schema to validate against (required)")

	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	runFile := runCmd.String("file", "", "The file to read the document from and write it back to (required)")
	runScript := runCmd.String("script", "", "The file holding the JS script to run against the document (required)")

	allCmds := []*flag.FlagSet{getCmd, setCmd, fmtCmd, validateCmd, runCmd}
	if len(os.Args) < 2 {
		for _, cmd := range allCmds {
			fmt.Printf("%s: %s\n", cmd.Name(), descriptions[cmd.Name()])
		}
		utils.SubcommandErr.Handle(nil, allCmds...)
	}

	switch os.Args[1] {
	case "get":
		_ = getCmd.Parse(os.Args[2:])
		requireFlags(getCmd, map[string]*string{"file": getFile, "path": getPath})
		doc := readDocument(*getFile)
		out, err := json.Marshal(doc.Resolve(*getPath))
		if err != nil {
			utils.MarshalErr.Handle(err)
		}
		fmt.Println(string(out))
	case "set":
		_ = setCmd.Parse(os.Args[2:])
		requireFlags(setCmd, map[string]*string{"file": setFile, "path": setPath})
		doc := readDocument(*setFile)
		value, err := decodeValue(*setValue)
		if err != nil {
			utils.ValueErr.Handle(err, setCmd)
		}
		if !doc.Set(*setPath, value) {
			utils.PathWriteErr.Handle(utils.PathError.FillError(*setPath))
		}
		writeDocument(doc, *setFile)
		color.Green("wrote %s", *setFile)
	case "fmt":
		_ = fmtCmd.Parse(os.Args[2:])
		requireFlags(fmtCmd, map[string]*string{"file": fmtFile})
		doc := readDocument(*fmtFile)
		fmt.Println(doc.String())
	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		requireFlags(validateCmd, map[string]*string{"file": validateFile, "schema": validateSchema})
		doc := readDocument(*validateFile)
		schemaBytes, err := os.ReadFile(*validateSchema)
		if err != nil {
			utils.ReadFileErr.Handle(err)
		}
		if err = schema.NewValidator(schemaBytes).ValidateDocument(doc); err != nil {
			color.Red("%s is not valid", *validateFile)
			utils.ValidationErr.Handle(err)
		}
		color.Green("%s is valid", *validateFile)
	case "run":
		_ = runCmd.Parse(os.Args[2:])
		requireFlags(runCmd, map[string]*string{"file": runFile, "script": runScript})
		doc := readDocument(*runFile)
		scriptBytes, err := os.ReadFile(*runScript)
		if err != nil {
			utils.ReadFileErr.Handle(err)
		}
		if err = binding.RunScript(doc, string(scriptBytes)); err != nil {
			utils.EvalErr.Handle(err)
		}
		writeDocument(doc, *runFile)
		color.Green("wrote %s", *runFile)
	default:
		utils.SubcommandErr.Handle(errors.New(os.Args[1]), allCmds...)
	}
}
