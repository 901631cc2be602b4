package utils

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// CliError type for handling errors which occur in the CLI
type CliError struct {
	code     int    // The return code
	internal bool   // Whether or not the error is internal or down to user input
	message  string // The message to print along with the err message if given
}

var (
	ReadFileErr         = CliError{1, true, "A read file error occurred"}
	WriteFileErr        = CliError{2, true, "A write file error occurred"}
	SubcommandErr       = CliError{3, false, "Subcommand not given/not recognised"}
	RequiredFlagErr     = CliError{4, false, "The following required flag was not given"}
	FileDoesNotExistErr = CliError{5, false, "The following file does not exist and cannot be read"}
	MarshalErr          = CliError{6, false, "The following document cannot be marshalled for the following reasons"}
	UnmarshalErr        = CliError{7, false, "The following data cannot be unmarshalled for the following reasons"}
	ValueErr            = CliError{8, false, "The following value cannot be decoded"}
	ValidationErr       = CliError{9, true, "The following document failed schema validation"}
	PathWriteErr        = CliError{10, true, "The following path could not be written"}
	EvalErr             = CliError{11, true, "The following error occurred while running a script"}
)

func (e *CliError) Handle(err error, flagSetArray ...*flag.FlagSet) {
	if err != nil {
		fmt.Println(e.message+":", err)
	} else {
		fmt.Println(e.message)
	}

	// PrintDefaults if not an internal error
	if !e.internal {
		if len(flagSetArray) == 0 {
			flag.PrintDefaults()
		} else {
			for _, flagSet := range flagSetArray {
				flagSet.PrintDefaults()
			}
		}
	}

	// Finally exit, returning the exit code to the shell
	os.Exit(e.code)
}

type RuntimeError struct {
	code    int
	message string
}

// Runtime errors (negative codes)
var (
	ParseError     = RuntimeError{-1, "The given text could not be parsed as JSON"}
	PathError      = RuntimeError{-2, "A path could not be evaluated for the following reasons"}
	ScriptError    = RuntimeError{-3, "The following script has caused an error"}
	HaltingProblem = RuntimeError{-4, "Infinite loop has occurred after"}
	SchemaError    = RuntimeError{-5, "The document does not conform to the schema"}
)

// Fill out a RuntimeError error with the given extra info
func (e *RuntimeError) FillError(extraInfo ...string) error {
	var b strings.Builder
	for i, s := range extraInfo {
		_, _ = fmt.Fprint(&b, s)
		if i < len(extraInfo)-1 {
			_, _ = fmt.Fprint(&b, ", ")
		}
	}

	// Fill out the message
	var message string
	if b.String() != "" {
		// If there is extra info then add it after a colon
		message = fmt.Sprintf("(%d) %v: %v", e.code, e.message, b.String())
	} else {
		message = fmt.Sprintf("(%d) %v", e.code, e.message)
	}
	return errors.New(message)
}

func (e *RuntimeError) FillFromErrors(errs []error) error {
	// Create an array of the error messages so that they can be re-wrapped into another RuntimeError
	errString := make([]string, 0, len(errs))
	for _, err := range errs {
		errString = append(errString, err.Error())
	}
	return e.FillError(errString...)
}
