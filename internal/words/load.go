package words

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed data/words.json
var bundledData []byte

// BundledData returns a copy of the data file compiled into the binary.
func BundledData() []byte {
	return bytes.Clone(bundledData)
}

// Load error codes.
const (
	ErrCodeNotFound = "E005" // data file missing
	ErrCodeRead     = "E008" // data file unreadable
	ErrCodeParse    = "E009" // data file is not valid JSON of the expected shape
	ErrCodeNoWords  = "E010" // data file has no words array
)

// LoadError reports why a data file could not be turned into a Collection.
type LoadError struct {
	Code string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a LoadError for a missing file.
func IsNotFound(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Code == ErrCodeNotFound
}

// Decode parses data file bytes into a Document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, &LoadError{Code: ErrCodeParse, Err: err}
	}
	if doc.Words == nil {
		return Document{}, &LoadError{Code: ErrCodeNoWords, Err: errors.New("missing words array")}
	}
	return doc, nil
}

// Parse decodes data file bytes and builds a Collection.
func Parse(data []byte) (*Collection, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return New(doc), nil
}

// ReadDocument reads and decodes the data file at path.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{}, &LoadError{Code: ErrCodeNotFound, Path: path, Err: err}
	}
	if err != nil {
		return Document{}, &LoadError{Code: ErrCodeRead, Path: path, Err: err}
	}
	doc, err := Decode(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return Document{}, err
	}
	return doc, nil
}

// Load reads the data file at path and builds a Collection.
func Load(path string) (*Collection, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(doc), nil
}

// Default builds a Collection from the bundled data file.
// The bundled file is checked by tests, so a failure here is a build bug.
func Default() *Collection {
	c, err := Parse(bundledData)
	if err != nil {
		panic(fmt.Sprintf("words: bundled data file is invalid: %v", err))
	}
	return c
}
