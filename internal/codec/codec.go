// Package codec reads and writes document trees as JSON, YAML or CBOR.
//
// All three formats share one schema and round-trip every node field.
// Decoded trees are validated before they are returned.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dshills/pagecraft/internal/tree"
)

// Format names an encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	CBOR Format = "cbor"
)

// Errors returned by the codec.
var (
	// ErrUnknownFormat indicates an unsupported format name.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrUnknownKind indicates a node with an unrecognized kind.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrMissingNode indicates a null node or a document without a root.
	ErrMissingNode = errors.New("missing node")

	// ErrUnsupportedVersion indicates a document written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// ParseFormat converts a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode writes root to w.
func Encode(format Format, w io.Writer, root *tree.Node) error {
	if root == nil {
		return ErrMissingNode
	}
	doc := documentDTO{Version: FormatVersion, Root: fromNode(root)}

	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case CBOR:
		return cborEnc.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode reads a document from r and validates it.
func Decode(format Format, r io.Reader) (*tree.Node, error) {
	var doc documentDTO
	var err error

	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case CBOR:
		err = cborDec.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	if doc.Version > FormatVersion {
		return nil, &DecodeError{Format: format, Err: fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)}
	}
	root, err := toNode(doc.Root, "root")
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	if err := tree.Validate(root); err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return root, nil
}

// DecodeError wraps a failure to decode a document.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
