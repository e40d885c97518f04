// Package serializer writes snapshots and reports in the supported output formats.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Serializer writes a value to some destination.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by serializers holding an open destination.
type Closer interface {
	Close() error
}

// TextRenderer is implemented by values with a plain text form.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// Writer serializes values in a Format to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
	once   sync.Once
}

// NewWriter returns a Writer for format writing to output.
// Unknown formats fall back to JSON; a nil output selects stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter returns a Writer for format writing to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer for path, or for stdout when path
// is empty, whitespace or "-". The file is created immediately; callers
// close it through the Closer interface.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	if isStdout(path) {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize writes data in the writer's format.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatYAML:
		return w.serializeYAML(data)
	case FormatTable:
		return w.serializeTable(data)
	case FormatText:
		r, ok := data.(TextRenderer)
		if !ok {
			return fmt.Errorf("%T has no text form", data)
		}
		if err := r.RenderText(w.output); err != nil {
			return fmt.Errorf("failed to render text: %w", err)
		}
		return nil
	default:
		return w.serializeJSON(data)
	}
}

// Close closes the underlying file, if any. It is safe to call more than once.
func (w *Writer) Close() error {
	var err error
	w.once.Do(func() {
		if w.closer != nil {
			err = w.closer.Close()
		}
	})
	return err
}

func (w *Writer) serializeJSON(data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.output.Write(b); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(data any) error {
	enc := yaml.NewEncoder(w.output)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to serialize to yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml: %w", err)
	}
	return nil
}

func (w *Writer) serializeTable(data any) error {
	rows := make(map[string]string)
	flatten("", reflect.ValueOf(data), rows)

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
		return tw.Flush()
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, rows[k])
	}
	return tw.Flush()
}

var jsonMarshalerType = reflect.TypeFor[json.Marshaler]()

// flatten records every leaf of v under a dotted path.
func flatten(prefix string, v reflect.Value, out map[string]string) {
	if !v.IsValid() {
		out[prefix] = "<nil>"
		return
	}

	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		out[prefix] = "<nil>"
		return
	}

	if v.Type().Implements(jsonMarshalerType) && v.CanInterface() {
		if b, err := json.Marshal(v.Interface()); err == nil {
			out[prefix] = string(b)
			return
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		flatten(prefix, v.Elem(), out)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if f.Anonymous {
				flatten(prefix, v.Field(i), out)
				continue
			}
			flatten(joinKey(prefix, f.Name), v.Field(i), out)
		}
	case reflect.Map:
		for _, k := range v.MapKeys() {
			flatten(joinKey(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), out)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			flatten(prefix+"["+strconv.Itoa(i)+"]", v.Index(i), out)
		}
	default:
		out[prefix] = fmt.Sprint(v.Interface())
	}
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
