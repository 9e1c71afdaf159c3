package physics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"
)

// RecordFormat selects the on-disk layout of saved bodies.
type RecordFormat int

const (
	// FormatLegacy writes one brace-delimited record per body, with vectors as
	// "(x, y, z)" strings, decimals as strings and a trailing comma after the
	// last field. Files written by earlier versions load unchanged.
	FormatLegacy RecordFormat = iota
	// FormatV1 writes a single JSON document {"version":1,"bodies":[...]} with
	// vectors as arrays and decimals as numbers.
	FormatV1
)

// StructuredVersion is the version number written by FormatV1.
const StructuredVersion = 1

// ParseRecordFormat maps "legacy" and "v1" to a RecordFormat.
func ParseRecordFormat(s string) (RecordFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return FormatLegacy, nil
	case "v1", "json":
		return FormatV1, nil
	}
	return 0, fmt.Errorf("record format %q: %w", s, ErrOutOfRange)
}

func (f RecordFormat) String() string {
	if f == FormatV1 {
		return "v1"
	}
	return "legacy"
}

// Record is a snapshot of a body's persisted fields.
type Record struct {
	ID          int
	Name        string
	Position    Vector3
	Rotation    Vector3
	Scale       Vector3
	Velocity    Vector3
	Temperature float64
	Mass        float64
	Volume      float64
	Density     float64
}

// Record returns b's current field values.
func (b *Body) Record() Record {
	return Record{
		ID:          b.id,
		Name:        b.Name,
		Position:    b.Position,
		Rotation:    b.rotation,
		Scale:       b.Scale,
		Velocity:    b.Velocity,
		Temperature: b.temperature,
		Mass:        b.mass,
		Volume:      b.volume,
		Density:     b.density,
	}
}

// FromRecord creates a body with the next id and r's field values. The id in r is ignored.
// Fields are validated in the order temperature, mass, volume, density.
func (w *World) FromRecord(r Record) (*Body, error) {
	b := w.NewBody(r.Name, r.Position)
	b.SetRotation(r.Rotation)
	b.Scale = r.Scale
	b.Velocity = r.Velocity
	if err := b.SetTemperature(r.Temperature); err != nil {
		return nil, err
	}
	if err := b.SetMass(r.Mass); err != nil {
		return nil, err
	}
	if err := b.SetVolume(r.Volume); err != nil {
		return nil, err
	}
	if err := b.SetDensity(r.Density); err != nil {
		return nil, err
	}
	return b, nil
}

// RecordText renders b in the legacy record layout.
func (w *World) RecordText(b *Body) string {
	return RecordText(b.Record())
}

// RecordText renders r in the legacy record layout, without a trailing newline.
func RecordText(r Record) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	fmt.Fprintf(&sb, "\t\"ID\":%d,\n", r.ID)
	fmt.Fprintf(&sb, "\t\"Name\":%s,\n", quote(r.Name))
	fmt.Fprintf(&sb, "\t\"Position\":\"%s\",\n", r.Position)
	fmt.Fprintf(&sb, "\t\"Rotation\":\"%s\",\n", r.Rotation)
	fmt.Fprintf(&sb, "\t\"Scale\":\"%s\",\n", r.Scale)
	fmt.Fprintf(&sb, "\t\"Velocity\":\"%s\",\n", r.Velocity)
	fmt.Fprintf(&sb, "\t\"Temperature\":\"%s\",\n", FormatDecimal(r.Temperature))
	fmt.Fprintf(&sb, "\t\"Mass\":\"%s\",\n", FormatDecimal(r.Mass))
	fmt.Fprintf(&sb, "\t\"Volume\":\"%s\",\n", FormatDecimal(r.Volume))
	fmt.Fprintf(&sb, "\t\"Density\":\"%s\",\n", FormatDecimal(r.Density))
	sb.WriteString("}")
	return sb.String()
}

// quote escapes s as a JSON string without HTML escaping, so plain names are written verbatim.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// EncodeRecords renders records in the given format.
func EncodeRecords(records []Record, format RecordFormat) ([]byte, error) {
	switch format {
	case FormatLegacy:
		var buf bytes.Buffer
		for _, r := range records {
			buf.WriteString(RecordText(r))
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	case FormatV1:
		doc := structuredFile{Version: StructuredVersion, Bodies: make([]structuredBody, len(records))}
		for i, r := range records {
			doc.Bodies[i] = toStructured(r)
		}
		data, err := json.MarshalIndent(doc, "", "\t")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("encode records: format %d: %w", int(format), ErrOutOfRange)
}

// DecodeRecords parses either format. A document with a non-zero "version"
// field is read as FormatV1; anything else as a sequence of legacy records.
func DecodeRecords(data []byte) ([]Record, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Version != 0 {
		return decodeStructured(data, probe.Version)
	}
	return decodeLegacy(data)
}

type structuredFile struct {
	Version int              `json:"version"`
	Bodies  []structuredBody `json:"bodies"`
}

type structuredBody struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Position    [3]float64 `json:"position"`
	Rotation    [3]float64 `json:"rotation"`
	Scale       [3]float64 `json:"scale"`
	Velocity    [3]float64 `json:"velocity"`
	Temperature float64    `json:"temperature"`
	Mass        float64    `json:"mass"`
	Volume      float64    `json:"volume"`
	Density     float64    `json:"density"`
}

func arr(v Vector3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
func vec(a [3]float64) Vector3 { return Vector3{a[0], a[1], a[2]} }

func toStructured(r Record) structuredBody {
	return structuredBody{
		ID:          r.ID,
		Name:        r.Name,
		Position:    arr(r.Position),
		Rotation:    arr(r.Rotation),
		Scale:       arr(r.Scale),
		Velocity:    arr(r.Velocity),
		Temperature: r.Temperature,
		Mass:        r.Mass,
		Volume:      r.Volume,
		Density:     r.Density,
	}
}

func decodeStructured(data []byte, version int) ([]Record, error) {
	if version != StructuredVersion {
		return nil, fmt.Errorf("unsupported version %d: %w", version, ErrMalformedRecord)
	}
	var doc structuredFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	records := make([]Record, len(doc.Bodies))
	for i, sb := range doc.Bodies {
		records[i] = Record{
			ID:          sb.ID,
			Name:        sb.Name,
			Position:    vec(sb.Position),
			Rotation:    vec(sb.Rotation),
			Scale:       vec(sb.Scale),
			Velocity:    vec(sb.Velocity),
			Temperature: sb.Temperature,
			Mass:        sb.Mass,
			Volume:      sb.Volume,
			Density:     sb.Density,
		}
	}
	return records, nil
}

// legacyRecord mirrors the legacy layout. Every field except ID is required.
type legacyRecord struct {
	ID          *json.Number  `json:"ID"`
	Name        *string       `json:"Name"`
	Position    *string       `json:"Position"`
	Rotation    *string       `json:"Rotation"`
	Scale       *string       `json:"Scale"`
	Velocity    *string       `json:"Velocity"`
	Temperature *decimalField `json:"Temperature"`
	Mass        *decimalField `json:"Mass"`
	Volume      *decimalField `json:"Volume"`
	Density     *decimalField `json:"Density"`
}

// decimalField accepts a decimal written either as a JSON string or a number.
type decimalField float64

func (d *decimalField) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = decimalField(f)
	return nil
}

func decodeLegacy(data []byte) ([]Record, error) {
	chunks, err := splitRecords(data)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(chunks))
	for i, chunk := range chunks {
		r, err := decodeLegacyRecord(chunk)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func decodeLegacyRecord(chunk []byte) (Record, error) {
	std, err := hujson.Standardize(chunk)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	var lr legacyRecord
	if err := json.Unmarshal(std, &lr); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	var r Record
	if lr.ID != nil {
		id, err := lr.ID.Int64()
		if err != nil {
			return Record{}, fmt.Errorf("ID %q: %w", lr.ID.String(), ErrMalformedRecord)
		}
		r.ID = int(id)
	}
	if lr.Name == nil {
		return Record{}, missing("Name")
	}
	r.Name = *lr.Name

	vectors := []struct {
		name string
		src  *string
		dst  *Vector3
	}{
		{"Position", lr.Position, &r.Position},
		{"Rotation", lr.Rotation, &r.Rotation},
		{"Scale", lr.Scale, &r.Scale},
		{"Velocity", lr.Velocity, &r.Velocity},
	}
	for _, v := range vectors {
		if v.src == nil {
			return Record{}, missing(v.name)
		}
		parsed, err := ParseVector3(*v.src)
		if err != nil {
			return Record{}, fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dst = parsed
	}

	decimals := []struct {
		name string
		src  *decimalField
		dst  *float64
	}{
		{"Temperature", lr.Temperature, &r.Temperature},
		{"Mass", lr.Mass, &r.Mass},
		{"Volume", lr.Volume, &r.Volume},
		{"Density", lr.Density, &r.Density},
	}
	for _, d := range decimals {
		if d.src == nil {
			return Record{}, missing(d.name)
		}
		*d.dst = float64(*d.src)
	}
	return r, nil
}

func missing(field string) error {
	return fmt.Errorf("missing field %q: %w", field, ErrMalformedRecord)
}

// splitRecords cuts data into top-level {...} blocks. Braces inside strings are
// ignored. Only whitespace and commas may appear between blocks.
func splitRecords(data []byte) ([][]byte, error) {
	var out [][]byte
	depth, start := 0, 0
	inString, escaped := false, false
	for i, c := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth == 0 {
				return nil, fmt.Errorf("offset %d: string outside a record: %w", i, ErrMalformedRecord)
			}
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				return nil, fmt.Errorf("offset %d: unmatched '}': %w", i, ErrMalformedRecord)
			}
			depth--
			if depth == 0 {
				out = append(out, data[start:i+1])
			}
		case ' ', '\t', '\r', '\n', ',':
		default:
			if depth == 0 {
				return nil, fmt.Errorf("offset %d: unexpected %q outside a record: %w", i, c, ErrMalformedRecord)
			}
		}
	}
	if depth != 0 || inString {
		return nil, fmt.Errorf("unterminated record: %w", ErrMalformedRecord)
	}
	return out, nil
}
