package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Number is a loosely typed integer field. Numbers and numeric strings
// decode to Value; anything else sets Invalid and keeps the text in Raw
// so Convert can skip that one record.
type Number struct {
	Value   int
	Raw     string
	Invalid bool
}

func (n *Number) parse(raw string, quoted bool) {
	*n = Number{Raw: raw}
	s := strings.TrimSpace(raw)
	if v, err := strconv.Atoi(s); err == nil {
		n.Value = v
		return
	}
	if quoted {
		n.Invalid = true
		return
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		n.Value = int(v)
		return
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		n.Value = int(f)
		return
	}
	n.Invalid = true
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = Number{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.parse(s, true)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		n.parse(string(data), false)
	default:
		*n = Number{Raw: string(data), Invalid: true}
	}
	return nil
}

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*n = Number{Raw: fmt.Sprintf("<%s>", value.ShortTag()), Invalid: true}
		return nil
	}
	switch value.ShortTag() {
	case "!!null":
		*n = Number{}
	case "!!int", "!!float":
		n.parse(value.Value, false)
	default:
		n.parse(value.Value, true)
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.Invalid {
		return json.Marshal(n.Raw)
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

func (n Number) MarshalYAML() (interface{}, error) {
	if n.Invalid {
		return n.Raw, nil
	}
	return n.Value, nil
}
