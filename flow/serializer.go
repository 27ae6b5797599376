package flow

import (
	"encoding/base64"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Serializer wraps opaque node state (and a port's literal value) into
// a self-contained base64 string blob suitable for a project file's
// textual fields, and back. FlowCore never otherwise inspects the
// value it's handed; this is the host's one hook into the shape of
// "state data" described in §6.
type Serializer interface {
	Serialize(v any) (string, error)
	Deserialize(blob string) (any, error)
}

type jsonSerializer struct{}

// NewJSONSerializer returns the default Serializer: encoding/json
// marshaling, base64-wrapped. This is the serializer a Flow uses unless
// a host selects a different one in FlowOptions.
func NewJSONSerializer() Serializer { return jsonSerializer{} }

func (jsonSerializer) Serialize(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (jsonSerializer) Deserialize(blob string) (any, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

type yamlSerializer struct{}

// NewYAMLSerializer returns an alternate Serializer for hosts that want
// a human-editable project file, backed by gopkg.in/yaml.v3 (already a
// teacher dependency, used there as an alternate config/report format).
func NewYAMLSerializer() Serializer { return yamlSerializer{} }

func (yamlSerializer) Serialize(v any) (string, error) {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (yamlSerializer) Deserialize(blob string) (any, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, err
	}
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
