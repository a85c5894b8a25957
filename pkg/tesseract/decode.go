package tesseract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/datawheel/olap-client-go/pkg/schema"
)

// SchemaRecord mirrors the /cubes response of a Tesseract server.
type SchemaRecord struct {
	Name        string              `json:"name"`
	Annotations map[string]string   `json:"annotations"`
	Cubes       []schema.CubeRecord `json:"cubes"`
}

// DecodeSchema decodes a full /cubes response into cube trees.
func DecodeSchema(data []byte) ([]*schema.Cube, error) {
	var record SchemaRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	cubes := make([]*schema.Cube, 0, len(record.Cubes))
	for _, rec := range record.Cubes {
		cubes = append(cubes, schema.NewCube(rec))
	}
	return cubes, nil
}

// DecodeCube decodes a single /cubes/<name> response into a cube tree.
func DecodeCube(data []byte) (*schema.Cube, error) {
	var record schema.CubeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode cube: %w", err)
	}
	return schema.NewCube(record), nil
}

// DecodeMembers decodes a members.jsonrecords response. The caption prefers
// the "<locale> Label" column when a locale is given, then "Label", then the
// member key.
func DecodeMembers(data []byte, locale string) ([]schema.Member, error) {
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}

	members := make([]schema.Member, 0, len(payload.Data))
	for _, row := range payload.Data {
		key := stringify(row["ID"])
		name, _ := row["Label"].(string)
		if name == "" {
			name = key
		}
		caption := name
		if locale != "" {
			if localized, _ := row[locale+" Label"].(string); localized != "" {
				caption = localized
			}
		}
		members = append(members, schema.Member{Key: key, Name: name, Caption: caption})
	}
	return members, nil
}

// stringify renders a decoded JSON scalar as a member key. Integral floats
// lose the fraction marker so numeric IDs round-trip as "2019", not "2019.0".
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
