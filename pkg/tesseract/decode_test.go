package tesseract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawheel/olap-client-go/pkg/tesseract"
	"github.com/datawheel/olap-client-go/pkg/testhelpers"
)

func TestDecodeCube(t *testing.T) {
	cube, err := tesseract.DecodeCube([]byte(testhelpers.FixtureCubeJSON))
	require.NoError(t, err)
	assert.Equal(t, testhelpers.FixtureCubeName, cube.Name)
	assert.Len(t, cube.Dimensions, 4)
	assert.Len(t, cube.Measures, 2)

	_, err = tesseract.DecodeCube([]byte(`{"name":`))
	assert.Error(t, err)
}

func TestDecodeMembers(t *testing.T) {
	payload := []byte(`{"data": [
		{"ID": 1, "Label": "Animal Products", "ES Label": "Productos Animales"},
		{"ID": 2, "Label": "Vegetable Products", "ES Label": ""},
		{"ID": 3.5, "Label": "Half"},
		{"ID": "xx"}
	]}`)

	members, err := tesseract.DecodeMembers(payload, "")
	require.NoError(t, err)
	require.Len(t, members, 4)
	assert.Equal(t, "1", members[0].Key)
	assert.Equal(t, "Animal Products", members[0].Name)
	assert.Equal(t, "Animal Products", members[0].Caption)
	assert.Equal(t, "3.5", members[2].Key)
	assert.Equal(t, "xx", members[3].Key)
	assert.Equal(t, "xx", members[3].Name, "key substitutes for a missing label")

	members, err = tesseract.DecodeMembers(payload, "ES")
	require.NoError(t, err)
	assert.Equal(t, "Productos Animales", members[0].Caption)
	assert.Equal(t, "Vegetable Products", members[1].Caption, "empty localized labels fall back")
	assert.Equal(t, "Half", members[2].Caption, "missing locale column falls back")
}

func TestDecodeSchema(t *testing.T) {
	cubes, err := tesseract.DecodeSchema([]byte(
		`{"name":"server","annotations":{},"cubes":[` + testhelpers.FixtureCubeJSON + `]}`))
	require.NoError(t, err)
	require.Len(t, cubes, 1)
	assert.Equal(t, testhelpers.FixtureCubeName, cubes[0].Name)
}
