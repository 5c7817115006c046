package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testParts()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvColumns, rows[0])

	headlight := rows[1]
	assert.Equal(t, "Headlight", headlight[0])
	assert.Equal(t, "2013 Honda Accord Headlight Assembly OEM", headlight[1])
	assert.Equal(t, "https://www.ebay.com/itm/334455", headlight[2])
	assert.Equal(t, "299.99", headlight[4])
	assert.Equal(t, "headlight", headlight[5])
	assert.Equal(t, "39.99", headlight[6])
	assert.Equal(t, "7.5", headlight[7])
	assert.Equal(t, "High", headlight[8])
	assert.Equal(t, "car", headlight[9])
	assert.Equal(t, "2013", headlight[10])
	assert.Equal(t, "2024-03-15T10:30:00Z", headlight[15])

	tailgate := rows[2]
	assert.Equal(t, "Tailgate", tailgate[0])
	assert.Empty(t, tailgate[1])
	assert.Equal(t, "1250", tailgate[4])
	assert.Empty(t, tailgate[5])
	assert.Equal(t, "truck", tailgate[9])
}

func TestWriteCSV_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvColumns, rows[0])
}
