package record_test

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/sortbench/record"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    record.Record
		wantErr bool
	}{
		{name: "preserved", input: "50:1", want: record.Record{Key: 50, Status: record.Preserved}},
		{name: "deforested with spaces", input: " 7:3 ", want: record.Record{Key: 7, Status: record.Deforested}},
		{name: "missing separator", input: "50", wantErr: true},
		{name: "bad key", input: "abc:1", wantErr: true},
		{name: "negative key", input: "-4:1", wantErr: true},
		{name: "status out of range", input: "10:4", wantErr: true},
		{name: "status zero", input: "10:0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := record.ParseRecord(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, record.ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordString(t *testing.T) {
	assert.Equal(t, "10:2", record.Record{Key: 10, Status: record.Burned}.String())
	assert.Equal(t, "Deforested", record.Deforested.String())
	assert.Equal(t, "Status(9)", record.Status(9).String())
}

func TestDatasetClone(t *testing.T) {
	d := record.Dataset{{Key: 1, Status: record.Preserved}, {Key: 2, Status: record.Burned}}
	c := d.Clone()
	c[0].Key = 99
	assert.Equal(t, uint64(1), d[0].Key)
	assert.Nil(t, record.Dataset(nil).Clone())
}

func TestReadWrite(t *testing.T) {
	input := "50:1\n10:2\n\n30:1\n"
	data, err := record.Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"50:1", "10:2", "30:1"}, data.Strings())

	var buf bytes.Buffer
	require.NoError(t, record.Write(&buf, data))
	assert.Equal(t, "50:1\n10:2\n30:1\n", buf.String())
}

func TestReadReportsLine(t *testing.T) {
	_, err := record.Read(strings.NewReader("1:1\n2:2\n3:x\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrMalformed)
	assert.Contains(t, err.Error(), "line 3")
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	data := record.NewRandomGenerator(1).Generate(100)
	require.NoError(t, record.SaveFile(path, data))

	loaded, err := record.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)

	_, err = record.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRandomGenerator(t *testing.T) {
	g := record.NewRandomGenerator(42)
	data := g.Generate(20000)
	require.Len(t, data, 20000)

	for _, r := range data {
		require.True(t, r.Status.Valid(), "invalid status %v", r.Status)
		require.GreaterOrEqual(t, r.Key, uint64(1))
		require.LessOrEqual(t, r.Key, uint64(99_999_999))
	}

	counts := data.StatusCounts()
	preserved := float64(counts[record.Preserved]) / float64(len(data))
	assert.InDelta(t, 0.9, preserved, 0.02)

	assert.Equal(t, data, g.Generate(20000), "same seed and size must reproduce the dataset")
	assert.Empty(t, g.Generate(0))
}

func TestRandomGeneratorWeights(t *testing.T) {
	g := &record.RandomGenerator{Seed: 3, Weights: [3]int{0, 0, 100}}
	for _, r := range g.Generate(500) {
		require.Equal(t, record.Deforested, r.Status)
	}
}

func TestRandomGeneratorSingleProcessor(t *testing.T) {
	g := record.NewRandomGenerator(17)
	parallel := g.Generate(3*4096 + 5)

	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))
	assert.Equal(t, parallel, g.Generate(3*4096+5), "batching must not depend on GOMAXPROCS")
}
