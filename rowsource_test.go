package kohonen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeCSV(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "data.csv")
	assert.Nil(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCSVRowSource_HeaderAndNext(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2\n3,4\n")
	src, err := NewCSVRowSource(path, ',')
	assert.Nil(t, err)
	defer src.Close()

	header, err := src.Header()
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, header)

	rec, ok, err := src.Next()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, rec)

	rec, ok, err = src.Next()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"3", "4"}, rec)

	_, ok, err = src.Next()
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestCSVRowSource_Rewind(t *testing.T) {
	path := writeCSV(t, "a\n1\n2\n")
	src, err := NewCSVRowSource(path, ',')
	assert.Nil(t, err)
	defer src.Close()

	_, _, _ = src.Next()
	_, _, _ = src.Next()
	_, ok, _ := src.Next()
	assert.False(t, ok)

	assert.Nil(t, src.Rewind())
	rec, ok, err := src.Next()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"1"}, rec)
}

func TestCSVRowSource_CustomDelimiter(t *testing.T) {
	path := writeCSV(t, "a;b\n1;2\n")
	src, err := NewCSVRowSource(path, ';')
	assert.Nil(t, err)
	defer src.Close()

	rec, ok, err := src.Next()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, rec)
}
