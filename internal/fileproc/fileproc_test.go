package fileproc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataengine/internal/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessValidCSV(t *testing.T) {
	content := "fecha,producto,categoria,precio_unitario,cantidad,descuento\n2024-01-05,Widget,Gadgets,10.00,2,0\n"
	path := writeTemp(t, "sales.csv", content)

	r := Process(types.Item{Type: types.TypeCSV, Path: path})
	assert.Equal(t, types.StatusOK, r.Status)
	assert.Equal(t, "sales.csv", r.Filename)
	assert.Equal(t, 1, r.LinesProcessed)
	assert.NotEmpty(t, r.Metrics)
}

func TestProcessCorruptCSVIsError(t *testing.T) {
	path := writeTemp(t, "bad.csv", "not,a,valid,header\n1,2,3,4\n")
	r := Process(types.Item{Type: types.TypeCSV, Path: path})
	assert.Equal(t, types.StatusError, r.Status)
	assert.NotEmpty(t, r.Errors)
	assert.Empty(t, r.Metrics)
}

func TestProcessPartialLog(t *testing.T) {
	content := "2024-01-05 08:15:00 [INFO] [auth] ok\ngarbage line\n"
	path := writeTemp(t, "app.log", content)

	r := Process(types.Item{Type: types.TypeLog, Path: path})
	assert.Equal(t, types.StatusPartial, r.Status)
	assert.NotEmpty(t, r.Metrics)
	assert.Equal(t, 1, r.LinesFailed)
}

func TestProcessUnsupportedType(t *testing.T) {
	r := Process(types.Item{Type: types.TypeUnknown, Path: "whatever"})
	assert.Equal(t, types.StatusError, r.Status)
	assert.Empty(t, r.Metrics)
}

func TestProcessMissingFile(t *testing.T) {
	r := Process(types.Item{Type: types.TypeXML, Path: filepath.Join(t.TempDir(), "missing.xml")})
	assert.Equal(t, types.StatusError, r.Status)
	assert.GreaterOrEqual(t, r.DurationMS, int64(0))
}
