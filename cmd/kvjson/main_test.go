package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"kvjson"}, args...))
	return stdout.String(), err
}

func TestLocalArgsValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    localArgs
		wantErr bool
	}{
		{"file", localArgs{file: "a.txt"}, false},
		{"folder with sub-folders", localArgs{folder: "localization", subFolders: []string{"a"}}, false},
		{"nothing", localArgs{}, true},
		{"both", localArgs{file: "a.txt", folder: "d"}, true},
		{"skip with folder", localArgs{folder: "d", skip: true}, true},
		{"sub-folders without folder", localArgs{file: "a.txt", subFolders: []string{"a"}}, true},
		{"too many sub-folders", localArgs{folder: "d", subFolders: []string{"1", "2", "3", "4", "5", "6", "7", "8"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalParser_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "english.txt")
	require.NoError(t, os.WriteFile(path, []byte("\"AAA\" \"bbb\"\n"), 0o644))

	out, err := runApp(t, "local_parser", "-k", "-f", path)

	require.NoError(t, err)
	assert.Equal(t, "{\"AAA\":\"bbb\"}\n", out)
}

func TestLocalParser_DroppedFilePrintsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "english.txt")
	require.NoError(t, os.WriteFile(path, []byte("\"AAA\" \"bbb\"\n"), 0o644))

	out, err := runApp(t, "local_parser", "-f", path)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLocalParser_FolderPretty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "citadel_gc")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "english.txt"), []byte("\"AAA\" \"bbb\"\n"), 0o644))

	out, err := runApp(t, "--pretty", "local_parser", "-k", "-d", dir)

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"category\": \"citadel_gc\",\n  \"languages\": [\n    {\n      \"AAA\": \"bbb\"\n    }\n  ]\n}\n", out)
}

func TestLocalParser_InvalidArgs(t *testing.T) {
	_, err := runApp(t, "local_parser", "-f", "a.txt", "-d", "dir")

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.ExitCode())
}
