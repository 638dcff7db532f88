package main

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0666))
}

func runCapture(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"gunzip"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	type testRow struct {
		Name string
		Args []string
	}

	testData := [...]testRow{
		{"no-args", nil},
		{"too-many-args", []string{"a", "b", "c"}},
		{"short-help", []string{"-h"}},
		{"long-help", []string{"--help"}},
		{"slash-help", []string{"/help"}},
		{"slash-help-upper", []string{"/HELP"}},
		{"unknown-flag", []string{"--no-such-flag", "in.gzip"}},
		{"copyright-too-many-args", []string{"-c", "a", "b", "c"}},
		{"help-and-copyright", []string{"--copyright", "--help"}},
	}

	for _, row := range testData {
		row := row
		t.Run(row.Name, func(t *testing.T) {
			code, stdout, stderr := runCapture(row.Args...)
			assert.Equal(t, exitError, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestRun_Copyright(t *testing.T) {
	for _, arg := range []string{"-c", "--copyright", "/copyright", "/Copyright"} {
		code, stdout, stderr := runCapture(arg)
		assert.Equal(t, exitError, code, arg)
		assert.Contains(t, stdout, "GNU General Public License", arg)
		assert.Empty(t, stderr, arg)
	}
}

func TestDeriveName(t *testing.T) {
	type testRow struct {
		Input    string
		Expected string
		IsErr    bool
	}

	testData := [...]testRow{
		{"foo.gzip", "foo", false},
		{"FOO.GZIP", "FOO", false},
		{"foo.GZip", "foo", false},
		{"foo.gz", "foo.gz", false},
		{"foo.tar", "foo.tar", false},
		{filepath.Join("dir", "a.b.gzip"), "a.b", false},
		{".gzip", "", true},
	}

	for _, row := range testData {
		name, err := deriveName(row.Input)
		if row.IsErr {
			assert.Error(t, err, row.Input)
			continue
		}
		if assert.NoError(t, err, row.Input) {
			assert.Equal(t, row.Expected, name, row.Input)
		}
	}
}

func TestRun_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	content := []byte("explicit output file\n")
	input := filepath.Join(dir, "in.gzip")
	output := filepath.Join(dir, "out.txt")
	writeFile(t, input, gzipBytes(t, content))

	// A longer pre-existing file must be truncated.
	writeFile(t, output, bytes.Repeat([]byte("x"), 1000))

	code, _, stderr := runCapture(input, output)
	require.Equal(t, exitOK, code, stderr)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestRun_OutputDirectory(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0777))

	content := []byte("into a directory\n")
	input := filepath.Join(dir, "Data.Bin.GZIP")
	writeFile(t, input, gzipBytes(t, content))

	code, _, stderr := runCapture(input, outDir)
	require.Equal(t, exitOK, code, stderr)

	got, err := os.ReadFile(filepath.Join(outDir, "Data.Bin"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestRun_OmittedOutput(t *testing.T) {
	srcDir := t.TempDir()
	workDir := t.TempDir()

	content := []byte("into the working directory\n")
	input := filepath.Join(srcDir, "report.gz")
	writeFile(t, input, gzipBytes(t, content))

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	defer func() {
		_ = os.Chdir(oldWD)
	}()

	code, _, stderr := runCapture(input)
	require.Equal(t, exitOK, code, stderr)

	got, err := os.ReadFile(filepath.Join(workDir, "report.gz"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestRun_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	oldHome, hadHome := os.LookupEnv("HOME")
	require.NoError(t, os.Setenv("HOME", home))
	homedir.DisableCache = true
	defer func() {
		homedir.DisableCache = false
		if hadHome {
			_ = os.Setenv("HOME", oldHome)
		} else {
			_ = os.Unsetenv("HOME")
		}
	}()

	content := []byte("tilde\n")
	writeFile(t, filepath.Join(home, "t.gzip"), gzipBytes(t, content))

	code, _, stderr := runCapture("~/t.gzip", "~/t.txt")
	require.Equal(t, exitOK, code, stderr)

	got, err := os.ReadFile(filepath.Join(home, "t.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func corruptGzip(t *testing.T, content []byte) []byte {
	t.Helper()
	data := gzipBytes(t, content)
	data[len(data)-8] ^= 0xff
	return data
}

func TestRun_DecodeError(t *testing.T) {
	dir := t.TempDir()
	content := []byte("the checksum of this member is wrong\n")
	input := filepath.Join(dir, "bad.gzip")
	output := filepath.Join(dir, "bad.txt")
	writeFile(t, input, corruptGzip(t, content))

	code, _, stderr := runCapture(input, output)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "checksum mismatch")

	// Without --atomic, the bytes written before the failure stay.
	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestRun_Atomic(t *testing.T) {
	dir := t.TempDir()
	content := []byte("atomic output\n")

	good := filepath.Join(dir, "good.gzip")
	writeFile(t, good, gzipBytes(t, content))
	code, _, stderr := runCapture("--atomic", good, filepath.Join(dir, "good.txt"))
	require.Equal(t, exitOK, code, stderr)
	got, err := os.ReadFile(filepath.Join(dir, "good.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, got)

	bad := filepath.Join(dir, "bad.gzip")
	writeFile(t, bad, corruptGzip(t, content))
	code, _, _ = runCapture("-a", bad, filepath.Join(dir, "bad.txt"))
	assert.Equal(t, exitError, code)
	_, err = os.Stat(filepath.Join(dir, "bad.txt"))
	assert.True(t, os.IsNotExist(err), "expected no output file, got %v", err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"good.gzip", "good.txt", "bad.gzip"}, names)
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCapture(filepath.Join(dir, "missing.gzip"), filepath.Join(dir, "out"))
	assert.Equal(t, exitError, code)
	assert.NotEmpty(t, stderr)
}

func TestRun_SameFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "self")
	data := gzipBytes(t, []byte("do not truncate me\n"))
	writeFile(t, input, data)

	code, _, stderr := runCapture(input, input)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, errSameFile.Error())

	got, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRun_Formats(t *testing.T) {
	dir := t.TempDir()
	content := []byte("format flag\n")
	input := filepath.Join(dir, "in.gzip")
	writeFile(t, input, gzipBytes(t, content))

	code, _, stderr := runCapture("--format=auto", "--memory-level=1", "--single-stream", input, filepath.Join(dir, "out"))
	require.Equal(t, exitOK, code, stderr)

	code, _, stderr = runCapture("--format=zlib", input, filepath.Join(dir, "out2"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "invalid header")

	code, _, _ = runCapture("--format=bzip2", input)
	assert.Equal(t, exitError, code)
}
