package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcf-ids/internal/vcf"
)

const testVCF = "##fileformat=VCFv4.2\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
	"chr1\t100\t.\tA\tT\t50\tPASS\tDP=10\n" +
	"chr1\t200\trs1\tG\tC,T\t.\t.\t.\n"

// runCLI runs the command with an isolated config file and returns exit code, stdout and stderr.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--config", cfgFile}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.vcf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Default(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--input", writeInput(t, testVCF))
	require.Equal(t, ExitSuccess, code, stderr)

	want := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"chr1\t100\tchr1_100_A_T\tA\tT\t50\tPASS\tDP=10\n" +
		"chr1\t200\tchr1_200_G_C,T\tG\tC,T\t.\t.\t.\n"
	assert.Equal(t, want, stdout)
	assert.Contains(t, stderr, "rewrote record ids")
}

func TestRun_ShortFlags(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-i", writeInput(t, testVCF), "-s", "-p", "v_", "-q")
	require.Equal(t, ExitSuccess, code, stderr)

	assert.Contains(t, stdout, "chr1\t100\tv_6db640e8\tA")
	assert.Contains(t, stdout, "chr1\t200\tv_445cf3de\tG")
	assert.Empty(t, stderr)
}

func TestRun_Delimiter(t *testing.T) {
	code, stdout, _ := runCLI(t, "--input", writeInput(t, testVCF), "--delim", ":")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "\tchr1:100:A:T\t")
}

func TestRun_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.vcf")
	code, stdout, stderr := runCLI(t, "-i", writeInput(t, testVCF), "-o", outPath)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\tchr1_100_A_T\t")
}

func TestRun_ConfigFileDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("prefix: cfg_\ndelim: \"-\"\n"), 0o644))
	input := writeInput(t, testVCF)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgFile, "-i", input}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())
	assert.Contains(t, stdout.String(), "\tcfg_chr1-100-A-T\t")

	// Flags override the file
	viper.Reset()
	stdout.Reset()
	code = run([]string{"--config", cfgFile, "-i", input, "-p", "flag_"}, &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())
	assert.Contains(t, stdout.String(), "\tflag_chr1-100-A-T\t")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"missing input flag", nil, ExitUsage, "--input is required"},
		{"unknown flag", []string{"--bogus"}, ExitUsage, "unknown flag"},
		{"unknown hash", []string{"-i", "x.vcf", "-s", "--hash-func", "md5"}, ExitUsage, `unknown hash function "md5"`},
		{"missing file", []string{"-i", "does-not-exist.vcf"}, ExitError, "Hint: Check that the file path is correct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantErr)
			assert.Empty(t, stdout)
		})
	}
}

func TestRun_UnusedHashFuncIgnored(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-i", writeInput(t, testVCF), "--hash-func", "md5")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "\tchr1_100_A_T\t")
}

func TestRun_InvalidUTF8(t *testing.T) {
	input := writeInput(t, testVCF+"chr1\t300\t.\t\xff\tT\t.\t.\t.\nchr1\t400\t.\tA\tG\t.\t.\t.\n")

	code, stdout, stderr := runCLI(t, "-i", input)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "REF is not valid UTF-8")
	assert.Contains(t, stdout, "chr1_200_G_C,T")
	assert.NotContains(t, stdout, "chr1\t400")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	assert.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(stdout, "vcf-ids version dev"))
}

func TestConfigCommands(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")

	var stdout, stderr bytes.Buffer
	cli := func(args ...string) int {
		viper.Reset()
		stdout.Reset()
		stderr.Reset()
		return run(append([]string{"--config", cfgFile}, args...), &stdout, &stderr)
	}

	require.Equal(t, ExitSuccess, cli("config"))
	assert.Contains(t, stdout.String(), "No configuration set")

	require.Equal(t, ExitSuccess, cli("config", "set", "prefix", "var_"), stderr.String())
	require.Equal(t, ExitSuccess, cli("config", "set", "sha1-hash", "yes"), stderr.String())

	require.Equal(t, ExitSuccess, cli("config", "get", "prefix"))
	assert.Equal(t, "var_\n", stdout.String())

	require.Equal(t, ExitSuccess, cli("config"))
	assert.Contains(t, stdout.String(), "prefix: var_")
	assert.Contains(t, stdout.String(), "sha1-hash: true")
	assert.NotContains(t, stdout.String(), "delim")

	assert.Equal(t, ExitError, cli("config", "get", "delim"))
	assert.Equal(t, ExitUsage, cli("config", "set", "color", "blue"))

	// Stored defaults apply to the rewrite
	require.Equal(t, ExitSuccess, cli("-i", writeInput(t, testVCF)), stderr.String())
	assert.Contains(t, stdout.String(), "\tvar_6db640e8\t")

	// Only sha1-hash takes boolean words; string keys keep them literally
	require.Equal(t, ExitSuccess, cli("config", "set", "sha1-hash", "off"), stderr.String())
	require.Equal(t, ExitSuccess, cli("config", "set", "prefix", "no"), stderr.String())
	require.Equal(t, ExitSuccess, cli("config", "set", "delim", "on"), stderr.String())
	assert.Equal(t, ExitUsage, cli("config", "set", "sha1-hash", "maybe"))

	require.Equal(t, ExitSuccess, cli("config", "get", "prefix"))
	assert.Equal(t, "no\n", stdout.String())

	require.Equal(t, ExitSuccess, cli("-i", writeInput(t, testVCF)), stderr.String())
	assert.Contains(t, stdout.String(), "\tnochr1on100onAonT\t")
	assert.NotContains(t, stdout.String(), "false")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseOutput(t *testing.T) {
	closeErr := errors.New("disk full")
	runErr := errors.New("read record: bad line")

	err := closeOutput(closerFunc(func() error { return closeErr }), nil)
	var ee *vcf.EncodeError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, closeErr)

	// The run error wins over a close error
	err = closeOutput(closerFunc(func() error { return closeErr }), runErr)
	assert.Equal(t, runErr, err)

	called := false
	err = closeOutput(closerFunc(func() error { called = true; return nil }), nil)
	assert.NoError(t, err)
	assert.True(t, called)
}
