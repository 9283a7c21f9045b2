package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/passgen-go/internal/clipboard"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/widget"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runWith(t *testing.T, sink clipboard.Sink, stdin string, tty bool, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(args, env{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: &stderr,
		sink:   sink,
		tty:    tty,
	})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func onlyFrom(t *testing.T, pw, alphabet string) {
	t.Helper()
	for _, ch := range pw {
		assert.True(t, strings.ContainsRune(alphabet, ch), "unexpected %q in %q", ch, pw)
	}
}

func TestRunDefaults(t *testing.T) {
	res := runWith(t, &clipboard.Memory{}, "", false)

	require.Equal(t, exitOK, res.code, res.stderr)
	out := lines(res.stdout)
	require.Len(t, out, 1)
	assert.Len(t, out[0], crypto.DefaultLength)
}

func TestRunFlags(t *testing.T) {
	res := runWith(t, &clipboard.Memory{}, "", false, "-l", "12", "--numbers=false", "--symbols=false", "-c", "3")

	require.Equal(t, exitOK, res.code, res.stderr)
	out := lines(res.stdout)
	require.Len(t, out, 3)
	for _, pw := range out {
		assert.Len(t, pw, 12)
		onlyFrom(t, pw, crypto.UppercaseChars+crypto.LowercaseChars)
	}
}

func TestRunEmptyPoolAlerts(t *testing.T) {
	res := runWith(t, &clipboard.Memory{}, "", false, "--upper=false", "--lower=false", "-n=false", "-s=false")

	assert.Equal(t, exitError, res.code)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "! "+widget.MsgSelectClass+"\n", res.stderr)
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too short", []string{"-l", "7"}},
		{"too long", []string{"--length", "51"}},
		{"zero count", []string{"-c", "0"}},
		{"unknown source", []string{"--source", "dice"}},
		{"unknown flag", []string{"--bogus"}},
		{"positional", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runWith(t, &clipboard.Memory{}, "", false, tt.args...)
			assert.Equal(t, exitUsage, res.code)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestRunLengthOutOfRangeMessage(t *testing.T) {
	res := runWith(t, &clipboard.Memory{}, "", false, "-l", "51")
	assert.Equal(t, exitUsage, res.code)
	assert.Equal(t, "error: "+widget.ErrLengthOutOfRange.Error()+"\n", res.stderr)
}

func TestRunHelp(t *testing.T) {
	res := runWith(t, &clipboard.Memory{}, "", false, "--help")
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stderr, "--require-each")
}

func TestRunCopy(t *testing.T) {
	sink := &clipboard.Memory{}
	res := runWith(t, sink, "", false, "--copy", "-c", "2")

	require.Equal(t, exitOK, res.code, res.stderr)
	out := lines(res.stdout)
	require.Len(t, out, 2)
	assert.Equal(t, out[1], sink.Text())
	assert.Equal(t, widget.MsgCopied+"\n", res.stderr)
}

func TestRunCopyFailure(t *testing.T) {
	res := runWith(t, clipboard.Failing{Err: errors.New("no display")}, "", false, "--copy")

	assert.Equal(t, exitError, res.code)
	assert.Len(t, lines(res.stdout), 1)
	assert.Equal(t, "! "+widget.MsgCopyFailed+"\n", res.stderr)
}

func TestRunPreferencesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("length = 10\nuppercase = false\nlowercase = false\nsymbols = false\n"), 0o600))

	res := runWith(t, &clipboard.Memory{}, "", false, "--config", path)
	require.Equal(t, exitOK, res.code, res.stderr)
	pw := lines(res.stdout)[0]
	assert.Len(t, pw, 10)
	onlyFrom(t, pw, crypto.NumberChars)

	// Flags win over the file.
	res = runWith(t, &clipboard.Memory{}, "", false, "--config", path, "-l", "20")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Len(t, lines(res.stdout)[0], 20)
}

func TestRunMissingPreferencesFile(t *testing.T) {
	res := runWith(t, &clipboard.Memory{}, "", false, "--config", filepath.Join(t.TempDir(), "none.toml"))
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "loading preferences")
}

func TestInteractiveSession(t *testing.T) {
	sink := &clipboard.Memory{}
	// Copy before generating, reject a bad length, then letters only.
	input := strings.Join([]string{
		"c",
		"l 4",
		"l 10",
		"n",
		"s",
		"g",
		"c",
		"?",
		"q",
	}, "\n") + "\n"

	res := runWith(t, sink, input, true)
	require.Equal(t, exitOK, res.code, res.stderr)

	out := lines(res.stdout)
	require.Len(t, out, 1)
	assert.Len(t, out[0], 10)
	onlyFrom(t, out[0], crypto.UppercaseChars+crypto.LowercaseChars)
	assert.Equal(t, out[0], sink.Text())

	assert.Contains(t, res.stderr, "! "+widget.MsgNothingToCopy)
	assert.Contains(t, res.stderr, widget.ErrLengthOutOfRange.Error())
	assert.Contains(t, res.stderr, "numbers: off")
	assert.Contains(t, res.stderr, "symbols: off")
	assert.Contains(t, res.stderr, widget.MsgCopied)
	assert.Contains(t, res.stderr, "pool size: 52")
}

func TestInteractiveEmptyPoolKeepsGoing(t *testing.T) {
	input := "g\nu\nw\nn\ns\ng\nn\ng\n"

	res := runWith(t, &clipboard.Memory{}, input, false, "-i")
	require.Equal(t, exitOK, res.code, res.stderr)

	out := lines(res.stdout)
	require.Len(t, out, 2)
	assert.Contains(t, res.stderr, "! "+widget.MsgSelectClass)
	onlyFrom(t, out[1], crypto.NumberChars)
}

func TestInteractiveCopyFailureKeepsGoing(t *testing.T) {
	res := runWith(t, clipboard.Failing{Err: errors.New("no display")}, "g\nc\ng\nq\n", false, "-i")
	require.Equal(t, exitOK, res.code, res.stderr)

	assert.Len(t, lines(res.stdout), 2)
	assert.Contains(t, res.stderr, "! "+widget.MsgCopyFailed)
}

func TestNonTTYWithoutArgsIsBatch(t *testing.T) {
	res := runWith(t, &clipboard.Memory{}, "q\n", false)
	require.Equal(t, exitOK, res.code)
	assert.Len(t, lines(res.stdout), 1)
	assert.NotContains(t, res.stderr, "commands:")
}
