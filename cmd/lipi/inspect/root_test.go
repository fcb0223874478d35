// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/lipi/cmd/lipi/cli"
	"github.com/bureau-foundation/lipi/lib/binhash"
	"github.com/bureau-foundation/lipi/lib/compress"
	"github.com/bureau-foundation/lipi/lib/config"
	"github.com/bureau-foundation/lipi/lib/testutil"
)

// sampleMessage is {1: true, 2: "hi", 3: u8 list (1 2 3)}.
const sampleMessage = "03 11 28 02 68 69 3b 32 01 02 03"

const sampleView = "1: true\n2: \"hi\"\n3: (1 2 3)\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the lipi command tree with stdin and no ambient
// configuration.
func execute(t *testing.T, stdin []byte, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	var stdout, stderr bytes.Buffer
	streams := Streams{In: bytes.NewReader(stdin), Out: &stdout, Err: &stderr}
	err := Root(streams).Execute(args)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestRootDefaultsToView(t *testing.T) {
	got := execute(t, testutil.Hex(t, sampleMessage))
	if got.err != nil {
		t.Fatalf("lipi: %v", got.err)
	}
	if got.stdout != sampleView {
		t.Errorf("lipi output =\n%s\nwant\n%s", got.stdout, sampleView)
	}
}

func TestViewMessageWithFrameMagic(t *testing.T) {
	// The first four bytes match the LZ4 frame magic but the input is a
	// plain message.
	got := execute(t, testutil.Hex(t, "04 22 4d 18 03 61 62 63 31 40"), "view")
	if got.err != nil {
		t.Fatalf("lipi view: %v", got.err)
	}
	want := "2: 77u\n1: \"abc\"\n3: true\n4: false\n"
	if got.stdout != want {
		t.Errorf("lipi view output =\n%s\nwant\n%s", got.stdout, want)
	}
}

func TestViewHexFile(t *testing.T) {
	path := testutil.WriteFile(t, "message.hex", []byte(sampleMessage+"\n"))
	got := execute(t, nil, "view", "--hex", path)
	if got.err != nil {
		t.Fatalf("lipi view --hex: %v", got.err)
	}
	if got.stdout != sampleView {
		t.Errorf("lipi view --hex output =\n%s\nwant\n%s", got.stdout, sampleView)
	}
}

func TestViewColor(t *testing.T) {
	styled := execute(t, testutil.Hex(t, sampleMessage), "view", "--color", "always")
	if styled.err != nil {
		t.Fatalf("lipi view --color always: %v", styled.err)
	}
	if !strings.Contains(styled.stdout, "\x1b[") || !strings.Contains(styled.stdout, `"hi"`) {
		t.Errorf("styled output = %q, want ANSI escapes around the tree", styled.stdout)
	}

	// A buffer is not a terminal, so auto means plain.
	plain := execute(t, testutil.Hex(t, sampleMessage), "view")
	if strings.Contains(plain.stdout, "\x1b[") {
		t.Errorf("auto color styled non-terminal output: %q", plain.stdout)
	}
}

func TestTranscoding(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"json compact", []string{"json", "-c"}, `{"1":true,"2":"hi","3":"AQID"}` + "\n"},
		{"json indented", []string{"json"}, "{\n  \"1\": true,\n  \"2\": \"hi\",\n  \"3\": \"AQID\"\n}\n"},
		{"diag", []string{"diag"}, `{1: true, 2: "hi", 3: h'010203'}` + "\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := execute(t, testutil.Hex(t, sampleMessage), test.args...)
			if got.err != nil {
				t.Fatalf("lipi %v: %v", test.args, got.err)
			}
			if got.stdout != test.want {
				t.Errorf("lipi %v =\n%s\nwant\n%s", test.args, got.stdout, test.want)
			}
		})
	}
}

func TestYAML(t *testing.T) {
	got := execute(t, testutil.Hex(t, "02 11 28 02 68 69"), "yaml")
	if got.err != nil {
		t.Fatalf("lipi yaml: %v", got.err)
	}
	if want := "1: true\n2: hi\n"; got.stdout != want {
		t.Errorf("lipi yaml = %q, want %q", got.stdout, want)
	}
}

func TestBinaryTranscoding(t *testing.T) {
	got := execute(t, testutil.Hex(t, sampleMessage), "cbor")
	if got.err != nil {
		t.Fatalf("lipi cbor: %v", got.err)
	}
	var decoded map[uint64]any
	if err := cbor.Unmarshal([]byte(got.stdout), &decoded); err != nil {
		t.Fatalf("CBOR output does not decode: %v", err)
	}
	if decoded[1] != true || decoded[2] != "hi" || !bytes.Equal(decoded[3].([]byte), []byte{1, 2, 3}) {
		t.Errorf("CBOR output decoded to %v", decoded)
	}

	got = execute(t, testutil.Hex(t, sampleMessage), "msgpack")
	if got.err != nil {
		t.Fatalf("lipi msgpack: %v", got.err)
	}
	// fixmap(3), key 1, true, key 2, fixstr "hi", key 3, bin8 of 3 bytes.
	testutil.RequireBytes(t, []byte(got.stdout), testutil.Hex(t, "83 01 c3 02 a2 68 69 03 c4 03 01 02 03"))
}

func TestStat(t *testing.T) {
	message := testutil.Hex(t, sampleMessage)
	got := execute(t, message, "stat", "--json")
	if got.err != nil {
		t.Fatalf("lipi stat: %v", got.err)
	}

	var statistics Statistics
	if err := json.Unmarshal([]byte(got.stdout), &statistics); err != nil {
		t.Fatalf("stat output is not JSON: %v\n%s", err, got.stdout)
	}
	if statistics.Bytes != 11 || statistics.InputBytes != 11 || statistics.Compression != "none" {
		t.Errorf("sizes = (%d, %d, %s), want (11, 11, none)",
			statistics.Bytes, statistics.InputBytes, statistics.Compression)
	}
	if statistics.Fields != 3 || statistics.Values != 6 || statistics.Depth != 2 {
		t.Errorf("shape = (fields %d, values %d, depth %d), want (3, 6, 2)",
			statistics.Fields, statistics.Values, statistics.Depth)
	}
	wantTags := map[string]int{"true": 1, "str": 1, "list": 1, "u8": 3}
	if len(statistics.Tags) != len(wantTags) {
		t.Errorf("tags = %v, want %v", statistics.Tags, wantTags)
	}
	for name, count := range wantTags {
		if statistics.Tags[name] != count {
			t.Errorf("tags[%s] = %d, want %d", name, statistics.Tags[name], count)
		}
	}
	if want := binhash.Sum(message).String(); statistics.Digest != want {
		t.Errorf("digest = %s, want %s", statistics.Digest, want)
	}

	text := execute(t, message, "stat")
	if text.err != nil {
		t.Fatalf("lipi stat: %v", text.err)
	}
	for _, want := range []string{"blake3:", statistics.Digest, "depth:", "u8"} {
		if !strings.Contains(text.stdout, want) {
			t.Errorf("stat output missing %q:\n%s", want, text.stdout)
		}
	}
}

func TestStatDepth(t *testing.T) {
	// {1: {1: [[true]]}}: struct, struct, list, list.
	message := testutil.Hex(t, "01 19 01 1b 1b 11 01")
	got := execute(t, message, "stat", "--json")
	if got.err != nil {
		t.Fatalf("lipi stat: %v", got.err)
	}
	var statistics Statistics
	if err := json.Unmarshal([]byte(got.stdout), &statistics); err != nil {
		t.Fatal(err)
	}
	if statistics.Depth != 4 {
		t.Errorf("depth = %d, want 4", statistics.Depth)
	}
}

func TestStatCompressedInput(t *testing.T) {
	message := testutil.Hex(t, sampleMessage)
	framed, err := compress.Compress(message, compress.Zstd)
	if err != nil {
		t.Fatal(err)
	}
	got := execute(t, framed, "stat", "--json")
	if got.err != nil {
		t.Fatalf("lipi stat: %v", got.err)
	}
	var statistics Statistics
	if err := json.Unmarshal([]byte(got.stdout), &statistics); err != nil {
		t.Fatal(err)
	}
	if statistics.Compression != "zstd" || statistics.InputBytes != len(framed) || statistics.Bytes != len(message) {
		t.Errorf("stat = %+v", statistics)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical message is unchanged", sampleMessage, sampleMessage},
		{"bool list element tag", "01 1b 20 01", "01 1b 21 01"},
		{"padded count varint", "81 00 11", "01 11"},
		{"bool list slack bits", "01 1b 31 ff", "01 1b 31 07"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := execute(t, testutil.Hex(t, test.input), "normalize")
			if got.err != nil {
				t.Fatalf("lipi normalize: %v", got.err)
			}
			testutil.RequireBytes(t, []byte(got.stdout), testutil.Hex(t, test.want))
		})
	}
}

func TestNormalizeCompressedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.lipi.lz4")
	got := execute(t, testutil.Hex(t, sampleMessage), "normalize", "--compress", "lz4", "-o", path)
	if got.err != nil {
		t.Fatalf("lipi normalize: %v", got.err)
	}
	if got.stdout != "" || !strings.Contains(got.stderr, "wrote") {
		t.Errorf("stdout = %q, stderr = %q", got.stdout, got.stderr)
	}

	framed, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	payload, algorithm, err := compress.Unwrap(framed, compress.DefaultLimit)
	if err != nil || algorithm != compress.LZ4 {
		t.Fatalf("Unwrap = (%v, %v)", algorithm, err)
	}
	testutil.RequireBytes(t, payload, testutil.Hex(t, sampleMessage))

	bad := execute(t, testutil.Hex(t, sampleMessage), "normalize", "--compress", "gzip")
	if cli.ExitStatus(bad.err) != cli.ExitUsage {
		t.Errorf("--compress gzip: error = %v, want a usage error", bad.err)
	}
}

func TestDecodeFailureReport(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		args      []string
		offset    string
		remaining string
		cause     string
	}{
		{
			name:      "truncated string",
			input:     "03 11 28 02 68",
			offset:    "offset:    4 (0x4)",
			remaining: "remaining: 1 bytes",
			cause:     "unexpected end of input",
		},
		{
			name:      "trailing bytes",
			input:     sampleMessage + " ff",
			offset:    "offset:    11 (0xb)",
			remaining: "remaining: 1 bytes",
			cause:     "trailing",
		},
		{
			name:      "nesting limit",
			input:     "01 19 00",
			args:      []string{"--max-depth", "1"},
			offset:    "offset:    2 (0x2)",
			remaining: "remaining: 1 bytes",
			cause:     "depth",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := execute(t, testutil.Hex(t, test.input), append([]string{"view"}, test.args...)...)
			var exitError *cli.ExitError
			if !errors.As(got.err, &exitError) || exitError.Code != 1 {
				t.Fatalf("error = %v, want exit code 1", got.err)
			}
			if got.stdout != "" {
				t.Errorf("stdout = %q, want nothing", got.stdout)
			}
			for _, want := range []string{"stdin is not a valid lipi message", test.offset, test.remaining, test.cause} {
				if !strings.Contains(got.stderr, want) {
					t.Errorf("report missing %q:\n%s", want, got.stderr)
				}
			}
		})
	}
}

func TestConfiguration(t *testing.T) {
	path := testutil.WriteFile(t, "lipi.yaml", []byte("output:\n  format: json\ndecode:\n  max_depth: 1\n"))

	// The file selects JSON output and a depth limit of 1.
	got := execute(t, testutil.Hex(t, "01 11"), "--config", path)
	if got.err != nil {
		t.Fatalf("lipi --config: %v", got.err)
	}
	if want := "{\n  \"1\": true\n}\n"; got.stdout != want {
		t.Errorf("output = %q, want %q", got.stdout, want)
	}

	nested := testutil.Hex(t, "01 19 00")
	if got := execute(t, nested, "view", "--config", path); got.err == nil {
		t.Error("max_depth from the config file was not applied")
	}
	// An explicit flag wins over the file.
	if got := execute(t, nested, "view", "--config", path, "--max-depth", "4"); got.err != nil {
		t.Errorf("--max-depth did not override the config file: %v", got.err)
	}
}

func TestConfigurationFromEnvironment(t *testing.T) {
	path := testutil.WriteFile(t, "lipi.jsonc", []byte(`{"input": {"hex": true}, // pasted dumps
}`))
	var stdout, stderr bytes.Buffer
	t.Setenv(config.EnvironmentVariable, path)
	streams := Streams{In: strings.NewReader(sampleMessage), Out: &stdout, Err: &stderr}
	if err := Root(streams).Execute(nil); err != nil {
		t.Fatalf("lipi: %v\n%s", err, stderr.String())
	}
	if stdout.String() != sampleView {
		t.Errorf("output = %q, want %q", stdout.String(), sampleView)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"misspelled command", []string{"veiw"}, `did you mean "view"?`},
		{"bad color", []string{"view", "--color", "rainbow"}, "rainbow"},
		{"bad max depth", []string{"view", "--max-depth", "0"}, "--max-depth"},
		{"bad decompress", []string{"view", "--decompress", "brotli"}, "brotli"},
		{"bad config", []string{"--config", "lipi.toml"}, "lipi.toml"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := execute(t, testutil.Hex(t, sampleMessage), test.args...)
			if got.err == nil || !strings.Contains(got.err.Error(), test.want) {
				t.Fatalf("error = %v, want mention of %q", got.err, test.want)
			}
			if status := cli.ExitStatus(got.err); status != cli.ExitUsage {
				t.Errorf("exit status = %d, want %d", status, cli.ExitUsage)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	got := execute(t, nil, "--version")
	if got.err != nil {
		t.Fatalf("lipi --version: %v", got.err)
	}
	if !strings.HasPrefix(got.stdout, "lipi 0.1.0-dev (") {
		t.Errorf("version output = %q", got.stdout)
	}

	verbose := execute(t, nil, "--version", "--verbose")
	if verbose.err != nil {
		t.Fatalf("lipi --version --verbose: %v", verbose.err)
	}
	for _, want := range []string{"Go: ", "Binary: ", "BLAKE3: "} {
		if !strings.Contains(verbose.stdout, want) {
			t.Errorf("verbose version output missing %q:\n%s", want, verbose.stdout)
		}
	}
}
