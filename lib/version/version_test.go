// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"os"
	"strings"
	"testing"

	"github.com/bureau-foundation/lipi/lib/binhash"
)

func TestInfo(t *testing.T) {
	saved := [...]string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
	})

	Version, GitCommit, BuildTime = "1.2.3", "abc1234", "2026-10-19T00:00:00Z"

	GitDirty = "false"
	if got, want := Info(), "1.2.3 (abc1234, 2026-10-19T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "true"
	if got, want := Info(), "1.2.3 (abc1234-dirty, 2026-10-19T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	if got := Short(); got != "1.2.3" {
		t.Errorf("Short() = %q, want %q", got, "1.2.3")
	}
	if full := Full(); !strings.HasPrefix(full, Info()+"\n  Go: ") {
		t.Errorf("Full() = %q, want Info() followed by the Go version", full)
	}
}

func TestSelfDigest(t *testing.T) {
	digest, path, err := SelfDigest()
	if err != nil {
		t.Fatalf("SelfDigest: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("SelfDigest path %q: %v", path, err)
	}
	again, err := binhash.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if again != digest {
		t.Errorf("SelfDigest = %v, HashFile = %v", digest, again)
	}
}
