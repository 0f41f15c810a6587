// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"accounts"}, args...))
	return out.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

const sampleInput = `bob,1,1,gold,online
alice,7,0,none,idle
carol,3,0,silver,offline
alice,2,1,gold,online
`

func TestGenerate_ProducesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.csv")
	out, err := run(t, "generate", "--output", path, "--users", "50", "--accounts", "3", "--seed", "1")
	if err != nil {
		t.Fatalf("failed to generate accounts: %v", err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = run(t, "check", "--input", path)
	if err != nil {
		t.Fatalf("generated accounts failed the check: %v", err)
	}
	if !strings.Contains(out, "All checks passed!") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestGenerate_IsDeterministicForFixedSeed(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")
	for _, path := range []string{a, b} {
		if _, err := run(t, "generate", "--output", path, "--users", "10", "--seed", "42"); err != nil {
			t.Fatalf("failed to generate accounts: %v", err)
		}
	}
	contentA, _ := os.ReadFile(a)
	contentB, _ := os.ReadFile(b)
	if !bytes.Equal(contentA, contentB) {
		t.Errorf("same seed should produce the same accounts")
	}
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", "--input", writeInput(t, sampleInput), "--footprint")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"Users:          3", "Accounts:       4", "Height:         1", "Hash:           0x", "index"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestInputFilesAreAppended(t *testing.T) {
	first := writeInput(t, sampleInput)
	second := writeInput(t, "dave,5,0,none,online\nalice,7,0,none,idle\n")
	out, err := run(t, "info", "--input", first, "--input", second)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"Users:          4", "Accounts:       5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestDump(t *testing.T) {
	input := writeInput(t, sampleInput)
	out, err := run(t, "dump", "--input", input)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if got, want := strings.TrimSpace(out), "((alice:0:2)bob:1:1(carol:0:1))"; got != want {
		t.Errorf("unexpected dump, got %v, want %v", got, want)
	}

	out, err = run(t, "dump", "--input", input, "--user", "alice")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if got, want := strings.TrimSpace(out), "((2:1:0)7:2:0)"; got != want {
		t.Errorf("unexpected dump, got %v, want %v", got, want)
	}

	if _, err := run(t, "dump", "--input", input, "--user", "zoe"); err == nil {
		t.Errorf("dumping an unknown user should fail")
	}
}

func TestTree(t *testing.T) {
	out, err := run(t, "tree", "--input", writeInput(t, sampleInput))
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if !strings.HasPrefix(out, "bob h=1 accounts=1") {
		t.Errorf("unexpected rendering:\n%s", out)
	}
}

func TestPrint(t *testing.T) {
	input := writeInput(t, sampleInput)
	out, err := run(t, "print", "--input", input)
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if got, want := strings.Count(out, "Account name:"), 4; got != want {
		t.Errorf("unexpected number of printed accounts, got %d, want %d", got, want)
	}
	if strings.Index(out, "alice") > strings.Index(out, "bob") {
		t.Errorf("accounts should be printed in username order:\n%s", out)
	}

	out, err = run(t, "print", "--input", input, "--user", "alice")
	if err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if got, want := strings.Count(out, "Account name: alice"), 2; got != want {
		t.Errorf("unexpected number of printed accounts, got %d, want %d", got, want)
	}
}

func TestGet(t *testing.T) {
	input := writeInput(t, sampleInput)
	out, err := run(t, "get", "--input", input, "--user", "carol", "--disc", "3")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	for _, want := range []string{"Account name: carol", "Discriminator: 3", "Badge: silver", "Status: offline"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "get", "--input", input, "--user", "carol", "--disc", "4"); err == nil {
		t.Errorf("getting an unknown account should fail")
	}
	if _, err := run(t, "get", "--input", input, "--user", "carol", "--disc", "10000"); err == nil {
		t.Errorf("getting an out of range discriminator should fail")
	}
}

func TestRemove(t *testing.T) {
	input := writeInput(t, sampleInput)
	out, err := run(t, "remove", "--input", input, "--user", "bob", "--disc", "1")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	for _, want := range []string{"Account name: bob", "Remaining accounts of bob: 0", "(alice:1:2(carol:0:1))"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "remove", "--input", input, "--user", "bob", "--disc", "2"); err == nil {
		t.Errorf("removing an unknown account should fail")
	}
}

func TestCommandsReportBrokenInput(t *testing.T) {
	input := writeInput(t, "alice,7,0,none\n")
	_, err := run(t, "check", "--input", input)
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("broken input should be reported with its position, got %v", err)
	}
}
