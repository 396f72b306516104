package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDecodeFile_roundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	packed := filepath.Join(dir, "packed.bin")
	out := filepath.Join(dir, "output.txt")

	data := []byte("the quick brown fox jumps over the lazy dog")
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := encodeFile(in, packed, 3); err != nil {
		t.Fatalf("encodeFile: %v", err)
	}
	if err := decodeFile(packed, out, 3); err != nil {
		t.Fatalf("decodeFile: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func TestEncodeFile_frameHeaderIsBigEndianLength(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	packed := filepath.Join(dir, "packed.bin")

	data := []byte("framing check")
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := encodeFile(in, packed, 3); err != nil {
		t.Fatalf("encodeFile: %v", err)
	}

	framed, err := os.ReadFile(packed)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(framed) < 4 {
		t.Fatalf("framed output too short: %d bytes", len(framed))
	}
	got := binary.BigEndian.Uint32(framed[:4])
	if int(got) != len(data) {
		t.Fatalf("header length = %d, want %d", got, len(data))
	}
}

func TestRun_usageErrorOnBadArgCount(t *testing.T) {
	if err := run([]string{"encode", "only-one-arg"}); err == nil {
		t.Fatal("expected error for wrong argument count")
	}
}

func TestRun_usageErrorOnUnknownMode(t *testing.T) {
	dir := t.TempDir()
	if err := run([]string{"frobnicate", filepath.Join(dir, "a"), filepath.Join(dir, "b")}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
