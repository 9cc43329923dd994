package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestDecodeCmd(t *testing.T) {
	cmd := decodeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"AM可,9-12@天文館店,13-15@谷山店", "鹿屋,extra", "メモ"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"kind:  available",
		"days:  0.5",
		"cell:  AM可 / 9-12@天文館店 / 13-15@谷山店",
		"saved: 鹿屋\n",
		"kind:  other",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	path := filepath.Join(dir, "report.xlsx")
	err := save(cmd, path, "ignored.xlsx", func(w io.Writer) error {
		_, err := w.Write([]byte("data"))
		return err
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "data" {
		t.Errorf("unexpected file content %q", data)
	}

	failed := filepath.Join(dir, "failed.pdf")
	boom := errors.New("boom")
	err = save(cmd, failed, "", func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if _, err := os.Stat(failed); !os.IsNotExist(err) {
		t.Errorf("partial file should be removed")
	}
}
