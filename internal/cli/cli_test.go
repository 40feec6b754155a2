package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# race list
https://race.netkeiba.com/race/shutuba.html?race_id=202401010101

  https://race.netkeiba.com/race/shutuba.html?race_id=202401010102
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := loadURLFile(path)
	if err != nil {
		t.Fatalf("loadURLFile() error = %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("len(urls) = %d, want 2 (comment and blank skipped)", len(urls))
	}
	if urls[1] != "https://race.netkeiba.com/race/shutuba.html?race_id=202401010102" {
		t.Errorf("urls[1] = %q, want trimmed URL", urls[1])
	}
}

func TestLoadURLFileMissing(t *testing.T) {
	if _, err := loadURLFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRootCmdRequiresURL(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error when neither --url nor --url-file is given")
	}
}
