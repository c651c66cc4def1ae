package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/ricat/ricat/internal/testutil"
)

func TestWriteDefaultProfile(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "nested", "dir", ProfileFileName)

	written, err := WriteDefaultProfile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, true, written)

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, string(data), "number_feature = false")
	testutil.AssertContains(t, string(data), "log_level = ")
	testutil.AssertContains(t, string(data), "warn")

	var p Profile
	testutil.AssertNoError(t, toml.Unmarshal(data, &p))
	testutil.AssertEqual(t, DefaultProfile(), p)
}

func TestWriteDefaultProfileKeepsExisting(t *testing.T) {
	path := testutil.TempFileNamed(t, ProfileFileName, []byte("number_feature = true\n"))

	written, err := WriteDefaultProfile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, false, written)
	testutil.AssertFileContents(t, path, "number_feature = true\n")
}

func TestWrittenProfileIsLoadable(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), ProfileFileName)
	_, err := WriteDefaultProfile(path)
	testutil.AssertNoError(t, err)
	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)

	cfg, err := setup(t, string(data))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, true, cfg.ProfileLoaded)
	testutil.AssertEqual(t, DefaultProfile(), cfg.Profile)
}
