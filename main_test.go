package main

import (
	"testing"

	"jansctl/cmd"
)

func TestVersion(t *testing.T) {
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}
}

func TestSetVersionFormats(t *testing.T) {
	// SetVersion must accept any version string ldflags may inject.
	for _, v := range []string{"dev", "1.0.0", "v2.0.0-rc1", "2.3.4-beta.1"} {
		cmd.SetVersion(v)
	}
}
