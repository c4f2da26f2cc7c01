package ingest

import (
	"os"
	"testing"

	"github.com/emrgen/peps/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}
