package util

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
)

func CreateTempFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), fmt.Sprintf("virtmem-test-%d.dat", rand.Intn(100)+10))
}
