package exiftool

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScript emulates the stay_open request/reply loop: every -execute
// answers with a canned version line, and -stay_open False exits.
const stubScript = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    -execute)
      echo "13.48"
      echo "{ready}"
      ;;
    -stay_open)
      IFS= read -r value
      if [ "$value" = "False" ]; then
        exit 0
      fi
      ;;
  esac
done
`

func writeStub(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub process script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "exiftool-stub")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestSessionExecuteFraming(t *testing.T) {
	t.Parallel()

	s := New(Config{Path: writeStub(t, stubScript)})
	defer s.Shutdown()

	require.True(t, s.IsAvailable())

	version, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, "13.48", version)

	// The same process answers repeated requests.
	version, err = s.Version()
	require.NoError(t, err)
	assert.Equal(t, "13.48", version)
}

func TestSessionDetectsDeadProcess(t *testing.T) {
	t.Parallel()

	s := New(Config{Path: writeStub(t, "#!/bin/sh\nexit 0\n")})
	defer s.Shutdown()

	_, err := s.Version()
	require.Error(t, err)

	// Availability reflects binary discovery, not process health.
	assert.True(t, s.IsAvailable())
}

func TestSessionUnavailable(t *testing.T) {
	t.Parallel()

	s := New(Config{Path: filepath.Join(t.TempDir(), "nonexistent")})
	assert.False(t, s.IsAvailable())

	_, err := s.Version()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New(Config{Path: writeStub(t, stubScript)})
	_, err := s.Version()
	require.NoError(t, err)

	s.Shutdown()
	s.Shutdown()
}
