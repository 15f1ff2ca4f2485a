package bellcli

import (
	"fmt"
	"os"
)

// VersionCheckEnv suppresses version mismatch warnings when set to any
// non-empty value (useful for scripts and CI).
const VersionCheckEnv = "TASKBELL_SUPPRESS_VERSION_CHECK"

// CheckVersionMismatch warns on stderr when the daemon version differs
// from the CLI's. Mismatches never block execution.
func (c *Client) CheckVersionMismatch(expectedVersion string) {
	if expectedVersion == "" {
		return
	}
	if os.Getenv(VersionCheckEnv) != "" {
		return
	}

	resp, err := c.Version()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not verify daemon version: %v\n", err)
		return
	}

	if resp.Version != expectedVersion {
		fmt.Fprintf(os.Stderr, "Warning: CLI version (%s) differs from daemon version (%s)\n",
			expectedVersion, resp.Version)
		fmt.Fprintf(os.Stderr, "Restart the daemon to pick up the new version.\n")
	}
}
