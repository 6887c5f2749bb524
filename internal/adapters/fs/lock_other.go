//go:build !unix

package fs

import "os"

// Advisory locks are only taken on unix; elsewhere O_EXCL creation alone
// keeps scratch names unique.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }

// Execute bits are not meaningful here, so every rule goes through the shell.
func isExecutable(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, statError(path, err)
	}
	return false, nil
}
