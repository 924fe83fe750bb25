// Command pmsatom parses, validates and compares PMS package atoms.
//
// Usage:
//
//	pmsatom parse '>=dev-lang/rust-1.75.0:0/1=[llvm_targets_AMDGPU]::gentoo'
//	pmsatom compare 1.0_rc1 1.0
//	pmsatom sort 1.0 1.0_p1 1.0-r1 0.9
//	pmsatom check /etc/portage/package.accept_keywords
//	pmsatom diff before.txt after.txt
//	pmsatom match '~dev-lang/rust-1.75.0' dev-lang/rust-1.75.0-r1
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
