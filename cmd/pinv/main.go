// Package main provides the pinv CLI, a personal inventory tracker.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/openapeshop/pinv/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, types.ErrStorage) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserError)
	}
}
