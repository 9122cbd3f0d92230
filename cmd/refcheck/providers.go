// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/pkg/types"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered lookup providers",
	Run: func(cmd *cobra.Command, args []string) {
		registry := buildRegistry(&http.Client{}, types.HTTPConfig{UserAgent: defaultUserAgent}, "", "")
		for _, name := range registry.Names() {
			fmt.Fprintln(os.Stdout, name)
		}
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
