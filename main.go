// Package main is the entrypoint of the picklist CLI.
package main

import (
	"github.com/huangsam/picklist/cmd"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/store"
)

func main() {
	cmd.SetStoreManager(store.Manager)

	if err := cmd.Execute(); err != nil {
		store.CloseStores()
		_ = cmd.StopProfiling()
		contract.LogFatal("Error starting CLI", err)
	}

	store.CloseStores()
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Failed to stop profiling", err)
	}
}
