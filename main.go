package main

import (
	"github.com/iotaledger/iota-txpool/components/app"
	"github.com/iotaledger/iota-txpool/pkg/toolset"
)

func main() {
	if toolset.ShouldHandleTools() {
		toolset.HandleTools()
		// HandleTools will call os.Exit
	}

	app.App().Run()
}
