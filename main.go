package main

import "github.com/kasuboski/tapas/cmd"

func main() {
	cmd.Execute()
}
