package main

import (
	padwancmd "github.com/padwan-ai/padwan-cli/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	padwancmd.SetVersionInfo(version, commit)
	padwancmd.Execute()
}
