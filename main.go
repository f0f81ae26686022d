package main

import (
	"github.com/jamesblissett/tagfs/cmd"
)

func main() {
	cmd.Execute()
}
