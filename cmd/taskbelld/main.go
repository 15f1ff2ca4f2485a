package main

import (
	"fmt"
	"os"

	"github.com/taskbell/taskbell/cmd"
)

var version string

func main() {
	if err := cmd.RunDaemon(version); err != nil {
		fmt.Println("taskbelld:", err.Error())
		os.Exit(1)
	}
}
