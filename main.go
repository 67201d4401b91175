package main

import "github.com/gh-tui-tools/gh-pr-threads/cmd"

func main() {
	cmd.Execute()
}
