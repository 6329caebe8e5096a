package main

import "github.com/yanaldoshi/codi/cmd"

func main() {
	cmd.Execute()
}
