package main

import "github.com/xvierd/focusdial/cmd"

func main() {
	cmd.Execute()
}
