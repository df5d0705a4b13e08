package main

import "sheet-merger/cmd"

func main() {
	cmd.Execute()
}
