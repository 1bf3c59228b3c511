// Command flame runs flame scripts (spec §6 "flame [options] sources...").
package main

import "github.com/cwbudde/flame/cmd/flame/cmd"

func main() {
	cmd.Execute()
}
