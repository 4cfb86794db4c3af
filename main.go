package main

import "github.com/iksnae/digifarmer-sync/cmd"

func main() {
	cmd.Execute()
}
