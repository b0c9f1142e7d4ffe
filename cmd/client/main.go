package main

import "siigosync/cmd/client/cmd"

func main() {
	cmd.Execute()
}
