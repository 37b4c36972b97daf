package main

import "github.com/levkatan/lending-management/cmd"

func main() {
	cmd.Execute()
}
