package main

import (
	"revenue-forecast/cmd"
)

// Projection du chiffre d'affaires : voir `revenue-forecast simulate --help`.
func main() {
	cmd.Execute()
}
