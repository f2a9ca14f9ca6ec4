// Command pepc evaluates and simulates the priority encoder with parity
// checker.
package main

import "github.com/sarchlab/pepc/cmd/pepc/cmd"

func main() {
	cmd.Execute()
}
