// Command kairu is a command-line productivity coach.
package main

import "github.com/mesh-intelligence/kairu/internal/cli"

func main() {
	cli.Execute()
}
