package main

import "github.com/m04kA/visa-booking-service/internal/cli"

func main() {
	cli.Execute()
}
