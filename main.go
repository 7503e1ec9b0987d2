package main

import "github.com/die-Manufaktur/seo-copilot-api/cmd"

func main() {
	cmd.Execute()
}
