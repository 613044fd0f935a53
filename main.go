package main

import "github.com/Rorical/RoriLogo/cmd"

func main() {
	cmd.Execute()
}
