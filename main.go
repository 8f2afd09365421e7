package main

import "github.com/theirongolddev/cashcast/cmd"

func main() {
	cmd.Execute()
}
