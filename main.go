package main

import "github.com/mj1618/chatscribe/cmd"

func main() {
	cmd.Execute()
}
