package main

import "github.com/nissyi-gh/highstill/cmd"

func main() {
	cmd.Execute()
}
