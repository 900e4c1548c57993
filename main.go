package main

import "github.com/huynhdieutuong/DevCamper-API/cmd"

func main() {
	cmd.Execute()
}
