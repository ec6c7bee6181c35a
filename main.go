package main

import "carspotter-backend/cmd"

func main() {
	cmd.Run()
}
