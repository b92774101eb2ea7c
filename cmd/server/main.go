package main

import (
	"github.com/jessupi/jessbook/internal/server"
)

func main() {
	server.NewServer().Run()
}
