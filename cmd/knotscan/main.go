// cmd/knotscan/main.go
package main

import (
	"knotscan/internal/app"
	"knotscan/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
