package main

import (
	"IOStatDO/cmd"
	"IOStatDO/internal/pkg/logger"
)

func main() {
	defer logger.Sync()
	cmd.Execute()
}
