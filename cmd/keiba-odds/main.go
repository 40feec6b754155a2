package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/ymatsuda/keiba-odds/internal/cli"
)

func main() {
	cli.Execute()
}
