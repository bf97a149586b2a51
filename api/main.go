package main

import (
	"os"

	"sharkpay/api/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// admin commands may run with the environment already exported
	if envPath := os.Getenv("ENVPATH"); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			panic("Can't load .env file: " + err.Error())
		}
	}

	cli.Execute()
}
