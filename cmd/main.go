package main

import (
	"go-surgical-scheduling/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.NewApp()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %+v", err)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logrus.Fatalf("Server error: %+v", err)
	}
}
