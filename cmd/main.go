package main

import (
	"patient-records-api/cmd/command"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := command.Execute(); err != nil {
		logrus.Fatalf("Failed to run application: %v", err)
	}
}
