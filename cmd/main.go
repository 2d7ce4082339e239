package main

import (
	"os"

	"github.com/john-zaremba/my-easy-tracker/config"
	"github.com/john-zaremba/my-easy-tracker/routes"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(lvl)
	}

	config.InitDB()
	r := routes.SetupRouter()
	if err := r.Run(":8080"); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
