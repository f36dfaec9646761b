package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fieldschema: ")

	if err := newRootCommand(os.Stdout, newSurveyPrompter()).Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
