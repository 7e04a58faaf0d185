// The main package for the newscorpus executable.
package main

import (
	"github.com/mvoronina/news-corpus/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
