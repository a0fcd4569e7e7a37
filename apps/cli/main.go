// Command masomo is the command line front-end of the Masomo LMS.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := newContainer()
	err := c.Invoke(func(a *app) error {
		defer a.close()
		return newRootCommand(a).Execute()
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		os.Exit(1)
	}
}
