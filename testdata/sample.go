package sample

import "fmt"

// Greet returns a greeting.
func Greet(name string) string {
	/* multi
	   line */
	return fmt.Sprintf("hi %s", name)
}
