/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/
package main

import "github.com/seeker-labs/radarhub/cmd"

func main() {
	cmd.Execute()
}
