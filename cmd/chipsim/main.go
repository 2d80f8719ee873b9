// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// chipsim runs digital logic circuits described in YAML circuit libraries.
package main

import (
	"os"

	"github.com/db47h/chipsim/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
