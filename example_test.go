// example_test.go: Usage examples
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

package xlogger_test

import (
	"fmt"

	"github.com/freebetbot/xlogger"
)

// The zero-configuration path: the first send creates logs/ under the
// working directory and writes there.
func Example() {
	xlogger.SendInfo("application started")
	xlogger.SendWarning("cache miss rate is high")
}

// Explicit setup chooses the directory and file pattern and surfaces setup
// errors to the caller.
func ExampleSetupDir() {
	if err := xlogger.SetupDir("logs", "myapp.log"); err != nil {
		fmt.Println("logging unavailable:", err)
	}
	xlogger.SendConfig("version 1.4.2, 8 workers")
}

// Raising the minimum level discards quieter records cheaply.
func ExampleSetLevel() {
	xlogger.SetLevel(xlogger.LevelWarning)
	xlogger.SendFine("this is filtered out")
	xlogger.SendSevere("this is written")
}

func ExampleErrorToString() {
	fmt.Println(xlogger.ErrorToString(nil))
	// Output: null
}

// An injected instance keeps logging out of global state.
func ExampleNew() {
	logger := xlogger.New()
	if err := logger.SetupDir("", "worker.log"); err != nil {
		fmt.Println("logging unavailable:", err)
	}
	defer logger.Close()

	logger.SendFine("worker ready")
}
