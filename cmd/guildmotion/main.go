// Command guildmotion inspects the built-in motion compositions.
//
// Usage:
//
//	guildmotion list
//	guildmotion show BossBattle --format yaml
//	guildmotion frames BossBattle --from 0 --to 90 --step 15
package main

import (
	"fmt"
	"os"

	"github.com/forgo/guild/api/internal/composition"
)

func main() {
	if err := newRootCmd(composition.Default()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
