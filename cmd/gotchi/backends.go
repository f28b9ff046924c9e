package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jsgotchi/internal/actuator"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List buzzer backends",
	Long:  `Shows the buzzer backends that can be selected with sound.backend or GOTCHI_SOUND.`,
	Args:  cobra.NoArgs,
	Run:   runBackends,
}

func runBackends(_ *cobra.Command, _ []string) {
	backends := actuator.List()

	if len(backends) == 0 {
		fmt.Println("No buzzer backends available.")
		return
	}

	fmt.Println("Available buzzer backends:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, b := range backends {
		fmt.Printf("  %-*s  %s\n", maxNameLen, b.Name, b.Description)
	}

	fmt.Println()
	fmt.Println("Set sound.backend in the config or GOTCHI_SOUND=<name> to pick one.")
}
