package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"um/disasm"
	"um/loader"
	"um/vm"
)

func main() {
	log.SetFlags(0)

	var disassemble bool

	rootCmd := &cobra.Command{
		Use:   "um [program]",
		Short: "Run a Universal Machine program image",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return loadErr{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUM(args, disassemble)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().BoolVar(&disassemble, "dis", false, "disassemble the program instead of running it")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return loadErr{err}
	})

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(exitCodeFor(err))
	}
}

// loadErr and faultErr distinguish "never ran" from "crashed while running"
// for the exit-code policy.
type loadErr struct{ error }
type faultErr struct{ error }

func exitCodeFor(err error) int {
	switch err.(type) {
	case loadErr:
		return 2
	case faultErr:
		return 1
	default:
		return 1
	}
}

func runUM(args []string, disassemble bool) error {
	words, err := loadImage(args)
	if err != nil {
		return loadErr{err}
	}

	if disassemble {
		if err := disasm.Dump(os.Stdout, words); err != nil {
			return faultErr{err}
		}
		return nil
	}

	m := vm.New(words, os.Stdin, os.Stdout)
	if err := m.Run(); err != nil {
		return faultErr{fmt.Errorf("execution failed: %w", err)}
	}
	return nil
}

func loadImage(args []string) ([]uint32, error) {
	if len(args) == 1 {
		return loader.LoadFile(args[0])
	}
	return loader.Load(os.Stdin)
}
