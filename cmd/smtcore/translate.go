package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smtcore/internal/smt"
	"smtcore/internal/smt/logging"
	"smtcore/internal/smt/memsolver"
	"smtcore/internal/smt/translate"
)

var translateCommand = &cobra.Command{
	Use:   "translate",
	Short: "build a term in one backend instance and translate it into a second",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := translateExec(); err != nil {
			fmt.Printf("service err: %v\n", err)
		}
	},
}

// translateExec builds Bool(And(true, x)) against a source solver, moves
// it into a destination solver whose backend is a distinct instance, and
// reports how many terms the translator's cache ended up holding.
func translateExec() error {
	srcBackend := memsolver.New()
	src := logging.New(srcBackend)
	dest := logging.New(memsolver.New())

	boolSort, err := src.MakeSort(smt.Bool)
	if err != nil {
		return err
	}
	x, err := src.MakeSymbol("x", boolSort)
	if err != nil {
		return err
	}
	tru, err := src.MakeBoolValue(true)
	if err != nil {
		return err
	}
	term, err := src.MakeTerm(smt.NewOp(smt.And), tru, x)
	if err != nil {
		return err
	}

	tr := translate.New(srcBackend, dest)
	translated, err := tr.TransferTerm(term)
	if err != nil {
		return err
	}

	fmt.Printf("translated term sort: %s\n", translated.SortVal)
	fmt.Printf("translator cache size: %d\n", len(tr.Cache()))
	fmt.Printf("source hash table: %s\n", src.HashTable())
	fmt.Printf("dest hash table: %s\n", dest.HashTable())
	return nil
}
