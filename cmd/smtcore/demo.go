package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"smtcore/internal/smt"
	"smtcore/internal/smt/logging"
	"smtcore/internal/smt/memsolver"
)

var demoCommand = &cobra.Command{
	Use:   "demo",
	Short: "build and solve a small BV formula against the reference backend",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := demoExec(); err != nil {
			fmt.Printf("service err: %v\n", err)
		}
	},
}

// demoExec declares a free BV(4) x, asserts x + x == 0, checks sat, and
// prints the model value it finds, exercising MakeSymbol/MakeTerm/
// AssertFormula/CheckSat/GetValue end to end through the logging layer.
func demoExec() error {
	solver := logging.New(memsolver.New())

	bv4, err := solver.MakeBVSort(4)
	if err != nil {
		return err
	}
	x, err := solver.MakeSymbol("x", bv4)
	if err != nil {
		return err
	}
	zero, err := solver.MakeValueFromInt64(0, bv4)
	if err != nil {
		return err
	}
	sum, err := solver.MakeTerm(smt.NewOp(smt.BVAdd), x, x)
	if err != nil {
		return err
	}
	formula, err := solver.MakeTerm(smt.NewOp(smt.Equal), sum, zero)
	if err != nil {
		return err
	}

	if err := solver.AssertFormula(formula); err != nil {
		return err
	}
	result, err := solver.CheckSat()
	if err != nil {
		return err
	}
	fmt.Printf("check_sat: %s\n", result)
	if result != smt.Sat {
		return nil
	}

	value, err := solver.GetValue(x)
	if err != nil {
		return err
	}
	fmt.Printf("x = %v\n", value.Backend)
	log.Debugf("hash table: %s", solver.HashTable())
	return nil
}
